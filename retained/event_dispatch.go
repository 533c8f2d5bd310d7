package retained

import "golang.org/x/net/html"

// ============================================================================
// Listener registration
// ============================================================================

// eventTable holds the listeners of one element tree. When trees are joined
// the absorbed table forwards to the surviving one.
type eventTable struct {
	listeners map[*html.Node]map[EventType][]MouseHandler
	merged    *eventTable
}

func newEventTable() *eventTable {
	return &eventTable{listeners: make(map[*html.Node]map[EventType][]MouseHandler)}
}

func (t *eventTable) root() *eventTable {
	for t.merged != nil {
		t = t.merged
	}
	return t
}

func (t *eventTable) adopt(other *eventTable) {
	dst, src := t.root(), other.root()
	if dst == src {
		return
	}
	for node, byType := range src.listeners {
		if dst.listeners[node] == nil {
			dst.listeners[node] = make(map[EventType][]MouseHandler)
		}
		for typ, handlers := range byType {
			dst.listeners[node][typ] = append(dst.listeners[node][typ], handlers...)
		}
	}
	src.listeners = nil
	src.merged = dst
}

func (t *eventTable) handlers(node *html.Node, typ EventType) []MouseHandler {
	return t.root().listeners[node][typ]
}

// AddEventListener registers fn for events of type typ on e.
func (e *Element) AddEventListener(typ EventType, fn MouseHandler) {
	t := e.doc.events.root()
	if t.listeners[e.node] == nil {
		t.listeners[e.node] = make(map[EventType][]MouseHandler)
	}
	t.listeners[e.node][typ] = append(t.listeners[e.node][typ], fn)
}

// ============================================================================
// Event Dispatcher
// ============================================================================

// EventDispatcher routes pointer events through element trees and tracks
// hover state.
type EventDispatcher struct {
	hovered      *Element   // Deepest element currently under the pointer
	hoveredChain []*Element // All elements in hover chain (root to deepest)
}

// NewEventDispatcher creates an event dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Dispatch delivers e to its target and, for bubbling types, to each ancestor
// until propagation is stopped.
func (d *EventDispatcher) Dispatch(e *MouseEvent) {
	target := e.target
	if target == nil {
		return
	}
	events := target.doc.events

	for n := target.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			break
		}
		current := &Element{node: n, doc: target.doc}
		e.currentTarget = current
		if n == target.node {
			e.phase = PhaseTarget
		} else {
			e.phase = PhaseBubble
		}

		// Copy so handlers may register listeners while we iterate
		handlers := append([]MouseHandler(nil), events.handlers(n, e.eventType)...)
		for _, fn := range handlers {
			fn(e)
		}
		if e.propagationStopped || !e.eventType.Bubbles() {
			return
		}
	}
}

// Click dispatches a bubbling click at target.
func (d *EventDispatcher) Click(target *Element) {
	d.Dispatch(NewMouseEvent(EventClick, target, nil))
}

// PointerMove moves the pointer onto target (nil = off every tree).
// mouseout/mouseover go to the old and new deepest elements with each other as
// RelatedTarget; mouseleave/mouseenter go to the elements that left or joined
// the hover chain, so ancestors stay hovered while the pointer is over a child.
func (d *EventDispatcher) PointerMove(target *Element) {
	if d.hovered.Is(target) {
		return
	}
	old := d.hovered
	oldChain := d.hoveredChain
	newChain := ancestorChain(target)

	if old != nil {
		d.Dispatch(NewMouseEvent(EventMouseOut, old, target))
	}

	// Build sets for efficient lookup
	oldSet := make(map[*html.Node]bool, len(oldChain))
	for _, w := range oldChain {
		oldSet[w.node] = true
	}
	newSet := make(map[*html.Node]bool, len(newChain))
	for _, w := range newChain {
		newSet[w.node] = true
	}

	// Leave deepest first
	for i := len(oldChain) - 1; i >= 0; i-- {
		if w := oldChain[i]; !newSet[w.node] {
			d.Dispatch(NewMouseEvent(EventMouseLeave, w, target))
		}
	}

	if target != nil {
		d.Dispatch(NewMouseEvent(EventMouseOver, target, old))
	}

	// Enter root first
	for _, w := range newChain {
		if !oldSet[w.node] {
			d.Dispatch(NewMouseEvent(EventMouseEnter, w, old))
		}
	}

	d.hovered = target
	d.hoveredChain = newChain
}

// Hovered returns the deepest element under the pointer.
func (d *EventDispatcher) Hovered() *Element {
	return d.hovered
}

// ancestorChain returns target's element ancestors from the root down to target.
func ancestorChain(target *Element) []*Element {
	if target == nil {
		return nil
	}
	nodes := acquireNodeSlice(0)
	for n := target.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		nodes = append(nodes, n)
	}
	chain := make([]*Element, len(nodes))
	for i, n := range nodes {
		chain[len(nodes)-1-i] = &Element{node: n, doc: target.doc}
	}
	releaseNodeSlice(nodes)
	return chain
}
