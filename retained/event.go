package retained

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	EventClick EventType = iota + 1
	EventMouseOver
	EventMouseOut
	EventMouseEnter
	EventMouseLeave
)

var eventNames = map[EventType]string{
	EventClick:      "click",
	EventMouseOver:  "mouseover",
	EventMouseOut:   "mouseout",
	EventMouseEnter: "mouseenter",
	EventMouseLeave: "mouseleave",
}

// String returns the DOM name of the event type.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseEventType maps a DOM event name to its EventType.
func ParseEventType(name string) (EventType, bool) {
	for t, n := range eventNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Bubbles reports whether events of this type propagate to ancestors.
// Enter and leave are delivered to each element of the hover chain directly.
func (t EventType) Bubbles() bool {
	return t != EventMouseEnter && t != EventMouseLeave
}

// EventPhase indicates when in the event propagation cycle we are.
type EventPhase uint8

const (
	// PhaseTarget - event is at the target element.
	PhaseTarget EventPhase = iota

	// PhaseBubble - event travels from target up to the root.
	PhaseBubble
)

// ============================================================================
// Mouse Event
// ============================================================================

// MouseEvent represents pointer interaction events.
type MouseEvent struct {
	eventType          EventType
	target             *Element
	currentTarget      *Element
	phase              EventPhase
	propagationStopped bool

	// RelatedTarget is the element the pointer came from (over/enter) or
	// went to (out/leave). Nil when the pointer entered or left the whole tree.
	RelatedTarget *Element
}

// NewMouseEvent creates a mouse event aimed at target.
func NewMouseEvent(eventType EventType, target, related *Element) *MouseEvent {
	return &MouseEvent{
		eventType:     eventType,
		target:        target,
		phase:         PhaseTarget,
		RelatedTarget: related,
	}
}

func (e *MouseEvent) Type() EventType            { return e.eventType }
func (e *MouseEvent) Target() *Element           { return e.target }
func (e *MouseEvent) CurrentTarget() *Element    { return e.currentTarget }
func (e *MouseEvent) Phase() EventPhase          { return e.phase }
func (e *MouseEvent) StopPropagation()           { e.propagationStopped = true }
func (e *MouseEvent) IsPropagationStopped() bool { return e.propagationStopped }

// MouseHandler is a callback for mouse events.
type MouseHandler func(*MouseEvent)
