package retained

import (
	"fmt"
	"testing"
)

const hostPage = `<div id="host" class="si-icon"><span id="inner"><b id="deep"></b></span></div><p id="outside"></p>`

func parseHost(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseInline(hostPage)
	if err != nil {
		t.Fatalf("ParseInline: %v", err)
	}
	return doc
}

func TestDispatchBubblesToAncestors(t *testing.T) {
	doc := parseHost(t)
	host := doc.Select("#host")
	deep := doc.Select("#deep")

	var log []string
	host.AddEventListener(EventClick, func(e *MouseEvent) {
		log = append(log, fmt.Sprintf("host:%s:%d", e.Target(), e.Phase()))
	})
	deep.AddEventListener(EventClick, func(e *MouseEvent) {
		log = append(log, fmt.Sprintf("deep:%s:%d", e.Target(), e.Phase()))
	})

	NewEventDispatcher().Click(deep)

	want := []string{"deep:b#deep:0", "host:b#deep:1"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	doc := parseHost(t)
	hostCalled := false
	doc.Select("#host").AddEventListener(EventClick, func(*MouseEvent) { hostCalled = true })
	doc.Select("#inner").AddEventListener(EventClick, func(e *MouseEvent) { e.StopPropagation() })

	NewEventDispatcher().Click(doc.Select("#deep"))
	if hostCalled {
		t.Error("propagation should stop at #inner")
	}
}

func TestPointerMoveHoverChain(t *testing.T) {
	doc := parseHost(t)
	host := doc.Select("#host")

	var log []string
	for _, typ := range []EventType{EventMouseOver, EventMouseOut, EventMouseEnter, EventMouseLeave} {
		host.AddEventListener(typ, func(e *MouseEvent) {
			log = append(log, fmt.Sprintf("%s %s<-%s", e.Type(), e.Target(), e.RelatedTarget))
		})
	}

	d := NewEventDispatcher()
	d.PointerMove(doc.Select("#outside"))
	if len(log) != 0 {
		t.Fatalf("host saw events for an outside element: %v", log)
	}

	d.PointerMove(doc.Select("#inner"))
	d.PointerMove(doc.Select("#deep"))
	d.PointerMove(doc.Select("#deep")) // no-op
	d.PointerMove(doc.Select("#outside"))

	want := []string{
		"mouseover span#inner<-p#outside",
		"mouseenter div#host<-p#outside",
		"mouseout span#inner<-b#deep",
		"mouseover b#deep<-span#inner",
		"mouseout b#deep<-p#outside",
		"mouseleave div#host<-p#outside",
	}
	if len(log) != len(want) {
		t.Fatalf("log =\n%v\nwant\n%v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if !d.Hovered().Is(doc.Select("#outside")) {
		t.Error("hovered should be #outside")
	}
}

func TestListenersSurviveAppend(t *testing.T) {
	doc := parseHost(t)
	canvas, err := NewCanvas(nil, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	clicked := 0
	canvas.Root().AddEventListener(EventClick, func(*MouseEvent) { clicked++ })

	host := doc.Select("#host")
	host.AppendChild(canvas.Root())
	hostClicked := 0
	host.AddEventListener(EventClick, func(*MouseEvent) { hostClicked++ })

	NewEventDispatcher().Click(canvas.Root())
	if clicked != 1 || hostClicked != 1 {
		t.Errorf("clicked = %d hostClicked = %d, want 1 1", clicked, hostClicked)
	}
	if !host.Contains(canvas.Root()) {
		t.Error("host should contain the canvas after append")
	}
}

func TestParseEventType(t *testing.T) {
	for _, typ := range []EventType{EventClick, EventMouseOver, EventMouseOut, EventMouseEnter, EventMouseLeave} {
		got, ok := ParseEventType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseEventType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := ParseEventType("touchstart"); ok {
		t.Error("touchstart should not parse")
	}
}
