package svgicons

import "github.com/agiangrant/svgicons/retained"

// bindTrigger makes user interaction on the host toggle the icon with motion.
func (ic *Icon) bindTrigger() {
	handler := func(e *retained.MouseEvent) {
		if !ic.isTrigger(e) {
			return
		}
		// Failures are already logged by Toggle.
		_ = ic.Toggle(true)
		ic.opts.OnToggle()
	}

	switch ic.opts.Trigger {
	case TriggerHover:
		ic.host.AddEventListener(retained.EventMouseOver, handler)
		ic.host.AddEventListener(retained.EventMouseOut, handler)
	default:
		ic.host.AddEventListener(retained.EventClick, handler)
	}
}

func (ic *Icon) isTrigger(e *retained.MouseEvent) bool {
	switch e.Type() {
	case retained.EventMouseOver, retained.EventMouseOut:
		return crossesBoundary(ic.host, e)
	default:
		return true
	}
}

// crossesBoundary reports whether a mouseover or mouseout moved the pointer
// into or out of host itself. Moves between host and its descendants bubble up
// as over/out pairs whose related target is still inside host.
func crossesBoundary(host *retained.Element, e *retained.MouseEvent) bool {
	return e.RelatedTarget == nil || !host.Contains(e.RelatedTarget)
}
