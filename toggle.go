package svgicons

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/agiangrant/svgicons/retained"
	"github.com/agiangrant/svgicons/tw"
)

// toggleTask is one element animation prepared for a single toggle. Scheduled
// phases hold their own copy of it.
type toggleTask struct {
	el     *retained.Element
	phases phases
	delay  time.Duration
	motion bool
}

// Toggle plays every element animation for the current direction and flips the
// state. With motion, val runs as a timed transition after the record's delay,
// followed by after and animAfter; without, val is applied before Toggle
// returns and after/animAfter are skipped.
//
// An element animation whose selector matches nothing or whose payloads do not
// decode is skipped; the others still play and the state still flips. The
// skipped ones are returned as a single multierr error. Toggle is a no-op for
// icons without element animations.
func (ic *Icon) Toggle(motion bool) error {
	if ic.config == nil || len(ic.config.Animation) == 0 {
		return nil
	}
	if ic.opts.CancelInFlight {
		ic.cancelInFlight()
	}

	from := ic.state
	var errs error
	for i, a := range ic.config.Animation {
		task, err := ic.prepare(a, from, motion)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("animation %d (%s): %w", i, a.Selector, err))
			continue
		}
		ic.apply(task)
	}
	ic.state = from.Next()

	ic.log.V(1).Info("toggled", "from", from.String(), "to", ic.state.String(), "motion", motion)
	if errs != nil {
		ic.log.Error(errs, "toggle skipped element animations",
			"skipped", len(multierr.Errors(errs)), "total", len(ic.config.Animation))
	}
	return errs
}

func (ic *Icon) prepare(a ElementAnimation, from State, motion bool) (toggleTask, error) {
	rec := Resolve(a, ic.matcher(a)).Direction(from)
	ph, err := rec.decode()
	if err != nil {
		return toggleTask{}, err
	}
	el := ic.canvas.Select(a.Selector)
	if el == nil {
		return toggleTask{}, fmt.Errorf("%w: %q", ErrNoElement, a.Selector)
	}

	task := toggleTask{el: el, phases: ph, motion: motion}
	if motion && rec.DelayFactor != 0 {
		task.delay = time.Duration(rec.DelayFactor * float64(ic.opts.Speed))
	}
	return task, nil
}

// matcher wraps the configured matcher so conditions that cannot match because
// they do not parse are reported at V(1).
func (ic *Icon) matcher(a ElementAnimation) Matcher {
	if !a.Properties.IsMediaMatched() {
		return ic.opts.Matcher
	}
	return MatcherFunc(func(condition string) bool {
		if _, err := tw.ParseMediaQuery(condition); err != nil {
			ic.log.V(1).Info("condition never matches", "selector", a.Selector, "condition", condition, "error", err.Error())
		}
		return ic.opts.Matcher.Matches(condition)
	})
}

func (ic *Icon) apply(t toggleTask) {
	if t.phases.before != nil {
		t.el.SetAttributes(t.phases.before)
	}
	if !t.motion {
		t.el.SetAttributes(t.phases.val)
		return
	}
	timer := ic.loop.AfterFunc(t.delay, func() { ic.animate(t) })
	if ic.opts.CancelInFlight {
		ic.timers = append(ic.timers, timer)
	}
}

func (ic *Icon) animate(t toggleTask) {
	ic.track(t.el.AnimateTo(t.phases.val, ic.opts.Speed, ic.opts.Easing, func() {
		if t.phases.after != nil {
			t.el.SetAttributes(t.phases.after)
		}
		if t.phases.animAfter != nil {
			ic.track(t.el.AnimateTo(t.phases.animAfter, ic.opts.Speed, ic.opts.Easing, nil))
		}
	}))
}

func (ic *Icon) track(anim *retained.Animation) {
	if anim != nil && ic.opts.CancelInFlight {
		ic.animations = append(ic.animations, anim)
	}
}

// cancelInFlight stops everything the previous toggles scheduled. Elements keep
// whatever values their transitions had reached.
func (ic *Icon) cancelInFlight() {
	for _, t := range ic.timers {
		t.Stop()
	}
	for _, a := range ic.animations {
		a.Cancel()
	}
	ic.timers = ic.timers[:0]
	ic.animations = ic.animations[:0]
}
