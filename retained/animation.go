package retained

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// AnimationID uniquely identifies an animation.
type AnimationID uint64

var nextAnimationID atomic.Uint64

func newAnimationID() AnimationID {
	return AnimationID(nextAnimationID.Add(1))
}

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInQuad - accelerate from zero
	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOutQuad - accelerate then decelerate
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseInOutCubic - smooth acceleration and deceleration
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}

	// EaseInBack - pull back slightly before moving forward
	EaseInBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return c3*t*t*t - c1*t*t
	}

	// EaseOutBack - slight overshoot then settle (bouncy feel)
	EaseOutBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	}

	// EaseOutElastic - elastic wobble effect
	EaseOutElastic EasingFunc = func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	}

	// EaseOutBounce - bouncing ball effect
	EaseOutBounce EasingFunc = func(t float64) float64 {
		n1 := 7.5625
		d1 := 2.75
		if t < 1/d1 {
			return n1 * t * t
		} else if t < 2/d1 {
			t -= 1.5 / d1
			return n1*t*t + 0.75
		} else if t < 2.5/d1 {
			t -= 2.25 / d1
			return n1*t*t + 0.9375
		} else {
			t -= 2.625 / d1
			return n1*t*t + 0.984375
		}
	}
)

// EasingByName returns the easing function for a given name.
// Accepts CSS-style names ("ease-in-out") and Snap's mina names ("easeinout", "backout").
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in", "easein":
		return EaseInQuad
	case "ease-out", "easeout":
		return EaseOutQuad
	case "ease", "ease-in-out", "easeinout":
		return EaseInOutQuad
	case "cubic":
		return EaseInOutCubic
	case "ease-out-cubic":
		return EaseOutCubic
	case "backin":
		return EaseInBack
	case "back", "backout":
		return EaseOutBack
	case "elastic":
		return EaseOutElastic
	case "bounce":
		return EaseOutBounce
	default:
		return nil
	}
}

// Animation is a running attribute transition on one element.
type Animation struct {
	id         AnimationID
	element    *Element
	startTime  time.Time
	duration   time.Duration
	update     func(progress float64) // Called each tick with eased progress 0-1
	onComplete func()                 // Called once the final values are applied
	easing     EasingFunc
	cancelled  atomic.Bool
}

// Cancel stops the animation where it is. The completion callback never runs.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
}

func (a *Animation) deadline() time.Time {
	return a.startTime.Add(a.duration)
}

// AnimationRegistry holds the active animations of a loop.
type AnimationRegistry struct {
	mu         sync.RWMutex
	animations map[AnimationID]*Animation

	// Callback when animation state changes (for the loop to switch frame pacing)
	onActiveChange func(hasActive bool)
}

// NewAnimationRegistry creates a new animation registry.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		animations: make(map[AnimationID]*Animation),
	}
}

// OnActiveChange sets the callback for when animations become active/inactive.
func (r *AnimationRegistry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers a new animation.
func (r *AnimationRegistry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	// Notify if we went from no animations to having animations
	if wasEmpty && callback != nil {
		callback(true)
	}
}

// HasActive returns true if there are any running animations.
func (r *AnimationRegistry) HasActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations) > 0
}

// Count returns the number of active animations.
func (r *AnimationRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations)
}

// NextDeadline returns the earliest end time of the active animations.
func (r *AnimationRegistry) NextDeadline() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var next time.Time
	found := false
	for _, anim := range r.animations {
		if anim.cancelled.Load() {
			continue
		}
		if d := anim.deadline(); !found || d.Before(next) {
			next, found = d, true
		}
	}
	return next, found
}

// Tick updates all animations and removes completed ones.
// Completion callbacks run after the lock is released, ordered by end time,
// so they may start new animations. Returns true if any animations are still active.
func (r *AnimationRegistry) Tick(now time.Time) bool {
	r.mu.Lock()

	var toRemove []AnimationID
	var toComplete []*Animation

	for id, anim := range r.animations {
		if anim.cancelled.Load() {
			toRemove = append(toRemove, id)
			continue
		}

		elapsed := now.Sub(anim.startTime)
		if elapsed >= anim.duration {
			toRemove = append(toRemove, id)
			toComplete = append(toComplete, anim)
			continue
		}

		// Calculate progress and apply easing
		t := clamp(float64(elapsed)/float64(anim.duration), 0, 1)
		if anim.update != nil {
			anim.update(anim.easing(t))
		}
	}

	// Remove completed animations
	for _, id := range toRemove {
		delete(r.animations, id)
	}

	hasActive := len(r.animations) > 0
	callback := r.onActiveChange
	r.mu.Unlock()

	sort.Slice(toComplete, func(i, j int) bool {
		di, dj := toComplete[i].deadline(), toComplete[j].deadline()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return toComplete[i].id < toComplete[j].id
	})

	// Final update lands exactly on the target values, then completion callbacks
	for _, anim := range toComplete {
		if anim.update != nil {
			anim.update(1)
		}
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}

	// Notify if all animations finished
	if len(toRemove) > 0 && !hasActive && callback != nil {
		callback(false)
	}

	return hasActive
}

// CancelElement cancels every running animation on el.
func (r *AnimationRegistry) CancelElement(el *Element) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, anim := range r.animations {
		if anim.element.Is(el) && !anim.cancelled.Load() {
			anim.Cancel()
			n++
		}
	}
	return n
}

// ============================================================================
// Attribute transitions
// ============================================================================

// AnimateTo transitions the element's attributes to attrs over duration.
// Attributes are interpolated from their current values; onComplete runs once
// the target values are set. An element whose document is not bound to a loop
// takes the target values immediately and completes synchronously.
func (e *Element) AnimateTo(attrs map[string]string, duration time.Duration, easing EasingFunc, onComplete func()) *Animation {
	loop := e.doc.loop
	if loop == nil || duration <= 0 {
		e.SetAttributes(attrs)
		if onComplete != nil {
			onComplete()
		}
		return nil
	}
	if easing == nil {
		easing = EaseLinear
	}

	interps := make(map[string]interpolator, len(attrs))
	for k, to := range attrs {
		from, _ := e.Attr(k)
		interps[k] = newInterpolator(from, to)
	}

	anim := &Animation{
		id:         newAnimationID(),
		element:    e,
		startTime:  loop.Now(),
		duration:   duration,
		easing:     easing,
		onComplete: onComplete,
		update: func(progress float64) {
			frame := make(map[string]string, len(interps))
			for k, interp := range interps {
				frame[k] = interp(progress)
			}
			e.SetAttributes(frame)
		},
	}

	loop.Animations().Add(anim)
	return anim
}
