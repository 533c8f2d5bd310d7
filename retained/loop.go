package retained

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agiangrant/svgicons/tw"
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// LoopConfig configures the loop.
type LoopConfig struct {
	// TargetFPS is the frame rate Run ticks animations at (default: 60).
	TargetFPS int

	// Start is the loop's initial clock reading. Zero means time.Now().
	Start time.Time

	// Environment is the initial viewport and color scheme.
	// Zero value means tw.DefaultEnvironment().
	Environment tw.Environment
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TargetFPS:   60,
		Environment: tw.DefaultEnvironment(),
	}
}

// Timer is a pending AfterFunc callback.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped atomic.Bool
}

// Stop prevents the timer from firing. Returns false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	return !t.stopped.Swap(true)
}

// Due returns when the timer fires.
func (t *Timer) Due() time.Time {
	return t.due
}

// timerOrder sorts timers by due time, then by scheduling order.
func timerOrder(a, b interface{}) int {
	ta, tb := a.(*Timer), b.(*Timer)
	switch {
	case ta.due.Before(tb.due):
		return -1
	case tb.due.Before(ta.due):
		return 1
	case ta.seq < tb.seq:
		return -1
	case ta.seq > tb.seq:
		return 1
	}
	return 0
}

// LoopStats reports loop counters.
type LoopStats struct {
	Frames           uint64
	TimersFired      uint64
	PendingTimers    int
	ActiveAnimations int
}

// Loop is the single logical thread icons run on. Timers, animation ticks,
// posted work and event dispatch all execute on the goroutine that calls
// Run or Advance; only Post is safe from other goroutines.
type Loop struct {
	config     LoopConfig
	animations *AnimationRegistry
	events     *EventDispatcher

	now    time.Time
	timers *priorityqueue.Queue
	seq    uint64

	postMu sync.Mutex
	posted []func()
	wake   chan struct{}

	env tw.Environment

	loaderOnce sync.Once
	loader     *Loader

	running     atomic.Bool
	animating   atomic.Bool
	frameCount  atomic.Uint64
	timersFired atomic.Uint64
}

// NewLoop creates a loop with the specified configuration.
func NewLoop(config LoopConfig) *Loop {
	if config.TargetFPS < 1 {
		config.TargetFPS = 60
	}
	if config.Start.IsZero() {
		config.Start = time.Now()
	}
	env := config.Environment
	if env == (tw.Environment{}) {
		env = tw.DefaultEnvironment()
	}

	l := &Loop{
		config:     config,
		animations: NewAnimationRegistry(),
		events:     NewEventDispatcher(),
		now:        config.Start,
		timers:     priorityqueue.NewWith(timerOrder),
		wake:       make(chan struct{}, 1),
		env:        env,
	}
	l.animations.OnActiveChange(l.animating.Store)
	return l
}

// Animations returns the animation registry for this loop.
func (l *Loop) Animations() *AnimationRegistry {
	return l.animations
}

// Events returns the loop's pointer event dispatcher.
func (l *Loop) Events() *EventDispatcher {
	return l.events
}

// Now returns the loop clock.
func (l *Loop) Now() time.Time {
	return l.now
}

// Environment returns the current viewport and color scheme.
func (l *Loop) Environment() tw.Environment {
	return l.env
}

// SetViewport updates the viewport size conditions are evaluated against.
func (l *Loop) SetViewport(width, height float32) {
	l.env.Width = width
	l.env.Height = height
}

// SetDarkMode updates the color scheme conditions are evaluated against.
func (l *Loop) SetDarkMode(dark bool) {
	l.env.DarkMode = dark
}

// Matches evaluates a media condition against the loop's current environment.
func (l *Loop) Matches(condition string) bool {
	return l.env.Matches(condition)
}

// AfterFunc schedules fn to run on the loop once d has elapsed on the loop clock.
// A zero or negative delay runs fn on the next advance, never re-entrantly.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &Timer{due: l.now.Add(d), seq: l.seq, fn: fn}
	l.timers.Enqueue(t)
	return t
}

// Post queues fn to run on the loop. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.postMu.Lock()
	l.posted = append(l.posted, fn)
	l.postMu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) runPosted() bool {
	l.postMu.Lock()
	posted := l.posted
	l.posted = nil
	l.postMu.Unlock()

	for _, fn := range posted {
		fn()
	}
	return len(posted) > 0
}

// nextTimer returns the earliest live timer without removing it.
func (l *Loop) nextTimer() (*Timer, bool) {
	for {
		v, ok := l.timers.Peek()
		if !ok {
			return nil, false
		}
		t := v.(*Timer)
		if !t.stopped.Load() {
			return t, true
		}
		l.timers.Dequeue()
	}
}

// nextEvent returns the earliest instant a timer fires or an animation completes.
func (l *Loop) nextEvent() (time.Time, bool) {
	next, ok := l.animations.NextDeadline()
	if t, found := l.nextTimer(); found && (!ok || t.due.Before(next)) {
		next, ok = t.due, true
	}
	return next, ok
}

// Advance moves the loop clock forward by d. See AdvanceTo.
func (l *Loop) Advance(d time.Duration) {
	l.AdvanceTo(l.now.Add(d))
}

// AdvanceTo moves the loop clock to target, firing every timer and completing
// every animation that falls due on the way, each at its own instant and in
// order. Animations are then ticked once at target.
func (l *Loop) AdvanceTo(target time.Time) {
	for {
		l.runPosted()

		next, ok := l.nextEvent()
		if !ok || next.After(target) {
			break
		}
		if next.After(l.now) {
			l.now = next
		}

		for {
			t, found := l.nextTimer()
			if !found || t.due.After(l.now) {
				break
			}
			l.timers.Dequeue()
			t.stopped.Store(true)
			l.timersFired.Add(1)
			t.fn()
		}
		l.animations.Tick(l.now)
	}

	if target.After(l.now) {
		l.now = target
	}
	l.animations.Tick(l.now)
	l.frameCount.Add(1)
}

// Settle advances the loop until no timers or animations remain and returns
// the loop time consumed.
func (l *Loop) Settle() time.Duration {
	start := l.now
	for {
		l.runPosted()
		next, ok := l.nextEvent()
		if !ok {
			return l.now.Sub(start)
		}
		l.AdvanceTo(next)
	}
}

// Idle reports whether nothing is scheduled, animating, or posted.
func (l *Loop) Idle() bool {
	l.postMu.Lock()
	posted := len(l.posted)
	l.postMu.Unlock()

	_, pending := l.nextEvent()
	return posted == 0 && !pending
}

// Run drives the loop in real time until ctx is done. While animations are
// active it ticks at TargetFPS; otherwise it sleeps until the next timer is due
// or posted work wakes it.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	frame := time.Second / time.Duration(l.config.TargetFPS)
	timer := time.NewTimer(frame)
	defer timer.Stop()

	for {
		var due <-chan time.Time
		if d, ok := l.nextFrame(frame); ok {
			timer.Reset(d)
			due = timer.C
		} else {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-due:
		case <-l.wake:
		}
		l.AdvanceTo(time.Now())
	}
}

// nextFrame returns how long Run waits before its next frame, or false when
// only posted work can wake it.
func (l *Loop) nextFrame(frame time.Duration) (time.Duration, bool) {
	if l.animating.Load() {
		return frame, true
	}
	t, ok := l.nextTimer()
	if !ok {
		return 0, false
	}
	return max(time.Until(t.due), 0), true
}

// Stats returns loop counters.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Frames:           l.frameCount.Load(),
		TimersFired:      l.timersFired.Load(),
		PendingTimers:    l.timers.Size(),
		ActiveAnimations: l.animations.Count(),
	}
}
