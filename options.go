package svgicons

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/agiangrant/svgicons/retained"
)

// TriggerMode selects the interaction that toggles an icon.
type TriggerMode uint8

const (
	// TriggerClick toggles on every click inside the host.
	TriggerClick TriggerMode = iota + 1
	// TriggerHover toggles when the pointer enters and again when it leaves
	// the host. Moving between the host's own children does not count.
	TriggerHover
)

func (m TriggerMode) String() string {
	switch m {
	case TriggerClick:
		return "click"
	case TriggerHover:
		return "hover"
	default:
		return "unknown"
	}
}

// ParseTriggerMode accepts "click", "hover" or "mouseover".
func ParseTriggerMode(s string) (TriggerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "click":
		return TriggerClick, nil
	case "hover", "mouseover":
		return TriggerHover, nil
	default:
		return 0, fmt.Errorf("unknown trigger %q (want click or hover)", s)
	}
}

// Size is the canvas size in user units.
type Size struct {
	Width, Height float32
}

// Options configures an icon. Zero fields keep their defaults when passed to New.
type Options struct {
	// Speed is the duration of each transition (default: 200ms).
	Speed time.Duration

	// Easing shapes every transition (default: retained.EaseLinear).
	Easing retained.EasingFunc

	// Trigger selects click or hover toggling (default: TriggerClick).
	Trigger TriggerMode

	// Size of the canvas; the viewBox matches it (default: 64x64).
	Size Size

	// OnLoad runs once after the graphic is mounted.
	OnLoad func()

	// OnToggle runs after every user-triggered toggle.
	OnToggle func()

	// OnError receives graphic load failures. Defaults to logging them.
	OnError func(error)

	// Logger receives toggle failures and tracing (default: discard).
	Logger logr.Logger

	// Matcher evaluates mediaMatch conditions. Defaults to the icon's loop.
	Matcher Matcher

	// Loader fetches url sources. Defaults to the loop's shared loader.
	Loader *retained.Loader

	// CancelInFlight stops the previous toggle's pending timers and running
	// transitions before a new toggle schedules its own.
	CancelInFlight bool
}

// DefaultOptions returns a fresh set of defaults.
func DefaultOptions() Options {
	return Options{
		Speed:    200 * time.Millisecond,
		Easing:   retained.EaseLinear,
		Trigger:  TriggerClick,
		Size:     Size{Width: 64, Height: 64},
		OnLoad:   func() {},
		OnToggle: func() {},
		Logger:   logr.Discard(),
	}
}

// merge overwrites o's fields with the ones set in override.
func (o Options) merge(override *Options) Options {
	if override == nil {
		return o
	}
	if override.Speed > 0 {
		o.Speed = override.Speed
	}
	if override.Easing != nil {
		o.Easing = override.Easing
	}
	if override.Trigger != 0 {
		o.Trigger = override.Trigger
	}
	if override.Size.Width > 0 {
		o.Size.Width = override.Size.Width
	}
	if override.Size.Height > 0 {
		o.Size.Height = override.Size.Height
	}
	if override.OnLoad != nil {
		o.OnLoad = override.OnLoad
	}
	if override.OnToggle != nil {
		o.OnToggle = override.OnToggle
	}
	if override.OnError != nil {
		o.OnError = override.OnError
	}
	if override.Logger.GetSink() != nil {
		o.Logger = override.Logger
	}
	if override.Matcher != nil {
		o.Matcher = override.Matcher
	}
	if override.Loader != nil {
		o.Loader = override.Loader
	}
	if override.CancelInFlight {
		o.CancelInFlight = true
	}
	return o
}
