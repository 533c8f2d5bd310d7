// Package svgicons animates SVG icons between an off and an on state.
//
// An icon mounts a graphic into a canvas under a host element and, on every
// toggle, walks its configured element animations in order: each one resolves
// its active property set, picks the record for the current direction and
// applies the before, val, after and animAfter phases to its target element.
// Motion toggles run val as a timed transition, optionally staggered by the
// record's delay factor; non-motion toggles apply val at once.
//
// Icons live on a retained.Loop. Toggle, the load callback and every scheduled
// phase run on that loop, so an Icon must only be used from the loop's goroutine.
package svgicons

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/agiangrant/svgicons/retained"
)

// ReverseClass on the host element starts the icon in the on state.
const ReverseClass = "si-icon-reverse"

// ErrNoElement is returned when a selector matches nothing in the graphic.
var ErrNoElement = errors.New("no matching element")

// Icon is one animated icon instance.
type Icon struct {
	host    *retained.Element
	config  *IconConfig
	opts    Options
	loop    *retained.Loop
	canvas  *retained.Canvas
	log     logr.Logger
	state   State
	reverse bool
	loaded  bool

	// Tracked only with Options.CancelInFlight.
	timers     []*retained.Timer
	animations []*retained.Animation
}

// New creates an icon under host and starts loading its graphic. A nil config
// yields an inert icon. Inline graphics mount before New returns; url sources
// mount later, on loop, once the loader delivers them.
//
// The returned Icon is usable even when err is non-nil: the canvas is mounted
// and Toggle follows its usual rules.
func New(ctx context.Context, loop *retained.Loop, host *retained.Element, config *IconConfig, opts *Options) (*Icon, error) {
	if host == nil {
		return nil, errors.New("svgicons: nil host element")
	}
	if loop == nil {
		loop = retained.NewLoop(retained.DefaultLoopConfig())
	}

	o := DefaultOptions().merge(opts)
	if o.Matcher == nil {
		o.Matcher = loop
	}

	canvas, err := retained.NewCanvas(loop, o.Size.Width, o.Size.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	canvas.SetViewBox(0, 0, o.Size.Width, o.Size.Height)
	host.AppendChild(canvas.Root())

	ic := &Icon{
		host:    host,
		config:  config,
		opts:    o,
		loop:    loop,
		canvas:  canvas,
		log:     o.Logger.WithName("svgicons").WithValues("host", host.String()),
		state:   StateOff,
		reverse: host.HasClass(ReverseClass),
	}
	if config == nil {
		return ic, nil
	}

	src := config.Source
	if src.Value == "" {
		return ic, ErrNoSource
	}
	switch src.Kind {
	case SourceURL:
		loader := o.Loader
		if loader == nil {
			loader = loop.Loader()
		}
		loader.Load(ctx, src.Value, func(doc *retained.Document, err error) {
			if err != nil {
				ic.fail(fmt.Errorf("failed to load %s: %w", src.Value, err))
				return
			}
			if err := ic.mount(doc); err != nil {
				ic.fail(fmt.Errorf("%s: %w", src.Value, err))
			}
		})
	case SourceInline:
		doc, err := retained.ParseInline(src.Value)
		if err != nil {
			return ic, fmt.Errorf("failed to parse inline svg: %w", err)
		}
		if err := ic.mount(doc); err != nil {
			return ic, err
		}
	default:
		return ic, ErrNoSource
	}
	return ic, nil
}

// mount appends the graphic's first group to the canvas, then runs OnLoad,
// binds the trigger and plays the reverse toggle.
func (ic *Icon) mount(doc *retained.Document) error {
	g := doc.Select("g")
	if g == nil {
		return fmt.Errorf("%w: graphic has no <g> group", ErrNoElement)
	}
	ic.canvas.Append(g)
	ic.loaded = true
	ic.log.V(1).Info("graphic mounted", "reverse", ic.reverse)

	ic.opts.OnLoad()
	ic.bindTrigger()
	if ic.reverse {
		// Failures are already logged by Toggle.
		_ = ic.Toggle(false)
	}
	return nil
}

func (ic *Icon) fail(err error) {
	if ic.opts.OnError != nil {
		ic.opts.OnError(err)
		return
	}
	ic.log.Error(err, "icon graphic not mounted")
}

// Host returns the element the icon was created under.
func (ic *Icon) Host() *retained.Element {
	return ic.host
}

// Canvas returns the icon's canvas.
func (ic *Icon) Canvas() *retained.Canvas {
	return ic.canvas
}

// Loop returns the loop the icon runs on.
func (ic *Icon) Loop() *retained.Loop {
	return ic.loop
}

// State returns the current toggle state.
func (ic *Icon) State() State {
	return ic.state
}

// Toggled reports whether the icon is in the on state.
func (ic *Icon) Toggled() bool {
	return ic.state == StateOn
}

// Loaded reports whether the graphic has been mounted.
func (ic *Icon) Loaded() bool {
	return ic.loaded
}
