package commands

import (
	"errors"
	"flag"
	"fmt"

	"go.uber.org/multierr"

	"github.com/agiangrant/svgicons"
	"github.com/agiangrant/svgicons/retained"
	"github.com/agiangrant/svgicons/tw"
)

// Validate implements the 'svgicons validate' command
func Validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("usage: svgicons validate <config>...")
	}

	failed := 0
	for _, path := range fs.Args() {
		problems := multierr.Errors(checkConfig(path))
		if len(problems) == 0 {
			fmt.Printf("  ✓ %s\n", path)
			continue
		}
		failed++
		fmt.Printf("  ✗ %s\n", path)
		for _, p := range problems {
			fmt.Printf("      %v\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d configs have problems", failed, fs.NArg())
	}
	return nil
}

// checkConfig loads path and reports every problem found in it.
func checkConfig(path string) error {
	cfg, err := svgicons.LoadConfig(path)
	if err != nil {
		return err
	}
	errs := cfg.Validate()

	for i, a := range cfg.Animation {
		for _, v := range a.Properties.Variants() {
			if v.Condition == "" {
				continue
			}
			if _, err := tw.ParseMediaQuery(v.Condition); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("animation %d (%s): %w", i, a.Selector, err))
			}
		}
	}

	if cfg.Source.Kind == svgicons.SourceInline {
		errs = multierr.Append(errs, checkSelectors(cfg))
	}
	return errs
}

// checkSelectors mounts the inline graphic the way an icon does and checks
// that every selector resolves.
func checkSelectors(cfg *svgicons.IconConfig) error {
	doc, err := retained.ParseInline(cfg.Source.Value)
	if err != nil {
		return fmt.Errorf("inline svg: %w", err)
	}
	g := doc.Select("g")
	if g == nil {
		return fmt.Errorf("inline svg: %w: graphic has no <g> group", svgicons.ErrNoElement)
	}
	canvas, err := retained.NewCanvas(nil, 64, 64)
	if err != nil {
		return err
	}
	canvas.Append(g)

	var errs error
	for i, a := range cfg.Animation {
		if canvas.Select(a.Selector) == nil {
			errs = multierr.Append(errs, fmt.Errorf("animation %d: %w: %q", i, svgicons.ErrNoElement, a.Selector))
		}
	}
	return errs
}
