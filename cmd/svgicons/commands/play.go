package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/agiangrant/svgicons"
	"github.com/agiangrant/svgicons/retained"
)

const playPage = `<div id="icon" class="si-icon"></div><p id="outside"></p>`

// Play implements the 'svgicons play' command
func Play(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	project := fs.String("project", DefaultProjectFile, "Project file with option defaults")
	toggles := fs.Int("toggles", 2, "Number of toggles to play")
	motion := fs.Bool("motion", true, "Play transitions (false applies values immediately)")
	reverse := fs.Bool("reverse", false, "Start the icon in the on state")
	width := fs.Float64("width", 0, "Viewport width (overrides the project file)")
	height := fs.Float64("height", 0, "Viewport height (overrides the project file)")
	dark := fs.Bool("dark", false, "Prefer a dark color scheme")
	timeout := fs.Duration("timeout", 30*time.Second, "How long to wait for a url graphic")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(reorderArgs(args))

	if fs.NArg() != 1 {
		return errors.New("usage: svgicons play <config> [options]")
	}

	cfg, err := svgicons.LoadConfig(fs.Arg(0))
	if err != nil {
		return err
	}
	proj, err := LoadConfig(*project)
	if err != nil {
		return err
	}
	opts, err := proj.Options()
	if err != nil {
		return fmt.Errorf("%s: %w", *project, err)
	}

	env := proj.Environment()
	if *width > 0 {
		env.Width = float32(*width)
	}
	if *height > 0 {
		env.Height = float32(*height)
	}
	if *dark {
		env.DarkMode = true
	}

	logger := newLogger(*verbose)
	var loadErr error
	opts.Logger = logger
	opts.OnError = func(err error) { loadErr = err }
	opts.OnLoad = func() { fmt.Println("loaded") }

	page := playPage
	if *reverse {
		page = strings.Replace(page, `class="si-icon"`, `class="si-icon `+svgicons.ReverseClass+`"`, 1)
	}
	doc, err := retained.ParseInline(page)
	if err != nil {
		return err
	}
	host := doc.Select("#icon")

	loop := retained.NewLoop(retained.LoopConfig{Environment: env})
	fmt.Printf("viewport %gx%g (%s, %s)", env.Width, env.Height, env.ActiveBreakpoint(), env.Orientation())
	if env.DarkMode {
		fmt.Print(" dark")
	}
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	icon, err := svgicons.New(ctx, loop, host, cfg, opts)
	if err != nil {
		return err
	}
	if err := waitLoaded(ctx, loop, icon, &loadErr); err != nil {
		return err
	}
	printFrame("initial", icon, 0)

	hovered := false
	for i := 1; i <= *toggles; i++ {
		switch {
		case !*motion:
			// Failures are logged by the icon.
			_ = icon.Toggle(false)
		case opts.Trigger == svgicons.TriggerHover:
			if hovered {
				loop.Events().PointerMove(doc.Select("#outside"))
			} else {
				loop.Events().PointerMove(host)
			}
			hovered = !hovered
		default:
			loop.Events().Click(host)
		}
		elapsed := loop.Settle()
		printFrame(fmt.Sprintf("toggle %d", i), icon, elapsed)
	}

	stats := loop.Stats()
	fmt.Printf("%d timers fired over %d frames\n", stats.TimersFired, stats.Frames)
	return nil
}

// waitLoaded drives loop until the icon's graphic is mounted or fails to load.
func waitLoaded(ctx context.Context, loop *retained.Loop, icon *svgicons.Icon, loadErr *error) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		loop.Advance(0)
		if icon.Loaded() {
			return nil
		}
		if *loadErr != nil {
			return *loadErr
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("graphic did not load: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func printFrame(label string, icon *svgicons.Icon, elapsed time.Duration) {
	fmt.Printf("-- %s: %s (settled in %v)\n", label, icon.State(), elapsed)
	fmt.Println(icon.Canvas().Markup())
}
