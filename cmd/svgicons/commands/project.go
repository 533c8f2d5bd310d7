package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/svgicons"
	"github.com/agiangrant/svgicons/retained"
	"github.com/agiangrant/svgicons/tw"
)

// DefaultProjectFile is the project file play reads when -project is not given.
const DefaultProjectFile = "svgicons.toml"

// ProjectConfig represents the svgicons.toml configuration file
type ProjectConfig struct {
	Icon     IconConfig     `toml:"icon"`
	Viewport ViewportConfig `toml:"viewport"`
}

// IconConfig holds the option defaults applied to every icon played.
type IconConfig struct {
	SpeedMS int     `toml:"speed_ms"`
	Easing  string  `toml:"easing"`
	Trigger string  `toml:"trigger"`
	Width   float32 `toml:"width"`
	Height  float32 `toml:"height"`
	// Stop the previous toggle's transitions when a new one starts
	CancelInFlight bool `toml:"cancel_in_flight"`
}

// ViewportConfig is the environment mediaMatch conditions are evaluated in.
type ViewportConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	Dark   bool    `toml:"dark"`
	// Breakpoint thresholds for sm..2xl conditions (Tailwind defaults when unset)
	Breakpoints tw.BreakpointConfig `toml:"breakpoints"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	env := tw.DefaultEnvironment()
	return ProjectConfig{
		Icon: IconConfig{
			SpeedMS: 200,
			Easing:  "linear",
			Trigger: "click",
			Width:   64,
			Height:  64,
		},
		Viewport: ViewportConfig{
			Width:  env.Width,
			Height: env.Height,
		},
	}
}

// LoadConfig loads the project configuration from path.
// A missing default project file yields the default config.
func LoadConfig(path string) (ProjectConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && path == DefaultProjectFile {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Options converts the icon section into icon options.
func (c ProjectConfig) Options() (*svgicons.Options, error) {
	opts := &svgicons.Options{
		Speed:          time.Duration(c.Icon.SpeedMS) * time.Millisecond,
		Size:           svgicons.Size{Width: c.Icon.Width, Height: c.Icon.Height},
		CancelInFlight: c.Icon.CancelInFlight,
	}
	if c.Icon.Easing != "" {
		opts.Easing = retained.EasingByName(c.Icon.Easing)
		if opts.Easing == nil {
			return nil, fmt.Errorf("unknown easing %q", c.Icon.Easing)
		}
	}
	if c.Icon.Trigger != "" {
		trigger, err := svgicons.ParseTriggerMode(c.Icon.Trigger)
		if err != nil {
			return nil, err
		}
		opts.Trigger = trigger
	}
	return opts, nil
}

// Environment returns the viewport section as an environment.
func (c ProjectConfig) Environment() tw.Environment {
	env := tw.DefaultEnvironment()
	if c.Viewport.Width > 0 {
		env.Width = c.Viewport.Width
	}
	if c.Viewport.Height > 0 {
		env.Height = c.Viewport.Height
	}
	env.DarkMode = c.Viewport.Dark
	if !c.Viewport.Breakpoints.IsZero() {
		env.Breakpoints = c.Viewport.Breakpoints
	}
	return env
}
