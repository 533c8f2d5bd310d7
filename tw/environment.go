package tw

// Orientation values reported by Environment.Orientation.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Environment is the set of signals conditions are evaluated against:
// the viewport size, the color scheme, and the breakpoint thresholds.
type Environment struct {
	Width, Height float32
	DarkMode      bool

	// Breakpoints used by sm/md/lg shortcuts. Zero value means DefaultBreakpoints.
	Breakpoints BreakpointConfig
}

// DefaultEnvironment returns a 1024x768 light-mode viewport.
func DefaultEnvironment() Environment {
	return Environment{
		Width:       1024,
		Height:      768,
		Breakpoints: DefaultBreakpoints(),
	}
}

// Orientation returns "portrait" when the viewport is taller than it is wide.
func (e Environment) Orientation() string {
	if e.Height > e.Width {
		return OrientationPortrait
	}
	return OrientationLandscape
}

// ActiveBreakpoint returns the breakpoint tier for the viewport width.
func (e Environment) ActiveBreakpoint() Breakpoint {
	return e.breakpoints().ActiveBreakpoint(e.Width)
}

// Matches reports whether condition holds in this environment.
// Conditions that fail to parse never match.
func (e Environment) Matches(condition string) bool {
	q, err := ParseMediaQuery(condition)
	if err != nil {
		return false
	}
	return q.Match(e)
}

func (e Environment) breakpoints() BreakpointConfig {
	if e.Breakpoints.IsZero() {
		return DefaultBreakpoints()
	}
	return e.Breakpoints
}
