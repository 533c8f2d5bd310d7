package tw

// Breakpoint identifies a responsive width tier.
type Breakpoint int

const (
	BreakpointBase Breakpoint = iota
	BreakpointSM
	BreakpointMD
	BreakpointLG
	BreakpointXL
	Breakpoint2XL
)

// String returns the Tailwind prefix for the breakpoint ("base" for the unprefixed tier).
func (b Breakpoint) String() string {
	switch b {
	case BreakpointSM:
		return "sm"
	case BreakpointMD:
		return "md"
	case BreakpointLG:
		return "lg"
	case BreakpointXL:
		return "xl"
	case Breakpoint2XL:
		return "2xl"
	default:
		return "base"
	}
}

// BreakpointConfig holds the pixel thresholds for responsive breakpoints.
// Tailwind uses mobile-first design: a breakpoint applies at its width and above.
type BreakpointConfig struct {
	SM  float32 `toml:"sm"`  // ≥640px by default
	MD  float32 `toml:"md"`  // ≥768px by default
	LG  float32 `toml:"lg"`  // ≥1024px by default
	XL  float32 `toml:"xl"`  // ≥1280px by default
	XXL float32 `toml:"2xl"` // ≥1536px by default
}

// DefaultBreakpoints returns the standard Tailwind CSS v4 breakpoint values.
func DefaultBreakpoints() BreakpointConfig {
	return BreakpointConfig{
		SM:  640,
		MD:  768,
		LG:  1024,
		XL:  1280,
		XXL: 1536,
	}
}

// IsZero reports whether no thresholds were configured.
func (c BreakpointConfig) IsZero() bool {
	return c == BreakpointConfig{}
}

// ActiveBreakpoint returns which breakpoint is currently active for a given width.
// Returns the highest breakpoint that the width satisfies.
func (c BreakpointConfig) ActiveBreakpoint(width float32) Breakpoint {
	if width >= c.XXL {
		return Breakpoint2XL
	}
	if width >= c.XL {
		return BreakpointXL
	}
	if width >= c.LG {
		return BreakpointLG
	}
	if width >= c.MD {
		return BreakpointMD
	}
	if width >= c.SM {
		return BreakpointSM
	}
	return BreakpointBase
}

// Threshold returns the minimum width of a named breakpoint ("sm", "md", "lg", "xl", "2xl").
func (c BreakpointConfig) Threshold(name string) (float32, bool) {
	switch name {
	case "sm":
		return c.SM, true
	case "md":
		return c.MD, true
	case "lg":
		return c.LG, true
	case "xl":
		return c.XL, true
	case "2xl":
		return c.XXL, true
	default:
		return 0, false
	}
}
