package tw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaQueryMatch(t *testing.T) {
	phone := Environment{Width: 375, Height: 812}
	desktop := Environment{Width: 1440, Height: 900, DarkMode: true}

	tests := []struct {
		name      string
		condition string
		phone     bool
		desktop   bool
	}{
		{"max width px", "(max-width: 640px)", true, false},
		{"min width px", "(min-width: 641px)", false, true},
		{"min width em", "(min-width: 40em)", false, true},
		{"screen and feature", "screen and (max-width: 767px)", true, false},
		{"only screen", "only screen and (min-width: 1024px)", false, true},
		{"all media", "all", true, true},
		{"print never matches", "print", false, false},
		{"not print", "not print", true, true},
		{"not feature", "not (max-width: 640px)", false, true},
		{"conjunction", "(min-width: 300px) and (max-width: 400px)", true, false},
		{"comma is or", "(max-width: 400px), (prefers-color-scheme: dark)", true, true},
		{"orientation", "(orientation: portrait)", true, false},
		{"color scheme", "(prefers-color-scheme: light)", true, false},
		{"case insensitive", "SCREEN AND (MIN-WIDTH: 1000PX)", false, true},
		{"tailwind md", "md", false, true},
		{"tailwind max-md", "max-md", true, false},
		{"tailwind 2xl", "2xl", false, false},
		{"tab separated", "screen\tand (max-width: 600px)", true, false},
		{"newline separated", "screen and\n(max-width: 600px)", true, false},
		{"no space before feature", "screen and(min-width: 1024px)", false, true},
		{"comment between words", "screen /* wide */ and (min-width: 1024px)", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseMediaQuery(tt.condition)
			require.NoError(t, err)
			assert.Equal(t, tt.phone, q.Match(phone), "phone")
			assert.Equal(t, tt.desktop, q.Match(desktop), "desktop")
		})
	}
}

func TestParseMediaQueryErrors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"(min-width 640px)",
		"(min-width: wide)",
		"(hover: hover)",
		"tv",
		"screen and",
		"(min-width: 10px) (max-width: 20px)",
		"(min-width: 10px",
		"screen)",
		"(orientation: sideways)",
		"screen\tand\t(min-width:\t10 px)",
		"screen\n(max-width: 600px)",
		"((min-width: 10px))",
	}
	for _, condition := range bad {
		t.Run(condition, func(t *testing.T) {
			_, err := ParseMediaQuery(condition)
			assert.ErrorIs(t, err, ErrInvalidCondition)
			// cached failures keep failing
			_, err = ParseMediaQuery(condition)
			assert.ErrorIs(t, err, ErrInvalidCondition)
		})
	}
}

func TestEnvironmentMatches(t *testing.T) {
	env := Environment{Width: 700, Height: 500}
	assert.True(t, env.Matches("sm"))
	assert.False(t, env.Matches("md"))
	assert.False(t, env.Matches("not a query ("))

	env.Breakpoints = BreakpointConfig{SM: 100, MD: 600, LG: 900, XL: 1200, XXL: 1500}
	assert.True(t, env.Matches("md"), "custom breakpoints apply to shortcuts")
	assert.Equal(t, BreakpointMD, env.ActiveBreakpoint())
	assert.Equal(t, OrientationLandscape, env.Orientation())
}

func TestActiveBreakpoint(t *testing.T) {
	cfg := DefaultBreakpoints()
	tests := []struct {
		width float32
		want  Breakpoint
	}{
		{0, BreakpointBase},
		{639, BreakpointBase},
		{640, BreakpointSM},
		{800, BreakpointMD},
		{1024, BreakpointLG},
		{1300, BreakpointXL},
		{2000, Breakpoint2XL},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ActiveBreakpoint(tt.width), "width %v", tt.width)
	}
	assert.Equal(t, "2xl", Breakpoint2XL.String())
	assert.Equal(t, "base", BreakpointBase.String())
}
