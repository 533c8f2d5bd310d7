package retained

import (
	"strings"
	"testing"
	"time"
)

const testGraphic = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<g>
	<rect id="bar" x="4" y="10" width="10" height="4" fill="#000"/>
	<path id="arrow" d="M10 20 L30 40" transform="rotate(0 32 32)"/>
</g>
</svg>`

// mountTestGraphic builds a 64x64 canvas on loop and mounts testGraphic's <g> into it.
func mountTestGraphic(t *testing.T, loop *Loop) *Canvas {
	t.Helper()
	canvas, err := NewCanvas(loop, 64, 64)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	fragment, err := ParseInline(testGraphic)
	if err != nil {
		t.Fatalf("ParseInline: %v", err)
	}
	g := fragment.Select("g")
	if g == nil {
		t.Fatal("fragment has no <g>")
	}
	canvas.Append(g)
	return canvas
}

func attr(t *testing.T, el *Element, name string) string {
	t.Helper()
	v, ok := el.Attr(name)
	if !ok {
		t.Fatalf("%s has no %s attribute", el, name)
	}
	return v
}

func TestAnimateToInterpolates(t *testing.T) {
	loop := newTestLoop()
	canvas := mountTestGraphic(t, loop)
	bar := canvas.Select("#bar")
	if bar == nil {
		t.Fatal("bar not found on canvas")
	}

	completed := 0
	bar.AnimateTo(map[string]string{"width": "20", "fill": "#ffffff"}, 100*time.Millisecond, EaseLinear, func() {
		completed++
	})

	loop.Advance(50 * time.Millisecond)
	if got := attr(t, bar, "width"); got != "15" {
		t.Errorf("width at 50%% = %s, want 15", got)
	}
	if got := attr(t, bar, "fill"); got != "#808080" {
		t.Errorf("fill at 50%% = %s, want #808080", got)
	}
	if completed != 0 {
		t.Error("completed before the end of the transition")
	}

	loop.Advance(50 * time.Millisecond)
	if got := attr(t, bar, "width"); got != "20" {
		t.Errorf("final width = %s, want 20", got)
	}
	if got := attr(t, bar, "fill"); got != "#ffffff" {
		t.Errorf("final fill = %s, want #ffffff", got)
	}
	if completed != 1 {
		t.Errorf("onComplete ran %d times, want 1", completed)
	}
	if loop.Animations().HasActive() {
		t.Error("registry should be empty")
	}
}

func TestAnimateToChainStartsAtCompletion(t *testing.T) {
	loop := newTestLoop()
	canvas := mountTestGraphic(t, loop)
	bar := canvas.Select("#bar")

	var secondStart time.Duration
	bar.AnimateTo(map[string]string{"x": "14"}, 100*time.Millisecond, EaseLinear, func() {
		secondStart = loop.Now().Sub(epoch)
		bar.AnimateTo(map[string]string{"x": "24"}, 100*time.Millisecond, EaseLinear, nil)
	})

	loop.Advance(150 * time.Millisecond)
	if secondStart != 100*time.Millisecond {
		t.Errorf("chained transition started at %v, want 100ms", secondStart)
	}
	if got := attr(t, bar, "x"); got != "19" {
		t.Errorf("x halfway through chain = %s, want 19", got)
	}
	loop.Settle()
	if got := attr(t, bar, "x"); got != "24" {
		t.Errorf("x after chain = %s, want 24", got)
	}
}

func TestAnimateToWithoutLoopAppliesImmediately(t *testing.T) {
	fragment, err := ParseInline(testGraphic)
	if err != nil {
		t.Fatal(err)
	}
	bar := fragment.Select("#bar")
	done := false
	if anim := bar.AnimateTo(map[string]string{"width": "40"}, time.Second, EaseLinear, func() { done = true }); anim != nil {
		t.Error("unbound element should not register an animation")
	}
	if got := attr(t, bar, "width"); got != "40" || !done {
		t.Errorf("width = %s done = %v, want 40 true", got, done)
	}
}

func TestAnimationCancel(t *testing.T) {
	loop := newTestLoop()
	canvas := mountTestGraphic(t, loop)
	bar := canvas.Select("#bar")

	completed := false
	bar.AnimateTo(map[string]string{"width": "20"}, 100*time.Millisecond, EaseLinear, func() { completed = true })
	loop.Advance(50 * time.Millisecond)

	if n := loop.Animations().CancelElement(bar); n != 1 {
		t.Fatalf("cancelled %d animations, want 1", n)
	}
	loop.Advance(time.Second)
	if completed {
		t.Error("cancelled animation completed")
	}
	if got := attr(t, bar, "width"); got != "15" {
		t.Errorf("width = %s, want value frozen at 15", got)
	}
}

func TestInterpolator(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		t        float64
		want     string
	}{
		{"number", "0", "10", 0.25, "2.5"},
		{"unit suffix", "10px", "20px", 0.5, "15px"},
		{"short hex", "#000", "#fff", 1, "#fff"},
		{"hex mid", "#000000", "#ff0000", 0.5, "#800000"},
		{"transform", "rotate(0 32 32)", "rotate(90 32 32)", 0.5, "rotate(45 32 32)"},
		{"path", "M10 20 L30 40", "M20 20 L30 60", 0.5, "M15 20 L30 50"},
		{"skeleton mismatch holds", "M10 20", "L10 20", 0.5, "M10 20"},
		{"skeleton mismatch ends on target", "M10 20", "L10 20", 1, "L10 20"},
		{"keyword", "visible", "hidden", 0.9, "visible"},
		{"missing from", "", "5", 0, "5"},
		{"negative", "-10", "10", 0.5, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newInterpolator(tt.from, tt.to)(tt.t); got != tt.want {
				t.Errorf("interpolate(%q, %q, %v) = %q, want %q", tt.from, tt.to, tt.t, got, tt.want)
			}
		})
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "easein", "easeout", "easeinout", "backin", "backout", "elastic", "bounce", "ease-in-out"} {
		fn := EasingByName(name)
		if fn == nil {
			t.Errorf("EasingByName(%q) = nil", name)
			continue
		}
		if got := fn(0); got > 1e-9 || got < -1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
	}
	if EasingByName("wobble") != nil {
		t.Error("unknown easing should be nil")
	}
}

func TestCanvasMarkup(t *testing.T) {
	loop := newTestLoop()
	canvas := mountTestGraphic(t, loop)
	canvas.SetViewBox(0, 0, 64, 64)

	markup := canvas.Markup()
	for _, want := range []string{`width="64"`, `viewBox="0 0 64 64"`, `id="bar"`, `id="arrow"`} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %s:\n%s", want, markup)
		}
	}
	if canvas.Select("#nope") != nil {
		t.Error("unknown selector should return nil")
	}
	if canvas.Select("[[[") != nil {
		t.Error("invalid selector should return nil")
	}
}
