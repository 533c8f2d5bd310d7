package svgicons

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

const jsonConfig = `{
	"url": "https://example.com/menu.svg",
	"svg": "<svg><g></g></svg>",
	"animation": [
		{
			"el": "#top",
			"animProperties": {
				"from": {"val": "{\"transform\":\"rotate(0 32 32)\"}"},
				"to": {"before": {"fill": "#000"}, "val": {"transform": "rotate(45 32 32)"}, "delayFactor": 1.5}
			}
		},
		{
			"el": "#bottom",
			"animProperties": {
				"mediaMatch": [
					{"condition": "(max-width: 600px)", "from": {"val": {"opacity": 1}}, "to": {"val": {"opacity": 0}}},
					{"from": {"val": {"opacity": 1}}, "to": {"val": {"opacity": 0.5}, "after": {"fill": "#f00"}, "animAfter": {"opacity": 1}}}
				]
			}
		}
	]
}`

const tomlConfig = `
svg = '<svg><g><path id="top"/><path id="bottom"/></g></svg>'

[[animation]]
el = "#top"
[animation.animProperties.from]
val = '{"transform":"rotate(0 32 32)"}'
[animation.animProperties.to]
before = { fill = "#000" }
val = { transform = "rotate(45 32 32)" }
delayFactor = 1.5

[[animation]]
el = "#bottom"
[[animation.animProperties.mediaMatch]]
condition = "(max-width: 600px)"
from = { val = { opacity = 1 } }
to = { val = { opacity = 0 } }
[[animation.animProperties.mediaMatch]]
from = { val = { opacity = 1 } }
to = { val = { opacity = 0.5 }, after = { fill = "#f00" }, animAfter = { opacity = 1 } }
`

func TestParseConfigJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(jsonConfig), FormatJSON)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Source != URLSource("https://example.com/menu.svg") {
		t.Errorf("url should win over svg, got %+v", cfg.Source)
	}
	checkParsedConfig(t, cfg)
}

func TestParseConfigTOML(t *testing.T) {
	cfg, err := ParseConfig([]byte(tomlConfig), FormatTOML)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Source.Kind != SourceInline || !strings.Contains(cfg.Source.Value, `id="top"`) {
		t.Errorf("source = %+v, want inline svg", cfg.Source)
	}
	checkParsedConfig(t, cfg)
}

// checkParsedConfig compares decoded payloads, so string and inline-object
// forms of the same attributes are equivalent.
func checkParsedConfig(t *testing.T, cfg *IconConfig) {
	t.Helper()
	if len(cfg.Animation) != 2 {
		t.Fatalf("parsed %d animations, want 2", len(cfg.Animation))
	}

	top := cfg.Animation[0]
	set, ok := top.Properties.Set()
	if top.Selector != "#top" || !ok {
		t.Fatalf("first animation = %+v, want direct #top", top)
	}
	to, err := set.To.decode()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"fill": "#000"}, to.before); diff != "" {
		t.Errorf("to.before (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"transform": "rotate(45 32 32)"}, to.val); diff != "" {
		t.Errorf("to.val (-want +got):\n%s", diff)
	}
	if set.To.DelayFactor != 1.5 || set.From.DelayFactor != 0 {
		t.Errorf("delay factors = %v/%v, want 0/1.5", set.From.DelayFactor, set.To.DelayFactor)
	}

	bottom := cfg.Animation[1]
	if !bottom.Properties.IsMediaMatched() {
		t.Fatal("second animation should be media matched")
	}
	variants := bottom.Properties.Variants()
	if len(variants) != 2 || variants[0].Condition != "(max-width: 600px)" || variants[1].Condition != "" {
		t.Fatalf("variants = %+v", variants)
	}
	fallback, err := variants[1].Set.To.decode()
	if err != nil {
		t.Fatal(err)
	}
	want := phases{
		val:       map[string]string{"opacity": "0.5"},
		after:     map[string]string{"fill": "#f00"},
		animAfter: map[string]string{"opacity": "1"},
	}
	if diff := cmp.Diff(want, fallback, cmp.AllowUnexported(phases{})); diff != "" {
		t.Errorf("fallback to record (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &IconConfig{
		Animation: []ElementAnimation{
			direct("#ok", Record{Val: `{"fill":"#fff"}`}, Record{Val: `{"fill":"#000"}`}),
			direct("#noval", Record{Val: `{"fill":"#fff"}`}, Record{Before: `{"fill":"#000"}`}),
			direct("", Record{Val: `{"fill":"#fff"}`}, Record{Val: `{"fill":"#000"}`}),
			{Selector: "#bad", Properties: MediaMatched(MediaVariant{Set: PropertySet{
				From: Record{Val: `{"fill":"#fff"}`},
				To:   Record{Val: `{"fill":"#000"}`, After: `not json`},
			}})},
			{Selector: "#empty", Properties: MediaMatched()},
		},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Validate should report the missing source: %v", err)
	}
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Validate should report malformed payloads: %v", err)
	}
	// source, #noval, "", #bad, #empty
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("Validate reported %d problems, want 5: %v", n, err)
	}
	if msg := err.Error(); !strings.Contains(msg, "mediaMatch[0].to: after:") {
		t.Errorf("variant errors should name their position: %s", msg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "menu.json")
	tomlPath := filepath.Join(dir, "menu.TOML")
	if err := os.WriteFile(jsonPath, []byte(jsonConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte(tomlConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Errorf("LoadConfig(%s): %v", filepath.Base(path), err)
			continue
		}
		if len(cfg.Animation) != 2 {
			t.Errorf("LoadConfig(%s): %d animations, want 2", filepath.Base(path), len(cfg.Animation))
		}
	}

	if _, err := LoadConfig(filepath.Join(dir, "menu.yaml")); err == nil {
		t.Error("unsupported extension should fail")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"animation":[{"el":"#a","animProperties":{"to":{"val":42}}}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("numeric payload error = %v, want ErrMalformedPayload", err)
	}
}
