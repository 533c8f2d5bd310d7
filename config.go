package svgicons

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// ErrNoSource is returned when an icon config names neither a url nor inline svg.
var ErrNoSource = errors.New("icon config has no url or svg source")

// SourceKind identifies where an icon's graphic comes from.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceURL
	SourceInline
)

func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "url"
	case SourceInline:
		return "svg"
	default:
		return "none"
	}
}

// Source is a graphic reference: a URL to fetch or inline markup.
type Source struct {
	Kind  SourceKind
	Value string
}

// URLSource references a graphic by URL (http(s)://, file:// or a local path).
func URLSource(url string) Source {
	return Source{Kind: SourceURL, Value: url}
}

// InlineSource carries the graphic markup directly.
func InlineSource(markup string) Source {
	return Source{Kind: SourceInline, Value: markup}
}

// IconConfig describes one icon: its graphic and the ordered element animations
// played on every toggle.
type IconConfig struct {
	Source    Source
	Animation []ElementAnimation
}

// ElementAnimation targets one sub-element of the graphic.
type ElementAnimation struct {
	Selector   string
	Properties AnimProperties
}

// AnimProperties is either a single property set or an ordered list of
// media-matched variants. Build one with DirectProperties or MediaMatched.
type AnimProperties struct {
	set      PropertySet
	variants []MediaVariant
	matched  bool
}

// DirectProperties wraps a property set that applies in every environment.
func DirectProperties(set PropertySet) AnimProperties {
	return AnimProperties{set: set}
}

// MediaMatched builds a variant list. The first variant whose condition matches
// wins; when none does, the first variant is used.
func MediaMatched(variants ...MediaVariant) AnimProperties {
	return AnimProperties{variants: variants, matched: true}
}

// IsMediaMatched reports whether p holds a variant list.
func (p AnimProperties) IsMediaMatched() bool {
	return p.matched
}

// Set returns the direct property set. ok is false for media-matched properties.
func (p AnimProperties) Set() (set PropertySet, ok bool) {
	return p.set, !p.matched
}

// Variants returns the media-matched variants in order.
func (p AnimProperties) Variants() []MediaVariant {
	return p.variants
}

// sets returns every property set p can resolve to.
func (p AnimProperties) sets() []PropertySet {
	if !p.matched {
		return []PropertySet{p.set}
	}
	sets := make([]PropertySet, len(p.variants))
	for i, v := range p.variants {
		sets[i] = v.Set
	}
	return sets
}

// MediaVariant pairs an environment condition with a property set. An empty
// condition never matches; such a variant is only reached as the fallback.
type MediaVariant struct {
	Condition string
	Set       PropertySet
}

// PropertySet holds the records for both toggle directions. From plays when the
// icon leaves the on state, To when it leaves the off state.
type PropertySet struct {
	From Record
	To   Record
}

// Direction returns the record played when toggling out of s.
func (ps PropertySet) Direction(s State) Record {
	if s == StateOn {
		return ps.From
	}
	return ps.To
}

// Record describes the phases applied to an element in one direction.
type Record struct {
	// Before is applied immediately, before any transition.
	Before Payload
	// Val is the target attribute set. Required.
	Val Payload
	// After is applied when the Val transition completes.
	After Payload
	// AnimAfter is the target of a second transition started after After.
	AnimAfter Payload
	// DelayFactor multiplies the speed to stagger motion toggles.
	DelayFactor float64
}

// Validate decodes every payload and checks the required fields.
func (c *IconConfig) Validate() error {
	var errs error
	if c.Source.Kind == SourceNone {
		errs = multierr.Append(errs, ErrNoSource)
	}
	for i, a := range c.Animation {
		if err := a.validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("animation %d (%s): %w", i, a.Selector, err))
		}
	}
	return errs
}

func (a ElementAnimation) validate() error {
	var errs error
	if strings.TrimSpace(a.Selector) == "" {
		errs = multierr.Append(errs, errors.New("empty selector"))
	}
	if a.Properties.matched && len(a.Properties.variants) == 0 {
		errs = multierr.Append(errs, errors.New("mediaMatch has no entries"))
	}
	for vi, set := range a.Properties.sets() {
		for _, dir := range []struct {
			name string
			rec  Record
		}{{"from", set.From}, {"to", set.To}} {
			if _, err := dir.rec.decode(); err != nil {
				if a.Properties.matched {
					err = fmt.Errorf("mediaMatch[%d].%s: %w", vi, dir.name, err)
				} else {
					err = fmt.Errorf("%s: %w", dir.name, err)
				}
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

// phases is a record with its payloads decoded.
type phases struct {
	before, val, after, animAfter map[string]string
}

func (r Record) decode() (phases, error) {
	var p phases
	if r.Val.IsZero() {
		return p, fmt.Errorf("%w: val is required", ErrMalformedPayload)
	}
	var err error
	if p.before, err = r.Before.Decode(); err != nil {
		return p, fmt.Errorf("before: %w", err)
	}
	if p.val, err = r.Val.Decode(); err != nil {
		return p, fmt.Errorf("val: %w", err)
	}
	if p.after, err = r.After.Decode(); err != nil {
		return p, fmt.Errorf("after: %w", err)
	}
	if p.animAfter, err = r.AnimAfter.Decode(); err != nil {
		return p, fmt.Errorf("animAfter: %w", err)
	}
	return p, nil
}

// On-disk shape shared by the JSON and TOML forms. Payload fields are either a
// serialized string or an inline object.

type fileConfig struct {
	URL       string          `json:"url,omitempty" toml:"url,omitempty"`
	SVG       string          `json:"svg,omitempty" toml:"svg,omitempty"`
	Animation []fileAnimation `json:"animation" toml:"animation"`
}

type fileAnimation struct {
	El             string             `json:"el" toml:"el"`
	AnimProperties fileAnimProperties `json:"animProperties" toml:"animProperties"`
}

type fileAnimProperties struct {
	From       *fileRecord   `json:"from,omitempty" toml:"from,omitempty"`
	To         *fileRecord   `json:"to,omitempty" toml:"to,omitempty"`
	MediaMatch []fileVariant `json:"mediaMatch,omitempty" toml:"mediaMatch,omitempty"`
}

type fileVariant struct {
	Condition string      `json:"condition,omitempty" toml:"condition,omitempty"`
	From      *fileRecord `json:"from,omitempty" toml:"from,omitempty"`
	To        *fileRecord `json:"to,omitempty" toml:"to,omitempty"`
}

type fileRecord struct {
	Before      any     `json:"before,omitempty" toml:"before,omitempty"`
	Val         any     `json:"val,omitempty" toml:"val,omitempty"`
	After       any     `json:"after,omitempty" toml:"after,omitempty"`
	AnimAfter   any     `json:"animAfter,omitempty" toml:"animAfter,omitempty"`
	DelayFactor float64 `json:"delayFactor,omitempty" toml:"delayFactor,omitempty"`
}

func (f *fileRecord) record() (Record, error) {
	if f == nil {
		return Record{}, nil
	}
	r := Record{DelayFactor: f.DelayFactor}
	var err error
	if r.Before, err = payloadFrom(f.Before); err != nil {
		return r, fmt.Errorf("before: %w", err)
	}
	if r.Val, err = payloadFrom(f.Val); err != nil {
		return r, fmt.Errorf("val: %w", err)
	}
	if r.After, err = payloadFrom(f.After); err != nil {
		return r, fmt.Errorf("after: %w", err)
	}
	if r.AnimAfter, err = payloadFrom(f.AnimAfter); err != nil {
		return r, fmt.Errorf("animAfter: %w", err)
	}
	return r, nil
}

func propertySet(from, to *fileRecord) (PropertySet, error) {
	var set PropertySet
	var err error
	if set.From, err = from.record(); err != nil {
		return set, fmt.Errorf("from.%w", err)
	}
	if set.To, err = to.record(); err != nil {
		return set, fmt.Errorf("to.%w", err)
	}
	return set, nil
}

func (f *fileConfig) iconConfig() (*IconConfig, error) {
	cfg := &IconConfig{}
	switch {
	case f.URL != "":
		cfg.Source = URLSource(f.URL)
	case f.SVG != "":
		cfg.Source = InlineSource(f.SVG)
	}

	for i, fa := range f.Animation {
		a := ElementAnimation{Selector: fa.El}
		if mm := fa.AnimProperties.MediaMatch; mm != nil {
			variants := make([]MediaVariant, 0, len(mm))
			for vi, fv := range mm {
				set, err := propertySet(fv.From, fv.To)
				if err != nil {
					return nil, fmt.Errorf("animation %d mediaMatch[%d]: %w", i, vi, err)
				}
				variants = append(variants, MediaVariant{Condition: fv.Condition, Set: set})
			}
			a.Properties = MediaMatched(variants...)
		} else {
			set, err := propertySet(fa.AnimProperties.From, fa.AnimProperties.To)
			if err != nil {
				return nil, fmt.Errorf("animation %d: %w", i, err)
			}
			a.Properties = DirectProperties(set)
		}
		cfg.Animation = append(cfg.Animation, a)
	}
	return cfg, nil
}

// ConfigFormat selects the encoding of a config file.
type ConfigFormat string

const (
	FormatJSON ConfigFormat = "json"
	FormatTOML ConfigFormat = "toml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .json or .toml)", filepath.Ext(path))
	}
}

// ParseConfig decodes an icon config. The source is not validated here; call
// Validate to check payloads.
func ParseConfig(data []byte, format ConfigFormat) (*IconConfig, error) {
	var f fileConfig
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	return f.iconConfig()
}

// LoadConfig reads an icon config from a .json or .toml file.
func LoadConfig(path string) (*IconConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
