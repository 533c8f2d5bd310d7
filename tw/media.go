package tw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidCondition is returned for conditions outside the supported media query subset.
var ErrInvalidCondition = errors.New("invalid media condition")

// remBase is the pixel size of 1em/1rem inside media features.
const remBase = 16

var queryCache *lru.Cache[string, any]

func init() {
	var err error
	queryCache, err = lru.New[string, any](512)
	if err != nil {
		panic(fmt.Sprintf("tw: failed to create media query cache: %v", err))
	}
}

type mediaType uint8

const (
	mediaAll mediaType = iota
	mediaScreen
	mediaPrint
)

type featureKind uint8

const (
	featMinWidth featureKind = iota
	featMaxWidth
	featWidth
	featMinHeight
	featMaxHeight
	featHeight
	featOrientation
	featColorScheme
	featBreakpointMin // sm, md, ... resolved against Environment.Breakpoints
	featBreakpointMax // max-sm, max-md, ...
)

type feature struct {
	kind    featureKind
	length  float32
	keyword string
}

type query struct {
	negate   bool
	media    mediaType
	features []feature
}

// MediaQuery is a parsed, comma-separated list of queries. It matches when any query matches.
type MediaQuery struct {
	raw     string
	queries []query
}

// String returns the condition text the query was parsed from.
func (q MediaQuery) String() string {
	return q.raw
}

// Match evaluates the query against env.
func (q MediaQuery) Match(env Environment) bool {
	for _, qq := range q.queries {
		if qq.match(env) {
			return true
		}
	}
	return false
}

func (q query) match(env Environment) bool {
	ok := q.media != mediaPrint
	if ok {
		for _, f := range q.features {
			if !f.match(env) {
				ok = false
				break
			}
		}
	}
	if q.negate {
		return !ok
	}
	return ok
}

func (f feature) match(env Environment) bool {
	switch f.kind {
	case featMinWidth:
		return env.Width >= f.length
	case featMaxWidth:
		return env.Width <= f.length
	case featWidth:
		return env.Width == f.length
	case featMinHeight:
		return env.Height >= f.length
	case featMaxHeight:
		return env.Height <= f.length
	case featHeight:
		return env.Height == f.length
	case featOrientation:
		return env.Orientation() == f.keyword
	case featColorScheme:
		return env.DarkMode == (f.keyword == "dark")
	case featBreakpointMin:
		threshold, _ := env.breakpoints().Threshold(f.keyword)
		return env.Width >= threshold
	case featBreakpointMax:
		threshold, _ := env.breakpoints().Threshold(f.keyword)
		return env.Width < threshold
	}
	return false
}

// ParseMediaQuery parses condition. Results (including failures) are cached by condition text.
func ParseMediaQuery(condition string) (MediaQuery, error) {
	if v, ok := queryCache.Get(condition); ok {
		switch v := v.(type) {
		case MediaQuery:
			return v, nil
		case error:
			return MediaQuery{}, v
		}
	}

	q, err := parseMediaQuery(condition)
	if err != nil {
		queryCache.Add(condition, err)
		return MediaQuery{}, err
	}
	queryCache.Add(condition, q)
	return q, nil
}

func parseMediaQuery(condition string) (MediaQuery, error) {
	text := strings.ToLower(strings.TrimSpace(condition))
	if text == "" {
		return MediaQuery{}, fmt.Errorf("%w: empty condition", ErrInvalidCondition)
	}

	mq := MediaQuery{raw: condition}
	for _, part := range strings.Split(text, ",") {
		q, err := parseQuery(strings.TrimSpace(part))
		if err != nil {
			return MediaQuery{}, fmt.Errorf("%w: %q: %v", ErrInvalidCondition, condition, err)
		}
		mq.queries = append(mq.queries, q)
	}
	return mq, nil
}

func parseQuery(text string) (query, error) {
	var q query
	if text == "" {
		return q, errors.New("empty query")
	}

	// Tailwind shortcuts: sm, md, lg, xl, 2xl and max-sm ... max-2xl
	if f, ok := parseBreakpointShortcut(text); ok {
		q.features = append(q.features, f)
		return q, nil
	}

	tokens, err := tokenize(text)
	if err != nil {
		return q, err
	}

	i := 0
	if i < len(tokens) && !tokens[i].group {
		switch tokens[i].text {
		case "not":
			q.negate = true
			i++
		case "only":
			i++
		}
	}
	hasMedia := false
	if i < len(tokens) && !tokens[i].group {
		switch tokens[i].text {
		case "all":
			q.media = mediaAll
		case "screen":
			q.media = mediaScreen
		case "print":
			q.media = mediaPrint
		default:
			return q, fmt.Errorf("unknown media type %q", tokens[i].text)
		}
		hasMedia = true
		i++
	}

	expectFeature := !hasMedia
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if !expectFeature {
			if tok.group || tok.text != "and" {
				return q, fmt.Errorf("expected 'and', got %q", tok.text)
			}
			expectFeature = true
			continue
		}
		if !tok.group {
			return q, fmt.Errorf("expected (feature), got %q", tok.text)
		}
		f, err := parseFeature(tok.text)
		if err != nil {
			return q, err
		}
		q.features = append(q.features, f)
		expectFeature = false
	}
	if expectFeature {
		return q, errors.New("missing feature after 'and'")
	}
	return q, nil
}

func parseBreakpointShortcut(text string) (feature, bool) {
	name, kind := text, featBreakpointMin
	if rest, ok := strings.CutPrefix(text, "max-"); ok {
		name, kind = rest, featBreakpointMax
	}
	if _, ok := DefaultBreakpoints().Threshold(name); !ok {
		return feature{}, false
	}
	return feature{kind: kind, keyword: name}, true
}

type token struct {
	text  string
	group bool // parenthesized feature
}

// tokenize splits a query into words and parenthesized features. Any CSS
// whitespace or comment separates words.
func tokenize(text string) ([]token, error) {
	var tokens []token
	var group *strings.Builder

	s := scanner.New(text)
	for {
		tok := s.Next()
		switch {
		case tok.Type == scanner.TokenEOF:
			if group != nil {
				return nil, errors.New("unbalanced parenthesis")
			}
			return tokens, nil
		case tok.Type == scanner.TokenError:
			return nil, fmt.Errorf("unexpected %q at column %d", tok.Value, tok.Column)
		case tok.Type == scanner.TokenS || tok.Type == scanner.TokenComment:
			if group != nil {
				group.WriteByte(' ')
			}
		case tok.Type == scanner.TokenFunction, tok.Type == scanner.TokenChar && tok.Value == "(":
			if group != nil {
				return nil, errors.New("nested parenthesis")
			}
			// "and(" scans as a single function token.
			if word := strings.TrimSuffix(tok.Value, "("); word != "" {
				tokens = append(tokens, token{text: word})
			}
			group = new(strings.Builder)
		case tok.Type == scanner.TokenChar && tok.Value == ")":
			if group == nil {
				return nil, errors.New("unbalanced parenthesis")
			}
			tokens = append(tokens, token{text: strings.TrimSpace(group.String()), group: true})
			group = nil
		case group != nil:
			group.WriteString(tok.Value)
		default:
			tokens = append(tokens, token{text: tok.Value})
		}
	}
}

func parseFeature(text string) (feature, error) {
	name, value, ok := strings.Cut(text, ":")
	if !ok {
		return feature{}, fmt.Errorf("feature %q has no value", text)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	lengthFeature := func(kind featureKind) (feature, error) {
		l, err := parseLength(value)
		if err != nil {
			return feature{}, fmt.Errorf("feature %q: %v", name, err)
		}
		return feature{kind: kind, length: l}, nil
	}

	switch name {
	case "min-width":
		return lengthFeature(featMinWidth)
	case "max-width":
		return lengthFeature(featMaxWidth)
	case "width":
		return lengthFeature(featWidth)
	case "min-height":
		return lengthFeature(featMinHeight)
	case "max-height":
		return lengthFeature(featMaxHeight)
	case "height":
		return lengthFeature(featHeight)
	case "orientation":
		if value != OrientationPortrait && value != OrientationLandscape {
			return feature{}, fmt.Errorf("unknown orientation %q", value)
		}
		return feature{kind: featOrientation, keyword: value}, nil
	case "prefers-color-scheme":
		if value != "dark" && value != "light" {
			return feature{}, fmt.Errorf("unknown color scheme %q", value)
		}
		return feature{kind: featColorScheme, keyword: value}, nil
	default:
		return feature{}, fmt.Errorf("unsupported feature %q", name)
	}
}

func parseLength(value string) (float32, error) {
	scale := float64(1)
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "rem"):
		value = strings.TrimSuffix(value, "rem")
		scale = remBase
	case strings.HasSuffix(value, "em"):
		value = strings.TrimSuffix(value, "em")
		scale = remBase
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", value)
	}
	return float32(f * scale), nil
}
