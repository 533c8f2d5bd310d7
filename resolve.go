package svgicons

// Matcher evaluates environment conditions such as "(max-width: 600px)".
// *retained.Loop and tw.Environment both implement it.
type Matcher interface {
	Matches(condition string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(condition string) bool

// Matches calls f(condition).
func (f MatcherFunc) Matches(condition string) bool {
	return f(condition)
}

// Resolve selects the active property set of a. For media-matched properties
// the first variant whose condition m matches wins; otherwise the first variant
// is returned whether or not it has a condition. Nothing is cached: the
// environment may change between calls.
func Resolve(a ElementAnimation, m Matcher) PropertySet {
	p := a.Properties
	if !p.IsMediaMatched() {
		return p.set
	}
	if len(p.variants) == 0 {
		return PropertySet{}
	}
	if m != nil {
		for _, v := range p.variants {
			if v.Condition != "" && m.Matches(v.Condition) {
				return v.Set
			}
		}
	}
	return p.variants[0].Set
}
