package retained

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches SVG numbers, including exponents ("1e-3") and bare fractions (".5").
var numberPattern = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// interpolator returns the attribute value at eased progress t (0-1).
type interpolator func(t float64) string

// newInterpolator picks the richest interpolation both values support:
// hex colors, numbers embedded in an identical text skeleton (lengths,
// transforms, path data), or a discrete switch at the end of the transition.
func newInterpolator(from, to string) interpolator {
	if from == to || from == "" {
		return func(float64) string { return to }
	}

	if fromColor, ok := parseHexColor(from); ok {
		if toColor, ok := parseHexColor(to); ok {
			return func(t float64) string {
				if t >= 1 {
					return to
				}
				return formatHexColor(lerpColor(fromColor, toColor, clamp(t, 0, 1)))
			}
		}
	}

	fromNums, fromSkeleton := splitNumbers(from)
	toNums, toSkeleton := splitNumbers(to)
	if len(fromNums) > 0 && len(fromNums) == len(toNums) && equalStrings(fromSkeleton, toSkeleton) {
		return func(t float64) string {
			if t >= 1 {
				return to
			}
			var b strings.Builder
			for i, lit := range toSkeleton {
				b.WriteString(lit)
				if i < len(toNums) {
					v := fromNums[i] + (toNums[i]-fromNums[i])*t
					b.WriteString(formatRounded(v))
				}
			}
			return b.String()
		}
	}

	return func(t float64) string {
		if t >= 1 {
			return to
		}
		return from
	}
}

// splitNumbers returns the numbers in s and the literal text around them.
// len(skeleton) == len(nums)+1.
func splitNumbers(s string) (nums []float64, skeleton []string) {
	last := 0
	for _, loc := range numberPattern.FindAllStringIndex(s, -1) {
		v, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
		if err != nil {
			continue
		}
		skeleton = append(skeleton, s[last:loc[0]])
		nums = append(nums, v)
		last = loc[1]
	}
	skeleton = append(skeleton, s[last:])
	return nums, skeleton
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatRounded(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseHexColor parses #rgb or #rrggbb into 0xRRGGBBAA.
func parseHexColor(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v)<<8 | 0xFF, true
}

func formatHexColor(c uint32) string {
	const digits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	rgb := c >> 8
	for i := 6; i >= 1; i-- {
		out[i] = digits[rgb&0xF]
		rgb >>= 4
	}
	return string(out)
}

// lerpColor linearly interpolates between two RGBA colors.
func lerpColor(from, to uint32, t float64) uint32 {
	fromR := uint8((from >> 24) & 0xFF)
	fromG := uint8((from >> 16) & 0xFF)
	fromB := uint8((from >> 8) & 0xFF)
	fromA := uint8(from & 0xFF)

	toR := uint8((to >> 24) & 0xFF)
	toG := uint8((to >> 16) & 0xFF)
	toB := uint8((to >> 8) & 0xFF)
	toA := uint8(to & 0xFF)

	r := uint8(math.Round(float64(fromR) + (float64(toR)-float64(fromR))*t))
	g := uint8(math.Round(float64(fromG) + (float64(toG)-float64(fromG))*t))
	b := uint8(math.Round(float64(fromB) + (float64(toB)-float64(fromB))*t))
	a := uint8(math.Round(float64(fromA) + (float64(toA)-float64(fromA))*t))

	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
