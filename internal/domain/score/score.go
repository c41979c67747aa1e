// Package score converts raw judge input into canonical score values.
//
// Judges enter scores as bare digits without a decimal point: "956"
// means 9.56, "9" means 9.00, and a two-digit entry defaults to a
// half point ("95" means 9.50). Literal decimal input such as "9.567"
// is honored as typed.
package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score bounds and canonical precision.
const (
	MinValue = 0.0
	MaxValue = 10.0

	// roundScale fixes scores at three decimal places.
	roundScale = 1000
)

// Parsed is the outcome of a successful parse. Empty marks input that
// carried no digits at all; callers treat it as clearing the score
// rather than as an error.
type Parsed struct {
	Value float64
	Empty bool
}

// Parse converts raw score text into a canonical value.
//
// Input carrying a decimal point is parsed as the literal number the
// judge typed; shorthand never rewrites it. Bare digit entries go
// through the shorthand grammar: a decimal point is inserted by
// length (3-4 digits two from the right, 2 digits become a half-point
// score, 1 digit a whole score). Anything left over falls back to a
// direct decimal parse.
func Parse(raw string) (Parsed, error) {
	digits := stripNonDigits(raw)
	if digits == "" {
		return Parsed{Empty: true}, nil
	}

	if strings.Contains(raw, ".") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && Valid(v) {
			return Parsed{Value: Round(v)}, nil
		}
	}

	if formatted, ok := expandShorthand(digits); ok {
		v, err := strconv.ParseFloat(formatted, 64)
		if err == nil && Valid(v) {
			return Parsed{Value: Round(v)}, nil
		}
	}

	// Last resort for shapes neither path covered.
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && Valid(v) {
		return Parsed{Value: Round(v)}, nil
	}

	return Parsed{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
}

// expandShorthand rewrites a bare digit string as decimal text.
// Returns false for shapes the shorthand grammar does not cover.
func expandShorthand(digits string) (string, bool) {
	switch n := len(digits); {
	case n >= 3 && n <= 4:
		// 956 -> 9.56, 1000 -> 10.00
		return digits[:n-2] + "." + digits[n-2:], true
	case n == 2:
		// Two-digit entry defaults to a half point: 95 -> 9.50
		return digits[:1] + ".50", true
	case n == 1:
		// 9 -> 9.00
		return digits + ".00", true
	}
	return "", false
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether v is a finite score within [0, 10].
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= MinValue && v <= MaxValue
}

// Round snaps v to the canonical three-decimal precision. Rounding an
// already rounded value is a no-op.
func Round(v float64) float64 {
	return math.Round(v*roundScale) / roundScale
}

// Format renders a stored score for display, three decimal places.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
