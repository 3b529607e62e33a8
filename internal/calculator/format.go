package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// formatValue renders v with exactly two decimals, rounding the shortest
// decimal form of v half away from zero (0.125 -> "0.13", 2.675 -> "2.68").
// Infinities print as "Infinity"/"-Infinity" and negative values that round
// to zero keep their sign.
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	s := decimal.NewFromFloat(v).StringFixed(2)
	if math.Signbit(v) && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}
