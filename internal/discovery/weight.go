package discovery

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

var half = big.NewFloat(0.5)

// formatWeight renders w with exactly one decimal. Exact halfway values round
// away from zero; everything else is correctly rounded. Negative zero prints
// as "0.0" and non-finite values print as "NaN", "Infinity" or "-Infinity".
func formatWeight(w float64) string {
	switch {
	case math.IsNaN(w):
		return "NaN"
	case math.IsInf(w, 1):
		return "Infinity"
	case math.IsInf(w, -1):
		return "-Infinity"
	case w == 0:
		return "0.0"
	case math.Abs(w) >= 1e21:
		return strconv.FormatFloat(w, 'g', -1, 64)
	}

	scaled := new(big.Float).SetPrec(128).SetFloat64(math.Abs(w))
	scaled.Mul(scaled, big.NewFloat(10))
	whole, _ := scaled.Int(nil)
	rem := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetPrec(128).SetInt(whole))
	if rem.Cmp(half) != 0 {
		return strconv.FormatFloat(w, 'f', 1, 64)
	}

	digits := whole.Add(whole, big.NewInt(1)).String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	var b strings.Builder
	if w < 0 {
		b.WriteByte('-')
	}
	b.WriteString(digits[:len(digits)-1])
	b.WriteByte('.')
	b.WriteString(digits[len(digits)-1:])
	return b.String()
}
