package metrics

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Round2 rounds v to two decimal places the way a fixed-point formatter
// does: the exact binary value of v is rounded, ties away from zero, and
// the decimal result is read back as the nearest float64. So 1.005 (stored
// just below 1.005) rounds to 1.00 while 0.125 rounds to 0.13.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	neg := math.Signbit(v)
	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	digits := n.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	r, err := strconv.ParseFloat(digits[:len(digits)-2]+"."+digits[len(digits)-2:], 64)
	if err != nil {
		return math.Round(v*100) / 100
	}
	if neg {
		return -r
	}
	return r
}
