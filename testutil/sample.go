package testutil

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Ints returns a representative set of integers: every integer in [-40, 40],
// the powers of three that fit in an int64 with their neighbours and negations,
// and the int64 extremes.
func Ints() []int64 {
	var xs []int64
	for x := int64(-40); x <= 40; x++ {
		xs = append(xs, x)
	}
	for p := int64(27); p <= math.MaxInt64/3; p *= 3 {
		xs = append(xs, p-1, p, p+1, -p+1, -p, -p-1)
	}
	return append(xs, math.MaxInt64, math.MinInt64, math.MaxInt64-1, math.MinInt64+1)
}

// Numerals returns n random canonical numerals of up to maxDigits digits,
// generated deterministically from seed.
func Numerals(n, maxDigits int, seed uint64) []string {
	const symbols = "T01"

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	res := make([]string, n)
	for i := range res {
		var sb strings.Builder
		sb.WriteString("0g")
		for range 1 + r.IntN(maxDigits) {
			sb.WriteByte(symbols[r.IntN(len(symbols))])
		}
		res[i] = sb.String()
	}
	return res
}
