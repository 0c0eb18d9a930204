package tritium

import (
	"fmt"
	"math/big"
	"strings"
)

// TrytePrefix is the base tag of the base-27 text form.
const TrytePrefix = "0t"

const (
	tryteDigits  = 3
	tryteSymbols = "MNPQRSTUVWXYZ0123456789ABCD"
	tryteOffset  = 13
)

// ParseTrytes parses the base-27 text form '*'? '0t'? [MNP-Z0-9A-D]+, where
// each symbol stands for three digits with values -13 (M) through 13 (D).
func ParseTrytes(s string) (Value, error) {
	symbols, validated := trimPrefixes(s, TrytePrefix)
	n := len(symbols)
	if n == 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrEmptyNumeral, s)
	}

	words := make([]big.Word, wordsFor(n*tryteDigits))
	for i := 0; i < n; i++ {
		t := strings.IndexByte(tryteSymbols, symbols[i])
		if t < 0 {
			return Value{}, fmt.Errorf("%w %q in %q", ErrInvalidDigitSymbol, symbols[i], s)
		}
		lane := (n - 1 - i) * tryteDigits
		for x := t - tryteOffset; x != 0; lane++ {
			var d Digit
			d, x = splitDigit(x)
			setLane(words, lane, d.lane())
		}
	}

	return Value{bits: new(big.Int).SetBits(words), validated: validated}, nil
}

// splitDigit returns the least significant balanced digit of x and the rest.
func splitDigit(x int) (Digit, int) {
	q, r := x/3, x%3
	if r < 0 {
		r += 3
		q--
	}
	switch r {
	case 1:
		return DigitPos, q
	case 2:
		return DigitNeg, q + 1
	}
	return DigitZero, q
}

// Trytes returns the base-27 text form of v. Like Text it never fails; a tryte
// holding a reserved lane is rendered as InvalidSymbol.
func (v Value) Trytes() string {
	b := v.int()
	n := (laneCount(b) + tryteDigits - 1) / tryteDigits

	var sb strings.Builder
	sb.Grow(n + 4)
	v.writeHead(&sb, TrytePrefix)
	if n == 0 {
		sb.WriteByte(tryteSymbols[tryteOffset])
		return sb.String()
	}

	words := b.Bits()
	for t := n - 1; t >= 0; t-- {
		sb.WriteByte(tryteSymbol(words, t*tryteDigits))
	}
	return sb.String()
}

func tryteSymbol(words []big.Word, lane int) byte {
	x := 0
	for k := tryteDigits - 1; k >= 0; k-- {
		d, ok := laneDigit(laneAt(words, lane+k))
		if !ok {
			return InvalidSymbol
		}
		x = 3*x + int(d)
	}
	return tryteSymbols[x+tryteOffset]
}
