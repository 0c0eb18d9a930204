package tritium

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// Prefix is the base tag of the canonical text form.
	Prefix = "0g"

	uncheckedMark = "*"
)

// Parse parses the canonical text form '*'? '0g'? [T01]+. Digits are read most
// significant first. A leading '*' yields an unvalidated value; its digits are
// still decoded and checked against the alphabet.
func Parse(s string) (Value, error) {
	digits, validated := trimPrefixes(s, Prefix)
	n := len(digits)
	if n == 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrEmptyNumeral, s)
	}

	words := make([]big.Word, wordsFor(n))
	for i := 0; i < n; i++ {
		lane, ok := symbolLane(digits[i])
		if !ok {
			return Value{}, fmt.Errorf("%w %q in %q", ErrInvalidDigitSymbol, digits[i], s)
		}
		setLane(words, n-1-i, lane)
	}

	return Value{bits: new(big.Int).SetBits(words), validated: validated}, nil
}

// MustParse is like Parse but panics if an error occurs.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func trimPrefixes(s, prefix string) (digits string, validated bool) {
	digits, unchecked := strings.CutPrefix(s, uncheckedMark)
	return strings.TrimPrefix(digits, prefix), !unchecked
}

// Text returns the canonical text form of v, most significant digit first.
// It never fails: an unvalidated value is marked with '*', reserved lanes are
// rendered as InvalidSymbol and a negative bitmap gets a '-' before its digits.
func (v Value) Text() string {
	b := v.int()
	n := laneCount(b)

	var sb strings.Builder
	sb.Grow(n + 4)
	v.writeHead(&sb, Prefix)
	if n == 0 {
		sb.WriteByte(SymbolZero)
		return sb.String()
	}

	words := b.Bits()
	for i := n - 1; i >= 0; i-- {
		sb.WriteByte(laneSymbols[laneAt(words, i)])
	}
	return sb.String()
}

func (v Value) writeHead(sb *strings.Builder, prefix string) {
	if !v.validated {
		sb.WriteString(uncheckedMark)
	}
	sb.WriteString(prefix)
	if v.int().Sign() < 0 {
		sb.WriteByte('-')
	}
}

// String implements the fmt.Stringer interface.
func (v Value) String() string {
	return v.Text()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.Text()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (v *Value) UnmarshalText(text []byte) error {
	u, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = u
	return nil
}
