package tritium

import (
	"fmt"
	"math/big"
)

// Value is an immutable balanced ternary number packed two bits per digit.
//
// The zero Value is an unvalidated zero.
type Value struct {
	bits      *big.Int
	validated bool
}

// Zero is the validated zero value.
var Zero = Value{bits: new(big.Int), validated: true}

var zeroInt = new(big.Int)

// FromRaw creates a Value from a bitmap and a validated flag as is. No lane
// is checked; a value built with validated set to true is trusted by every
// operation that does not force validation.
func FromRaw(bits *big.Int, validated bool) Value {
	b := new(big.Int)
	if bits != nil {
		b.Set(bits)
	}
	return Value{bits: b, validated: validated}
}

// FromDigits creates a validated Value from digits ordered least significant
// first.
func FromDigits(digits []Digit) (Value, error) {
	buf := newLaneBuf(len(digits))
	for i, d := range digits {
		if !d.valid() {
			return Value{}, fmt.Errorf("%w: digit %d at position %d", ErrInvalidDigitSymbol, d, i)
		}
		buf.push(d.lane())
	}
	return Value{bits: buf.int(), validated: true}, nil
}

func (v Value) int() *big.Int {
	if v.bits == nil {
		return zeroInt
	}
	return v.bits
}

// Bits returns a copy of the underlying bitmap.
func (v Value) Bits() *big.Int {
	return new(big.Int).Set(v.int())
}

// Validated reports whether v has been certified free of reserved lanes.
func (v Value) Validated() bool {
	return v.validated
}

// IsZero reports whether v is zero.
func (v Value) IsZero() bool {
	return v.int().Sign() == 0
}

// Len returns the number of significant digits of v. Zero has none.
func (v Value) Len() int {
	return laneCount(v.int())
}

// Sign returns -1, 0 or +1 depending on the most significant digit of v. The
// result is meaningless for a value that would fail validation.
func (v Value) Sign() int {
	b := v.int()
	n := laneCount(b)
	if n == 0 {
		return 0
	}
	switch laneAt(b.Bits(), n-1) {
	case lanePos:
		return 1
	case laneNeg:
		return -1
	}
	return 0
}

// Digits returns the digits of v, least significant first.
func (v Value) Digits() ([]Digit, error) {
	v, err := v.Validate(false)
	if err != nil {
		return nil, err
	}

	b := v.int()
	words := b.Bits()
	ds := make([]Digit, laneCount(b))
	for i := range ds {
		d, ok := laneDigit(laneAt(words, i))
		if !ok {
			return nil, fmt.Errorf("%w: reserved lane %d", ErrInvalidDigitSymbol, i)
		}
		ds[i] = d
	}
	return ds, nil
}

// Equal reports whether v and w have the same bitmap and validated flag.
func (v Value) Equal(w Value) bool {
	return v.validated == w.validated && v.int().Cmp(w.int()) == 0
}
