package tritium

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

// maxInt64Lanes is the largest digit count whose values all fit in an int64:
// (3^40 - 1) / 2 < 2^63.
const maxInt64Lanes = 40

// FromInteger converts any integer to a validated Value.
func FromInteger[T constraints.Integer](x T) Value {
	if x < 0 {
		return FromInt64(int64(x))
	}
	return FromUint64(uint64(x))
}

// FromInt64 converts x to a validated Value.
//
// Digits are produced least significant first from the floored remainder
// r = x mod 3 in {0, 1, 2}; a remainder of 2 becomes the digit T and x advances
// to floor((x+1)/3). The same recurrence holds for negative x.
func FromInt64(x int64) Value {
	buf := newLaneBuf(maxInt64Lanes + 1)
	for x != 0 {
		q, r := x/3, x%3
		if r < 0 {
			r += 3
			q--
		}
		switch r {
		case 0:
			buf.push(laneZero)
		case 1:
			buf.push(lanePos)
		case 2:
			buf.push(laneNeg)
			q++
		}
		x = q
	}
	return Value{bits: buf.int(), validated: true}
}

// FromUint64 converts x to a validated Value.
func FromUint64(x uint64) Value {
	buf := newLaneBuf(maxInt64Lanes + 1)
	for x != 0 {
		q, r := x/3, x%3
		switch r {
		case 0:
			buf.push(laneZero)
		case 1:
			buf.push(lanePos)
		case 2:
			buf.push(laneNeg)
			q++
		}
		x = q
	}
	return Value{bits: buf.int(), validated: true}
}

// FromBigInt converts x to a validated Value.
func FromBigInt(x *big.Int) Value {
	x = new(big.Int).Set(x)
	buf := newLaneBuf(x.BitLen()*2/3 + 2)

	var r big.Int
	for x.Sign() != 0 {
		// Euclidean division by a positive divisor floors the quotient.
		x.DivMod(x, bigThree, &r)
		switch r.Int64() {
		case 0:
			buf.push(laneZero)
		case 1:
			buf.push(lanePos)
		case 2:
			buf.push(laneNeg)
			x.Add(x, bigOne)
		}
	}
	return Value{bits: buf.int(), validated: true}
}

// BigInt returns the integer value of v. The value is validated first.
func (v Value) BigInt() (*big.Int, error) {
	v, err := v.Validate(false)
	if err != nil {
		return nil, err
	}

	b := v.int()
	words := b.Bits()
	acc := new(big.Int)
	for i := laneCount(b) - 1; i >= 0; i-- {
		acc.Mul(acc, bigThree)
		switch laneAt(words, i) {
		case lanePos:
			acc.Add(acc, bigOne)
		case laneNeg:
			acc.Sub(acc, bigOne)
		case laneReserved:
			return nil, fmt.Errorf("%w: reserved lane %d", ErrInvalidDigitSymbol, i)
		}
	}
	return acc, nil
}

// Int64 returns the integer value of v, or ErrOutOfRange if it does not fit in
// an int64. The value is validated first.
func (v Value) Int64() (int64, error) {
	v, err := v.Validate(false)
	if err != nil {
		return 0, err
	}

	b := v.int()
	n := laneCount(b)
	if n > maxInt64Lanes {
		x, err := v.BigInt()
		if err != nil {
			return 0, err
		}
		if !x.IsInt64() {
			return 0, fmt.Errorf("%w: %s does not fit in int64", ErrOutOfRange, v)
		}
		return x.Int64(), nil
	}

	words := b.Bits()
	var acc int64
	for i := n - 1; i >= 0; i-- {
		acc *= 3
		switch laneAt(words, i) {
		case lanePos:
			acc++
		case laneNeg:
			acc--
		case laneReserved:
			return 0, fmt.Errorf("%w: reserved lane %d", ErrInvalidDigitSymbol, i)
		}
	}
	return acc, nil
}
