// Package lex encodes balanced ternary values into byte strings whose
// lexicographical order is the numeric order of the values.
//
// An encoded value is a sign byte, followed for non-zero values by the digit
// count as a big-endian uint32 (inverted for negative values, so that longer
// negative numbers sort first) and the digits, most significant first, packed
// four per byte with T, 0 and 1 coded as 00, 01 and 10.
package lex

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ehsanranjbar/tritium"
)

const (
	signNeg  byte = 0x00
	signZero byte = 0x01
	signPos  byte = 0x02

	sizeLen       = 4
	digitsPerByte = 4
)

// ErrMalformed is returned when decoding bytes that were not produced by EncodeValue.
var ErrMalformed = errors.New("malformed lex value")

// EncodeValue returns the order preserving encoding of v. The value is
// validated first.
func EncodeValue(v tritium.Value) ([]byte, error) {
	return AppendValue(nil, v)
}

// AppendValue appends the order preserving encoding of v to dst.
func AppendValue(dst []byte, v tritium.Value) ([]byte, error) {
	ds, err := v.Digits()
	if err != nil {
		return dst, err
	}

	n := len(ds)
	if n == 0 {
		return append(dst, signZero), nil
	}

	sign, size := signPos, EncodeUint32(uint32(n))
	if ds[n-1] == tritium.DigitNeg {
		sign = signNeg
		Invert(size)
	}
	dst = append(dst, sign)
	dst = append(dst, size...)

	var b byte
	for i := 0; i < n; i++ {
		k := i % digitsPerByte
		b |= byte(ds[n-1-i]+1) << (6 - 2*k)
		if k == digitsPerByte-1 || i == n-1 {
			dst = append(dst, b)
			b = 0
		}
	}
	return dst, nil
}

// DecodeValue decodes a value from the head of b and returns the remaining bytes.
func DecodeValue(b []byte) (tritium.Value, []byte, error) {
	if len(b) == 0 {
		return tritium.Value{}, nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	sign, b := b[0], b[1:]
	switch sign {
	case signZero:
		return tritium.Zero, b, nil
	case signNeg, signPos:
	default:
		return tritium.Value{}, nil, fmt.Errorf("%w: sign byte 0x%02x", ErrMalformed, sign)
	}

	if len(b) < sizeLen {
		return tritium.Value{}, nil, fmt.Errorf("%w: short digit count", ErrMalformed)
	}
	size := bytes.Clone(b[:sizeLen])
	if sign == signNeg {
		Invert(size)
	}
	n, b := int(DecodeUint32(size)), b[sizeLen:]

	nb := (n + digitsPerByte - 1) / digitsPerByte
	if n == 0 || len(b) < nb {
		return tritium.Value{}, nil, fmt.Errorf("%w: %d digits in %d bytes", ErrMalformed, n, len(b))
	}

	ds := make([]tritium.Digit, n)
	for i := 0; i < n; i++ {
		code := (b[i/digitsPerByte] >> (6 - 2*(i%digitsPerByte))) & 0b11
		if code > 2 {
			return tritium.Value{}, nil, fmt.Errorf("%w: digit code %d", ErrMalformed, code)
		}
		ds[n-1-i] = tritium.Digit(code) - 1
	}
	if k := n % digitsPerByte; k != 0 {
		if pad := b[nb-1] & (0xff >> (2 * k)); pad != 0 {
			return tritium.Value{}, nil, fmt.Errorf("%w: padding bits 0x%02x", ErrMalformed, pad)
		}
	}

	top := ds[n-1]
	if top == tritium.DigitZero || (top == tritium.DigitNeg) != (sign == signNeg) {
		return tritium.Value{}, nil, fmt.Errorf("%w: leading digit %s under sign 0x%02x", ErrMalformed, top, sign)
	}

	v, err := tritium.FromDigits(ds)
	if err != nil {
		return tritium.Value{}, nil, err
	}
	return v, b[nb:], nil
}
