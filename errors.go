package tritium

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	roaring "github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrInvalidDigitSymbol is returned for a symbol or lane that is not a digit.
	ErrInvalidDigitSymbol = errors.New("invalid digit symbol")
	// ErrEmptyNumeral is returned when a numeral has no digits.
	ErrEmptyNumeral = errors.New("empty numeral")
	// ErrInvalidBitmap is returned when a bitmap contains a reserved lane.
	ErrInvalidBitmap = errors.New("invalid bitmap")
	// ErrNegativeBitmap is returned when a bitmap is a negative integer.
	ErrNegativeBitmap = errors.New("negative bitmap")
	// ErrOutOfRange is returned when a value does not fit the requested integer type.
	ErrOutOfRange = errors.New("value out of range")
)

// BitmapError is returned when validation rejects a bitmap. It wraps either
// ErrInvalidBitmap or ErrNegativeBitmap.
type BitmapError struct {
	Err  error
	Bits *big.Int
}

// Error implements the error interface.
func (e *BitmapError) Error() string {
	return fmt.Sprintf("%s: %#x", e.Err, e.Bits)
}

// Unwrap returns the underlying sentinel error.
func (e *BitmapError) Unwrap() error {
	return e.Err
}

// ReservedLanes returns the positions of the reserved lanes in the bitmap.
func (e *BitmapError) ReservedLanes() *roaring.Bitmap {
	return reservedLanes(e.Bits)
}

func reservedLanes(x *big.Int) *roaring.Bitmap {
	bm := roaring.New()
	for i, w := range x.Bits() {
		m := (w >> 1) &^ w & all01
		for m != 0 {
			tz := bits.TrailingZeros(uint(m))
			bm.Add(uint32(i*lanesPerWord + tz/laneBits))
			m &= m - 1
		}
	}
	return bm
}
