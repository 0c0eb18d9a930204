package tritium

import (
	"fmt"
	"math/big"
)

// Digit is a single balanced ternary digit.
type Digit int8

// The three balanced ternary digits.
const (
	DigitNeg  Digit = -1
	DigitZero Digit = 0
	DigitPos  Digit = 1
)

// Digit symbols of the canonical text form.
const (
	SymbolNeg  byte = 'T'
	SymbolZero byte = '0'
	SymbolPos  byte = '1'

	// InvalidSymbol is rendered in place of a reserved lane. It is not part of
	// the parse alphabet.
	InvalidSymbol byte = '?'
)

// laneSymbols is indexed by lane.
var laneSymbols = [4]byte{SymbolZero, SymbolPos, InvalidSymbol, SymbolNeg}

// ParseDigit decodes a digit symbol.
func ParseDigit(c byte) (Digit, error) {
	switch c {
	case SymbolNeg:
		return DigitNeg, nil
	case SymbolZero:
		return DigitZero, nil
	case SymbolPos:
		return DigitPos, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidDigitSymbol, c)
}

// Symbol returns the text symbol of d, or InvalidSymbol if d is not a digit.
func (d Digit) Symbol() byte {
	if !d.valid() {
		return InvalidSymbol
	}
	return laneSymbols[d.lane()]
}

// String implements the fmt.Stringer interface.
func (d Digit) String() string {
	return string(d.Symbol())
}

func (d Digit) valid() bool {
	return d >= DigitNeg && d <= DigitPos
}

func (d Digit) lane() big.Word {
	switch d {
	case DigitNeg:
		return laneNeg
	case DigitPos:
		return lanePos
	}
	return laneZero
}

func symbolLane(c byte) (big.Word, bool) {
	switch c {
	case SymbolNeg:
		return laneNeg, true
	case SymbolZero:
		return laneZero, true
	case SymbolPos:
		return lanePos, true
	}
	return 0, false
}

func laneDigit(lane big.Word) (Digit, bool) {
	switch lane {
	case laneNeg:
		return DigitNeg, true
	case laneZero:
		return DigitZero, true
	case lanePos:
		return DigitPos, true
	}
	return 0, false
}
