package tritium

// Validate certifies that the bitmap of v contains no reserved lane and returns
// a validated copy. An already validated value is returned unchanged unless
// force is set; a negative bitmap is rejected either way.
//
// The bitmap is scanned one machine word at a time: a lane holds the reserved
// pattern 10 exactly when its high bit is set and its low bit is not, which is
// (w>>1) &^ w masked to the low bit of every lane.
func (v Value) Validate(force bool) (Value, error) {
	b := v.int()
	if b.Sign() < 0 {
		return Value{}, &BitmapError{Err: ErrNegativeBitmap, Bits: v.Bits()}
	}
	if v.validated && !force {
		return v, nil
	}

	for _, w := range b.Bits() {
		if (w>>1)&^w&all01 != 0 {
			return Value{}, &BitmapError{Err: ErrInvalidBitmap, Bits: v.Bits()}
		}
	}

	return Value{bits: b, validated: true}, nil
}
