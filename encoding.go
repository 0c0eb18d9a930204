package tritium

import (
	"fmt"
	"math/big"

	msgpack "github.com/vmihailenco/msgpack/v5"
)

const flagValidated byte = 1 << 0

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// MarshalBinary implements the encoding.BinaryMarshaler interface. The first
// byte holds the validated flag, followed by the bitmap in big-endian order.
func (v Value) MarshalBinary() ([]byte, error) {
	b := v.int()
	if b.Sign() < 0 {
		return nil, &BitmapError{Err: ErrNegativeBitmap, Bits: v.Bits()}
	}

	var flags byte
	if v.validated {
		flags |= flagValidated
	}
	return append([]byte{flags}, b.Bytes()...), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. A value
// flagged as validated is validated again before it is accepted.
func (v *Value) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no binary data", ErrEmptyNumeral)
	}
	flags := data[0]
	if flags&^flagValidated != 0 {
		return fmt.Errorf("unknown flags 0x%02x", flags)
	}

	u := Value{bits: new(big.Int).SetBytes(data[1:])}
	if flags&flagValidated != 0 {
		var err error
		u, err = u.Validate(true)
		if err != nil {
			return err
		}
	}

	*v = u
	return nil
}

// EncodeMsgpack implements the msgpack.CustomEncoder interface using the
// binary form.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(data)
}

// DecodeMsgpack implements the msgpack.CustomDecoder interface.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	data, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return v.UnmarshalBinary(data)
}
