package codec

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/ehsanranjbar/tritium"
	"github.com/ehsanranjbar/tritium/codec/lex"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Codec is an interface for encoding and decoding values.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Encoder is an interface for encoding values.
type Encoder[T any] interface {
	Encode(v T) ([]byte, error)
}

// Decoder is an interface for decoding values.
type Decoder[T any] interface {
	Decode(bz []byte) (T, error)
}

// CodecFor returns the codec for the given type, or nil if there is none.
// Ternary values get the order preserving LexValueCodec.
func CodecFor[T any]() Codec[T] {
	rt := reflect.TypeFor[T]()
	switch {
	case rt == reflect.TypeFor[tritium.Value]():
		return any(LexValueCodec{}).(Codec[T])
	case rt.Kind() == reflect.String:
		return any(StringCodec{}).(Codec[T])
	case rt.Implements(reflect.TypeFor[encoding.BinaryMarshaler]()) &&
		reflect.TypeFor[*T]().Implements(reflect.TypeFor[encoding.BinaryUnmarshaler]()):
		return BinaryCodec[T]{}
	case rt.Implements(reflect.TypeFor[encoding.TextMarshaler]()) &&
		reflect.TypeFor[*T]().Implements(reflect.TypeFor[encoding.TextUnmarshaler]()):
		return TextCodec[T]{}
	}

	return nil
}

// StringCodec is a codec for strings.
type StringCodec struct{}

// Encode encodes the given string to bytes.
func (StringCodec) Encode(v string) ([]byte, error) {
	return []byte(v), nil
}

// Decode decodes the given bytes to a string.
func (StringCodec) Decode(bz []byte) (string, error) {
	return string(bz), nil
}

// LexValueCodec encodes ternary values so that byte order follows numeric order.
type LexValueCodec struct{}

// Encode encodes the given value to bytes.
func (LexValueCodec) Encode(v tritium.Value) ([]byte, error) {
	return lex.EncodeValue(v)
}

// Decode decodes the given bytes to a value. Trailing bytes are rejected.
func (LexValueCodec) Decode(bz []byte) (tritium.Value, error) {
	v, rest, err := lex.DecodeValue(bz)
	if err != nil {
		return tritium.Value{}, err
	}
	if len(rest) != 0 {
		return tritium.Value{}, fmt.Errorf("%w: %d trailing bytes", lex.ErrMalformed, len(rest))
	}
	return v, nil
}

// BinaryCodec is a codec for types that implement encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
type BinaryCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (BinaryCodec[T]) Encode(v T) ([]byte, error) {
	return any(v).(encoding.BinaryMarshaler).MarshalBinary()
}

// Decode decodes the given bytes to a value.
func (BinaryCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	err := any(&v).(encoding.BinaryUnmarshaler).UnmarshalBinary(bz)
	return v, err
}

// TextCodec is a codec for types that implement encoding.TextMarshaler and encoding.TextUnmarshaler.
type TextCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (TextCodec[T]) Encode(v T) ([]byte, error) {
	return any(v).(encoding.TextMarshaler).MarshalText()
}

// Decode decodes the given bytes to a value.
func (TextCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	err := any(&v).(encoding.TextUnmarshaler).UnmarshalText(bz)
	return v, err
}

// MsgpackCodec is a codec that serializes values with msgpack.
type MsgpackCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (MsgpackCodec[T]) Encode(v T) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode decodes the given bytes to a value.
func (MsgpackCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	err := msgpack.Unmarshal(bz, &v)
	return v, err
}
