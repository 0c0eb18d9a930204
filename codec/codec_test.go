package codec_test

import (
	"math/big"
	"testing"

	"github.com/ehsanranjbar/tritium"
	"github.com/ehsanranjbar/tritium/codec"
	"github.com/ehsanranjbar/tritium/codec/lex"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type textOnly struct {
	S string
}

func (t textOnly) MarshalText() ([]byte, error) {
	return []byte(t.S), nil
}

func (t *textOnly) UnmarshalText(b []byte) error {
	t.S = string(b)
	return nil
}

func TestCodecFor(t *testing.T) {
	require.IsType(t, codec.LexValueCodec{}, codec.CodecFor[tritium.Value]())
	require.IsType(t, codec.StringCodec{}, codec.CodecFor[string]())
	require.IsType(t, codec.BinaryCodec[uuid.UUID]{}, codec.CodecFor[uuid.UUID]())
	require.IsType(t, codec.TextCodec[textOnly]{}, codec.CodecFor[textOnly]())
	require.Nil(t, codec.CodecFor[int]())
}

func TestLexValueCodec(t *testing.T) {
	c := codec.LexValueCodec{}
	v := tritium.MustParse("0g1T0T")

	bz, err := c.Encode(v)
	require.NoError(t, err)
	actual, err := c.Decode(bz)
	require.NoError(t, err)
	require.True(t, v.Equal(actual))

	_, err = c.Decode(append(bz, 0x00))
	require.ErrorIs(t, err, lex.ErrMalformed)

	_, err = c.Encode(tritium.FromRaw(big.NewInt(0b10), false))
	require.ErrorIs(t, err, tritium.ErrInvalidBitmap)
}

func TestBinaryCodec(t *testing.T) {
	c := codec.BinaryCodec[tritium.Value]{}
	v := tritium.MustParse("*0gT1")

	bz, err := c.Encode(v)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x0d}, bz)
	actual, err := c.Decode(bz)
	require.NoError(t, err)
	require.True(t, v.Equal(actual))
}

func TestTextCodec(t *testing.T) {
	c := codec.TextCodec[tritium.Value]{}

	bz, err := c.Encode(tritium.FromInt64(-2))
	require.NoError(t, err)
	require.Equal(t, []byte("0gT1"), bz)
	actual, err := c.Decode([]byte("*0g1T"))
	require.NoError(t, err)
	require.True(t, tritium.MustParse("*0g1T").Equal(actual))

	_, err = c.Decode([]byte("0g2"))
	require.ErrorIs(t, err, tritium.ErrInvalidDigitSymbol)
}

func TestMsgpackCodec(t *testing.T) {
	type pair struct {
		A tritium.Value `msgpack:"a"`
		B tritium.Value `msgpack:"b"`
	}
	c := codec.MsgpackCodec[pair]{}
	v := pair{A: tritium.FromInt64(40), B: tritium.MustParse("*0gT")}

	bz, err := c.Encode(v)
	require.NoError(t, err)
	actual, err := c.Decode(bz)
	require.NoError(t, err)
	require.True(t, v.A.Equal(actual.A))
	require.True(t, v.B.Equal(actual.B))
}

func TestStringCodec(t *testing.T) {
	c := codec.StringCodec{}
	bz, err := c.Encode("total")
	require.NoError(t, err)
	s, err := c.Decode(bz)
	require.NoError(t, err)
	require.Equal(t, "total", s)
}
