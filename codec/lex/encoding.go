package lex

import "encoding/binary"

// EncodeUint32 returns the big-endian byte slice representation of the given uint32.
func EncodeUint32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// DecodeUint32 returns the uint32 representation of the given big-endian byte slice.
func DecodeUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}
