package lex

// Invert returns the lexicographical inverse of the given byte slice in place.
func Invert(b []byte) []byte {
	for i := 0; i < len(b); i++ {
		b[i] = ^b[i]
	}
	return b
}
