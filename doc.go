// Package tritium implements balanced ternary numbers.
//
// A Value stores its digits (T = -1, 0 and 1) packed two bits per digit into an
// arbitrary precision bitmap, least significant digit in the lowest lane:
//
//	00 -> 0
//	01 -> 1
//	11 -> T
//	10 -> reserved, never produced by a valid encoding
//
// Values are immutable. Every operation returns a new Value, so they are safe to
// share between goroutines without synchronization.
//
// A Value is either validated, meaning its bitmap was scanned and contains no
// reserved lane, or unvalidated. Arithmetic and integer conversion validate their
// operands on demand. Text rendering never fails, so malformed values can still
// be displayed:
//
//	v := tritium.MustParse("0g1T") // 2
//	w, _ := v.Add(tritium.FromInt64(1))
//	fmt.Println(w) // 0g10
package tritium
