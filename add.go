package tritium

import "math/big"

type laneSum struct {
	carry, lane big.Word
}

// addTable maps the sum of three lanes read as plain integers (0, 1 and 3) to
// the outgoing carry lane and the result lane. Index 3 stands for a single T;
// three 1 lanes add up to the same index and are handled by addLanes. Index 8
// cannot be reached.
var addTable = [10]laneSum{
	0: {laneZero, laneZero}, // 0
	1: {laneZero, lanePos},  // 1
	2: {lanePos, laneNeg},   // 1+1 = 1T
	3: {laneZero, laneNeg},  // T
	4: {laneZero, laneZero}, // 1+T
	5: {laneZero, lanePos},  // 1+1+T
	6: {laneNeg, lanePos},   // T+T = T1
	7: {laneZero, laneNeg},  // 1+T+T
	9: {laneNeg, laneZero},  // T+T+T = T0
}

func addLanes(a, b, carry big.Word) (big.Word, big.Word) {
	if a == lanePos && b == lanePos && carry == lanePos {
		return lanePos, laneZero
	}
	s := addTable[a+b+carry]
	return s.carry, s.lane
}

// Add returns v + w. Both operands are validated first. The sum is computed
// digit by digit on the packed lanes with carry propagation and is always
// validated.
func (v Value) Add(w Value) (Value, error) {
	v, err := v.Validate(false)
	if err != nil {
		return Value{}, err
	}
	w, err = w.Validate(false)
	if err != nil {
		return Value{}, err
	}

	return Value{bits: addBits(v.int(), w.int()), validated: true}, nil
}

// AddInt64 returns v + x.
func (v Value) AddInt64(x int64) (Value, error) {
	return v.Add(FromInt64(x))
}

func addBits(x, y *big.Int) *big.Int {
	xw, yw := x.Bits(), y.Bits()
	n := max(len(xw), len(yw))
	out := make([]big.Word, n, n+1)

	carry := laneZero
	for i := range n {
		a, b := wordAt(xw, i), wordAt(yw, i)
		var sum big.Word
		for j := 0; j < lanesPerWord && a|b|carry != 0; j++ {
			var lane big.Word
			carry, lane = addLanes(a&laneMask, b&laneMask, carry)
			sum |= lane << (j * laneBits)
			a >>= laneBits
			b >>= laneBits
		}
		out[i] = sum
	}
	if carry != laneZero {
		out = append(out, carry)
	}

	return new(big.Int).SetBits(out)
}
