package tritium

import (
	"math/big"
	"math/bits"
)

const (
	laneBits     = 2
	laneMask     = big.Word(0b11)
	lanesPerWord = bits.UintSize / laneBits

	// all01 selects the low bit of every lane in a word.
	all01 = big.Word(^uint(0) / 3)
)

const (
	laneZero     big.Word = 0b00
	lanePos      big.Word = 0b01
	laneReserved big.Word = 0b10
	laneNeg      big.Word = 0b11
)

// laneBuf accumulates lanes, least significant first.
type laneBuf struct {
	words []big.Word
	n     int
}

func newLaneBuf(lanes int) *laneBuf {
	return &laneBuf{words: make([]big.Word, 0, wordsFor(lanes))}
}

func (b *laneBuf) push(lane big.Word) {
	i := b.n % lanesPerWord
	if i == 0 {
		b.words = append(b.words, 0)
	}
	b.words[len(b.words)-1] |= lane << (i * laneBits)
	b.n++
}

func (b *laneBuf) int() *big.Int {
	return new(big.Int).SetBits(b.words)
}

func wordsFor(lanes int) int {
	return (lanes + lanesPerWord - 1) / lanesPerWord
}

func wordAt(words []big.Word, i int) big.Word {
	if i >= len(words) {
		return 0
	}
	return words[i]
}

func laneAt(words []big.Word, i int) big.Word {
	return (wordAt(words, i/lanesPerWord) >> ((i % lanesPerWord) * laneBits)) & laneMask
}

func setLane(words []big.Word, i int, lane big.Word) {
	words[i/lanesPerWord] |= lane << ((i % lanesPerWord) * laneBits)
}

// laneCount returns the number of lanes up to and including the most
// significant non-zero one.
func laneCount(x *big.Int) int {
	return (x.BitLen() + 1) / laneBits
}
