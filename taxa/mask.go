package taxa

import (
	"github.com/bits-and-blooms/bitset"
)

// WordBits is the number of bits per mask word.
const WordBits = 64

// Mask is a fixed-length bit vector over the global tip index space.
type Mask struct {
	set *bitset.BitSet
	n   int
}

// NewMask creates a mask of n clear bits.
func NewMask(n int) *Mask {
	return &Mask{
		set: bitset.New(uint(n)),
		n:   n,
	}
}

// SetBits sets every bit from start to the end of the mask.
// Bits that are already set stay set.
func (m *Mask) SetBits(start int) {
	start = max(start, 0)
	if start >= m.n {
		return
	}
	m.set.InPlaceUnion(bitset.New(uint(m.n)).FlipRange(uint(start), uint(m.n)))
}

// Len returns the size of the mask in bits.
func (m *Mask) Len() int {
	return m.n
}

// WordCount returns the number of 64-bit words backing the mask.
func (m *Mask) WordCount() int {
	return (m.n + WordBits - 1) / WordBits
}

// Word returns the i-th backing word. Bits beyond Len are always zero.
func (m *Mask) Word(i int) uint64 {
	return m.set.Words()[i]
}

// Test reports whether bit i is set.
func (m *Mask) Test(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.set.Test(uint(i))
}

// Count returns the number of set bits.
func (m *Mask) Count() int {
	return int(m.set.Count())
}

// Offset returns the index of the first set bit, or Len if none is set.
func (m *Mask) Offset() int {
	i, ok := m.set.NextSet(0)
	if !ok || int(i) >= m.n {
		return m.n
	}
	return int(i)
}
