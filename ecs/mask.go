package ecs

import "math/bits"

// MaxComponentTypes is the number of distinct component types a World can register.
const MaxComponentTypes = 256

const maskWords = MaxComponentTypes / 64

// Mask is a set of component ordinals. Each World entity carries one, and every
// query builds one from its requested types.
type Mask [maskWords]uint64

// Set enables the bit for the given component ordinal.
func (m *Mask) Set(bit int) {
	m[bit>>6] |= uint64(1) << uint(bit&63)
}

// Unset clears the bit for the given component ordinal.
func (m *Mask) Unset(bit int) {
	m[bit>>6] &^= uint64(1) << uint(bit&63)
}

// Has reports whether the bit for the given ordinal is set.
func (m Mask) Has(bit int) bool {
	return m[bit>>6]&(uint64(1)<<uint(bit&63)) != 0
}

// Contains reports whether every bit of sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// Or returns the union of both masks.
func (m Mask) Or(other Mask) Mask {
	var out Mask
	for i := range m {
		out[i] = m[i] | other[i]
	}
	return out
}

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool {
	return m == Mask{}
}

// Count returns the number of bits set.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// Bits returns the set ordinals in ascending order.
func (m Mask) Bits() []int {
	out := make([]int, 0, m.Count())
	for i, w := range m {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, i*64+b)
			w &= w - 1
		}
	}
	return out
}
