// Package vertical stores dictionary keys column-major, one bit-plane per
// bit of symbol width, so that verifying a candidate's true Hamming
// distance against a query needs only a handful of XOR/OR/popcount
// operations on 64-bit words instead of a symbol-by-symbol scan — and can
// abandon the comparison the moment the running distance exceeds the
// search radius.
//
// A key of length L <= 64 over alphabet size A occupies V = ceil(log2(A))
// words, one per bit-plane; plane v's word has bit p set iff position p's
// symbol has bit v set. Two keys differ at position p iff any plane's
// XOR has bit p set, so ORing the per-plane XORs together and counting
// the set bits in the result gives the exact Hamming distance.
package vertical

import (
	"errors"
	"math/bits"

	"github.com/hupe1980/hmsearch/bitpack"
	"github.com/hupe1980/hmsearch/internal/core"
)

// ErrKeyTooLong is returned when a key's length exceeds 64, the number of
// bits in the word used to represent one bit-plane.
var ErrKeyTooLong = errors.New("vertical: key length exceeds 64")

// Keys holds the bit-plane transposition of an entire dictionary.
type Keys struct {
	length int // L, shared key length
	planes int // V = ceil(log2(A))
	words  []uint64
}

// Build transposes N keys of length L (L <= 64) over alphabet size A into
// their bit-plane representation.
func Build(keys [][]core.Symbol, alphabet core.Symbol) (*Keys, error) {
	length := 0
	if len(keys) > 0 {
		length = len(keys[0])
	}
	if length > 64 {
		return nil, ErrKeyTooLong
	}

	maxSymbol := uint64(0)
	if alphabet > 0 {
		maxSymbol = uint64(alphabet - 1)
	}
	planes := int(bitpack.WidthFor(maxSymbol))

	words := make([]uint64, len(keys)*planes)
	for i, key := range keys {
		base := i * planes
		for p, sym := range key {
			for v := 0; v < planes; v++ {
				if sym&(1<<uint(v)) != 0 {
					words[base+v] |= 1 << uint(p)
				}
			}
		}
	}

	return &Keys{length: length, planes: planes, words: words}, nil
}

// Length returns L, the shared key length.
func (k *Keys) Length() int { return k.length }

// PlaneCount returns V, the number of bit-planes per key.
func (k *Keys) PlaneCount() int { return k.planes }

// Planes returns id's bit-plane words, one per bit of symbol width. The
// returned slice aliases internal storage and must not be modified.
func (k *Keys) Planes(id core.ID) []uint64 {
	base := int(id) * k.planes
	return k.words[base : base+k.planes]
}

// QueryPlanes transposes a single query key (of length k.Length()) into
// the same bit-plane layout as Planes, for comparison against stored keys.
func (k *Keys) QueryPlanes(query []core.Symbol) []uint64 {
	planes := make([]uint64, k.planes)
	for p, sym := range query {
		for v := 0; v < k.planes; v++ {
			if sym&(1<<uint(v)) != 0 {
				planes[v] |= 1 << uint(p)
			}
		}
	}
	return planes
}

// Distance returns the exact Hamming distance between two bit-plane
// representations of equal length keys.
func Distance(a, b []uint64) int {
	var diff uint64
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return bits.OnesCount64(diff)
}

// WithinRadius reports whether the Hamming distance between a and b is at
// most R, abandoning the comparison as soon as the running distance
// exceeds R. The running OR is monotonic in the number of planes
// consumed, so once its popcount exceeds R no later plane can bring it
// back down.
func WithinRadius(a, b []uint64, r int) bool {
	var diff uint64
	for i := range a {
		diff |= a[i] ^ b[i]
		if bits.OnesCount64(diff) > r {
			return false
		}
	}
	return true
}
