// Package signature implements one-deletion-variant (ODV) signatures and
// their FNV-1a hash, the basis of the pigeonhole argument behind package
// odv: two strings of the same length that agree on at least one ODV
// signature are at Hamming distance <= 2.
package signature

import "github.com/hupe1980/hmsearch/internal/core"

// offsetBasis64 and prime64 are the 64-bit FNV-1a constants. FNV-1a also
// defines 32-bit constants; this package does not use them, and Hash
// computes the same 64-bit value on every platform. Since placement is purely an internal
// implementation detail (the answer set odv.Index returns does not
// depend on which slot a signature lands in), any fixed, consistent hash
// works here, and Go's native word size on every platform this module
// targets is 64-bit.
const (
	offsetBasis64 = 0xcbf29ce484222325
	prime64       = 0x100000001b3
)

// Hash computes the FNV-1a hash of sig, mixing the four little-endian
// bytes of each 32-bit symbol in order.
func Hash(sig []core.Symbol) uint64 {
	h := uint64(offsetBasis64)
	for _, s := range sig {
		h = mixByte(h, byte(s))
		h = mixByte(h, byte(s>>8))
		h = mixByte(h, byte(s>>16))
		h = mixByte(h, byte(s>>24))
	}
	return h
}

func mixByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= prime64
	return h
}

// Equal reports whether two signatures agree elementwise, including the
// position of the deletion sentinel.
func Equal(a, b []core.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Build writes the one-deletion variant of key with position del replaced
// by marker into scratch (which must have the same length as key) and
// returns scratch, so callers can reuse one buffer across many calls.
func Build(key []core.Symbol, del int, marker core.Symbol, scratch []core.Symbol) []core.Symbol {
	copy(scratch, key)
	scratch[del] = marker
	return scratch
}
