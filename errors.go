package hmsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyTooLong is returned when a build is attempted with L > 64.
	ErrKeyTooLong = errors.New("hmsearch: key length exceeds 64 positions")

	// ErrReservedAlphabet is returned when A == 2^32 - 1, the reserved
	// sentinel value that would collide with the empty-slot marker.
	ErrReservedAlphabet = errors.New("hmsearch: alphabet size 2^32-1 is reserved")

	// ErrTooManySignatures is returned when a bucket produces more than
	// 2^32-1 distinct signatures.
	ErrTooManySignatures = errors.New("hmsearch: bucket has more than 2^32-1 distinct signatures")

	// ErrRadiusMismatch is returned by Search when the requested radius
	// does not match the bucket count the index was built with.
	ErrRadiusMismatch = errors.New("hmsearch: radius incompatible with build-time bucket count")

	// ErrEmptyDictionary is returned when Build is called with no keys.
	ErrEmptyDictionary = errors.New("hmsearch: no keys to build from")

	// ErrNotBuilt is returned by Search and GobEncode when called before
	// Build has completed successfully.
	ErrNotBuilt = errors.New("hmsearch: index has not been built")
)

// ErrSymbolOutOfRange indicates a key contains a symbol >= the alphabet size.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrSymbolOutOfRange struct {
	KeyIndex int
	Position int
	Symbol   uint32
	Alphabet uint32
	cause    error
}

func (e *ErrSymbolOutOfRange) Error() string {
	return fmt.Sprintf("hmsearch: key %d position %d: symbol %d out of range for alphabet %d",
		e.KeyIndex, e.Position, e.Symbol, e.Alphabet)
}

func (e *ErrSymbolOutOfRange) Unwrap() error { return e.cause }

// ErrKeyLengthMismatch indicates a key or query slice does not have the
// configured length L.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrKeyLengthMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrKeyLengthMismatch) Error() string {
	return fmt.Sprintf("hmsearch: key length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrKeyLengthMismatch) Unwrap() error { return e.cause }
