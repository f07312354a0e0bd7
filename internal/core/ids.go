// Package core defines the dense identifier and symbol types shared across
// the signature, odv, vertical, and scratch packages, so none of them need
// to depend on each other just to agree on a type.
package core

// ID is a dictionary identifier: the permanent, insertion-order index of a
// key in [0, N). All hot-path structures (signature tables, id lists,
// candidate maps) key on ID.
type ID = uint32

// MaxID is the largest representable ID. The sentinel EmptySlot in package
// odv reserves one value, so a single bucket may hold at most MaxID
// distinct signatures.
const MaxID = ^ID(0)

// Symbol is one alphabet character, 0 <= Symbol < A. The deletion sentinel
// used inside a Signature is the integer value A itself, one past the
// largest valid symbol.
type Symbol = uint32

// ReservedAlphabet is the one alphabet size that can never be indexed: it
// would make the deletion sentinel (numerically equal to A) collide with
// MaxID.
const ReservedAlphabet Symbol = ^Symbol(0)
