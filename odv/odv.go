// Package odv implements the one-deletion-variant (ODV) signature index:
// an open-addressed hash table mapping each distinct length-ℓ signature
// (a bucket slice with one position replaced by a deletion sentinel) to
// the dictionary ids that produce it.
//
// The pigeonhole argument behind this index: two strings of length ℓ at
// Hamming distance <= 1 share at least one one-deletion variant. A query
// therefore recovers every key within distance 1 of it, restricted to the
// bucket's position range, by probing its own ℓ signatures.
package odv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/hmsearch/bitpack"
	"github.com/hupe1980/hmsearch/internal/core"
	"github.com/hupe1980/hmsearch/signature"
)

// EmptySlot is the sentinel sigPos value marking an unoccupied table slot.
// It reserves the top signature index, so a bucket may hold at most
// core.MaxID distinct signatures.
const EmptySlot = core.MaxID

var (
	// ErrReservedAlphabet is returned when the alphabet size is the
	// reserved sentinel 2^32-1.
	ErrReservedAlphabet = errors.New("odv: alphabet size 2^32-1 is reserved")

	// ErrTooManySignatures is returned when a bucket would need more than
	// 2^32-1 distinct signature slots.
	ErrTooManySignatures = errors.New("odv: more than 2^32-1 distinct signatures in one bucket")
)

// ErrSymbolOutOfRange indicates a key contains a symbol >= the alphabet size.
type ErrSymbolOutOfRange struct {
	KeyIndex int
	Position int
	Symbol   core.Symbol
	Alphabet core.Symbol
}

func (e *ErrSymbolOutOfRange) Error() string {
	return fmt.Sprintf("odv: key %d position %d: symbol %d out of range for alphabet %d",
		e.KeyIndex, e.Position, e.Symbol, e.Alphabet)
}

// slot is an open-addressed table entry: either empty (SigPos ==
// EmptySlot) or a pointer to one distinct signature and its id range.
type slot struct {
	sigPos uint32
	idBeg  uint32
	idEnd  uint32
}

// Index is the per-bucket ODV signature table. Immutable after Build.
type Index struct {
	length     int // ℓ, the bucket's position-range length
	delMarker  core.Symbol
	alphabet   core.Symbol
	signatures *bitpack.Vector // M*ℓ symbols, width = ceil(log2(A+1))
	ids        []core.ID       // flat, grouped contiguously per signature
	table      []slot          // T = ceil(M*1.5) slots
	numSigs    uint32          // M
}

type sigEntry struct {
	symbols []core.Symbol
	ids     []core.ID
}

// Build indexes N key slices, each of length ℓ, over alphabet size A.
// Every deletion position of every key contributes one signature; ids
// sharing a signature are grouped into one id list.
func Build(keys [][]core.Symbol, alphabet core.Symbol) (*Index, error) {
	if alphabet == core.ReservedAlphabet {
		return nil, ErrReservedAlphabet
	}

	length := 0
	if len(keys) > 0 {
		length = len(keys[0])
	}

	aux := make(map[string]*sigEntry)
	scratch := make([]core.Symbol, length)
	keyBuf := make([]byte, length*4)

	for i, key := range keys {
		for p, s := range key {
			if s >= alphabet {
				return nil, &ErrSymbolOutOfRange{KeyIndex: i, Position: p, Symbol: s, Alphabet: alphabet}
			}
		}
		for j := 0; j < length; j++ {
			sig := signature.Build(key, j, alphabet, scratch)
			for p, s := range sig {
				binary.LittleEndian.PutUint32(keyBuf[p*4:], s)
			}
			e := aux[string(keyBuf)]
			if e == nil {
				e = &sigEntry{symbols: append([]core.Symbol(nil), sig...)}
				aux[string(keyBuf)] = e
			}
			e.ids = append(e.ids, core.ID(i))
		}
	}

	m := len(aux)
	if uint64(m) > uint64(core.MaxID) {
		return nil, ErrTooManySignatures
	}

	sigs := bitpack.New(uint64(m)*uint64(length), uint64(alphabet))
	ids := make([]core.ID, 0, len(keys)*length)
	tableSize := ceilOneAndHalf(m)
	table := make([]slot, tableSize)
	for i := range table {
		table[i].sigPos = EmptySlot
	}

	var pos uint32
	for _, e := range aux {
		offset := uint64(pos) * uint64(length)
		sigs.CopyFromSymbols(offset, e.symbols)

		idBeg := uint32(len(ids))
		ids = append(ids, e.ids...)
		idEnd := uint32(len(ids))

		h := signature.Hash(e.symbols)
		slotIdx := h % uint64(tableSize)
		for table[slotIdx].sigPos != EmptySlot {
			slotIdx = (slotIdx + 1) % uint64(tableSize)
		}
		table[slotIdx] = slot{sigPos: pos, idBeg: idBeg, idEnd: idEnd}
		pos++
	}

	return &Index{
		length:     length,
		delMarker:  alphabet,
		alphabet:   alphabet,
		signatures: sigs,
		ids:        ids,
		table:      table,
		numSigs:    pos,
	}, nil
}

// ceilOneAndHalf returns ceil(m * 1.5) without floating point: ceil(3m/2).
func ceilOneAndHalf(m int) int {
	return (3*m + 1) / 2
}

// Search forms each of the bucket's ℓ one-deletion variants of query,
// probes the table for it, and invokes fn for every id of the first
// matching signature found (there is at most one, since signatures are
// distinct by construction). sigScratch must have length ℓ and is reused
// across the ℓ probes to avoid allocating.
func (idx *Index) Search(query []core.Symbol, sigScratch []core.Symbol, fn func(id core.ID)) {
	if idx.length == 0 || len(idx.table) == 0 {
		return
	}
	t := uint64(len(idx.table))
	for j := 0; j < idx.length; j++ {
		sig := signature.Build(query, j, idx.delMarker, sigScratch)
		h := signature.Hash(sig)
		slotIdx := h % t
		for {
			s := idx.table[slotIdx]
			if s.sigPos == EmptySlot {
				break
			}
			offset := uint64(s.sigPos) * uint64(idx.length)
			if idx.signatures.Equal(offset, sig) {
				for _, id := range idx.ids[s.idBeg:s.idEnd] {
					fn(id)
				}
				break
			}
			slotIdx = (slotIdx + 1) % t
		}
	}
}

// Length returns ℓ, the bucket's position-range length.
func (idx *Index) Length() int { return idx.length }

// DelMarker returns the deletion sentinel used by this bucket, equal to A.
func (idx *Index) DelMarker() core.Symbol { return idx.delMarker }

// NumSignatures returns M, the number of distinct signatures stored.
func (idx *Index) NumSignatures() uint32 { return idx.numSigs }

// TableSize returns T, the number of open-addressed table slots.
func (idx *Index) TableSize() int { return len(idx.table) }

// NumIDs returns the total length of the flat ids array (N*ℓ).
func (idx *Index) NumIDs() int { return len(idx.ids) }
