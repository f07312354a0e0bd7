package hmsearch

import (
	"bytes"
	"encoding/gob"
)

// gobState is the logical state a snapshot carries: the build inputs and
// the vertical/parallel-build configuration, not the derived ODV tables
// or bit planes. GobDecode rebuilds those from scratch, which keeps the
// encoded form independent of any particular internal layout.
type gobState struct {
	Length        int
	Alphabet      uint32
	Buckets       int
	Keys          [][]uint32
	Vertical      bool
	ParallelBuild bool
}

// GobEncode implements gob.GobEncoder. It is a logical snapshot of the
// inputs Build was called with, not a dump of the derived ODV/vertical
// structures; decoding re-runs Build.
func (idx *Index) GobEncode() ([]byte, error) {
	if !idx.built {
		return nil, ErrNotBuilt
	}
	state := gobState{
		Length:        idx.length,
		Alphabet:      idx.alphabet,
		Buckets:       idx.buckets,
		Keys:          idx.keys,
		Vertical:      idx.opts.vertical,
		ParallelBuild: idx.opts.parallelBuild,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder, rebuilding the index from its
// logical snapshot.
func (idx *Index) GobDecode(data []byte) error {
	var state gobState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	rebuilt := New(WithVerticalKeys(state.Vertical), WithParallelBuild(state.ParallelBuild))
	if err := rebuilt.Build(state.Keys, state.Length, state.Alphabet, state.Buckets); err != nil {
		return err
	}
	*idx = *rebuilt
	return nil
}
