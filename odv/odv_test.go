package odv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hmsearch/internal/core"
)

func keys(rows ...[]core.Symbol) [][]core.Symbol { return rows }

func collect(idx *Index, query []core.Symbol) []core.ID {
	scratch := make([]core.Symbol, idx.Length())
	seen := map[core.ID]bool{}
	var out []core.ID
	idx.Search(query, scratch, func(id core.ID) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	})
	return out
}

func TestBuildRejectsReservedAlphabet(t *testing.T) {
	_, err := Build(keys([]core.Symbol{0, 1}), core.ReservedAlphabet)
	assert.ErrorIs(t, err, ErrReservedAlphabet)
}

func TestBuildRejectsOutOfRangeSymbol(t *testing.T) {
	_, err := Build(keys([]core.Symbol{0, 5}), 4)
	require.Error(t, err)
	var target *ErrSymbolOutOfRange
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 0, target.KeyIndex)
	assert.Equal(t, 1, target.Position)
}

func TestSearchFindsExactMatch(t *testing.T) {
	idx, err := Build(keys(
		[]core.Symbol{1, 2, 3, 4},
		[]core.Symbol{5, 6, 7, 8},
	), 9)
	require.NoError(t, err)

	got := collect(idx, []core.Symbol{1, 2, 3, 4})
	assert.ElementsMatch(t, []core.ID{0}, got)
}

func TestSearchFindsOneSubstitution(t *testing.T) {
	// "1234" and "1934" share the ODV signature formed by deleting
	// position 1 with any marker >= alphabet... actually they must share
	// a signature at the substituted position itself being masked out.
	idx, err := Build(keys(
		[]core.Symbol{1, 2, 3, 4},
	), 9)
	require.NoError(t, err)

	// query differs from the only key at position 1 (2 -> 9): deleting
	// position 1 from both sides yields the same one-deletion variant.
	got := collect(idx, []core.Symbol{1, 9, 3, 4})
	assert.ElementsMatch(t, []core.ID{0}, got)
}

func TestSearchMissDoesNotPanic(t *testing.T) {
	idx, err := Build(keys(
		[]core.Symbol{1, 2, 3, 4},
	), 9)
	require.NoError(t, err)

	got := collect(idx, []core.Symbol{8, 8, 8, 8})
	assert.Empty(t, got)
}

func TestBuildGroupsSharedSignatures(t *testing.T) {
	// Two identical keys must collapse onto the same signature entry and
	// return both ids from a single match.
	idx, err := Build(keys(
		[]core.Symbol{1, 2, 3, 4},
		[]core.Symbol{1, 2, 3, 4},
	), 9)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), idx.NumSignatures()) // one signature per position, shared by both ids

	got := collect(idx, []core.Symbol{1, 2, 3, 4})
	assert.ElementsMatch(t, []core.ID{0, 1}, got)
}

func TestBuildEmptyDictionary(t *testing.T) {
	idx, err := Build(nil, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Length())
	got := collect(idx, nil)
	assert.Empty(t, got)
}

func TestCeilOneAndHalf(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 2: 3, 3: 5, 4: 6}
	for m, want := range cases {
		assert.Equal(t, want, ceilOneAndHalf(m), "m=%d", m)
	}
}
