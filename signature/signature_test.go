package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hmsearch/internal/core"
)

func TestBuild(t *testing.T) {
	key := []core.Symbol{1, 2, 3, 4}
	scratch := make([]core.Symbol, 4)
	got := Build(key, 1, 9, scratch)
	assert.Equal(t, []core.Symbol{1, 9, 3, 4}, got)
	// key must not be mutated
	assert.Equal(t, []core.Symbol{1, 2, 3, 4}, key)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal([]core.Symbol{1, 2, 3}, []core.Symbol{1, 2, 3}))
	assert.False(t, Equal([]core.Symbol{1, 2, 3}, []core.Symbol{1, 9, 3}))
	assert.False(t, Equal([]core.Symbol{1, 2}, []core.Symbol{1, 2, 3}))
}

func TestHashDeterministic(t *testing.T) {
	sig := []core.Symbol{5, 9, 2, 1}
	assert.Equal(t, Hash(sig), Hash([]core.Symbol{5, 9, 2, 1}))
}

func TestHashSensitiveToDelPosition(t *testing.T) {
	// "0123" deleting position 1 vs position 2 must hash differently
	// (distinct signatures) even though both replace a symbol with the
	// same marker.
	a := Build([]core.Symbol{0, 1, 2, 3}, 1, 9, make([]core.Symbol, 4))
	b := Build([]core.Symbol{0, 1, 2, 3}, 2, 9, make([]core.Symbol, 4))
	assert.NotEqual(t, Hash(a), Hash(b))
	assert.False(t, Equal(a, b))
}

func TestHashSensitiveToOrder(t *testing.T) {
	a := Hash([]core.Symbol{1, 2})
	b := Hash([]core.Symbol{2, 1})
	assert.NotEqual(t, a, b)
}
