package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	assert.Equal(t, a.Keys, b.Keys)
	assert.Equal(t, a.BlackTurnKey, b.BlackTurnKey)
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	assert.NotEqual(t, a.Keys, b.Keys)
}

func TestSharedIsStableAcrossCalls(t *testing.T) {
	a := Shared()
	b := Shared()
	assert.Same(t, a, b)
}

func TestKeysAreDistinctWithinTable(t *testing.T) {
	tbl := New(7)
	seen := make(map[uint64]bool)
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 16; pt++ {
			k := tbl.Keys[c][pt]
			assert.False(t, seen[k], "collision at color=%d pt=%d", c, pt)
			seen[k] = true
		}
	}
}
