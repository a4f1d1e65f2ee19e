package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpiralOffsetCounts(t *testing.T) {
	assert.Len(t, spiralOffsets(3), 8)
	assert.Len(t, spiralOffsets(5), 24)
}

func TestSpiralOffsetsAreUnique(t *testing.T) {
	for _, n := range []int{3, 5} {
		seen := make(map[offset]bool)
		for _, o := range spiralOffsets(n) {
			require.False(t, seen[o], "duplicate offset %v for n=%d", o, n)
			seen[o] = true
		}
	}
}

const crossPattern = `
...
.P.
.O.
`

func TestLoadAndExactMatch(t *testing.T) {
	m := NewMatcher()
	err := m.Load(3, strings.NewReader(crossPattern))
	require.NoError(t, err)
	assert.Equal(t, 4, m.LoadedCount(3)) // N/S/E/W: 4 distinct dihedral variants

	// Build a board where the point directly below center (south, relative
	// to the query point, i.e. dr=+1,dc=0) is the opponent and all else is
	// empty -- one rotation of the pattern loaded above.
	at := func(dr, dc int) Stone {
		if dr == 1 && dc == 0 {
			return StoneWhite
		}
		return StoneEmpty
	}
	assert.True(t, m.HasMatch(3, StoneBlack, at))
}

func TestNoMatchWhenPatternAbsent(t *testing.T) {
	m := NewMatcher()
	err := m.Load(3, strings.NewReader(crossPattern))
	require.NoError(t, err)

	at := func(dr, dc int) Stone { return StoneBlack }
	assert.False(t, m.HasMatch(3, StoneBlack, at))
}

func TestUnloadedSizeNeverMatches(t *testing.T) {
	m := NewMatcher()
	at := func(dr, dc int) Stone { return StoneEmpty }
	assert.False(t, m.HasMatch(3, StoneBlack, at))
	assert.False(t, m.HasMatch(5, StoneBlack, at))
}

func TestLoadFileMissingDegradesSilently(t *testing.T) {
	m := NewMatcher()
	err := m.LoadFile(3, "/nonexistent/path/to/patterns.txt")
	assert.Error(t, err)
	at := func(dr, dc int) Stone { return StoneEmpty }
	assert.False(t, m.HasMatch(3, StoneBlack, at))
}

func TestSymmetricDuplicatesCollapseToOne(t *testing.T) {
	// A fully symmetric pattern (all opponent) has only one distinct
	// dihedral variant.
	allOpponent := `
OOO
OOO
OOO
`
	m := NewMatcher()
	require.NoError(t, m.Load(3, strings.NewReader(allOpponent)))
	assert.Equal(t, 1, m.LoadedCount(3))
}

func TestOffboardRelativization(t *testing.T) {
	pat := `
XXX
XPX
X.X
`
	m := NewMatcher()
	require.NoError(t, m.Load(3, strings.NewReader(pat)))

	at := func(dr, dc int) Stone {
		if dr == -1 {
			return StoneOffboard
		}
		if dr == 0 && dc == -1 {
			return StoneOffboard
		}
		if dr == 0 && dc == 1 {
			return StoneOffboard
		}
		if dr == 1 && dc == -1 {
			return StoneOffboard
		}
		if dr == 1 && dc == 1 {
			return StoneOffboard
		}
		return StoneEmpty
	}
	assert.True(t, m.HasMatch(3, StoneWhite, at))
}
