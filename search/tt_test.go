package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
)

func TestTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTable(1)
	move := board.Move{From: board.SquareE2, To: board.SquareE4}
	tt.Store(0x1234, move, 57, 4, BoundExact, 12, true)

	entry, ok := tt.Probe(0x1234)
	require.True(t, ok)
	assert.Equal(t, move, entry.Move)
	assert.EqualValues(t, 57, entry.Score)
	assert.EqualValues(t, 4, entry.Depth)
	assert.Equal(t, BoundExact, entry.Bound)
	assert.EqualValues(t, 12, entry.StaticEval)
	assert.True(t, entry.HasStatic)
}

func TestTableProbeMissReturnsFalse(t *testing.T) {
	tt := NewTable(1)
	_, ok := tt.Probe(0xdeadbeef)
	assert.False(t, ok)
}

func TestTableClearErasesEntries(t *testing.T) {
	tt := NewTable(1)
	tt.Store(0x1234, board.Move{From: board.SquareE2, To: board.SquareE4}, 10, 2, BoundExact, 0, false)
	tt.Clear()
	_, ok := tt.Probe(0x1234)
	assert.False(t, ok)
	assert.Zero(t, tt.HashFull())
}

func TestTableHashFullTracksOccupancy(t *testing.T) {
	tt := NewTable(1)
	assert.Zero(t, tt.HashFull())
	for i := uint64(0); i < 100; i++ {
		tt.Store(i, board.Move{From: board.SquareE2, To: board.SquareE4}, 0, 1, BoundExact, 0, false)
	}
	assert.Positive(t, tt.HashFull())
}

func TestMateScoreNormalizationRoundTrips(t *testing.T) {
	const mateIn3FromRoot = 30000 - 6 // eval.MateScore minus plies to mate
	stored := ToTTScore(mateIn3FromRoot, 2)
	recovered := FromTTScore(stored, 2)
	assert.Equal(t, int32(mateIn3FromRoot), recovered)

	// probing the same entry from a different ply adjusts the mate
	// distance relative to that ply instead of the ply it was stored at.
	atPlyZero := FromTTScore(stored, 0)
	assert.NotEqual(t, recovered, atPlyZero)
}
