package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
)

func TestMaterialStartingPositionIsBalanced(t *testing.T) {
	pos := board.NewStartingPosition()
	assert.Zero(t, Material(pos))
}

func TestMaterialFavorsExtraQueen(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)
	assert.Positive(t, Material(pos))
}

func TestMaterialIsSideToMoveRelative(t *testing.T) {
	white, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)
	black, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, Material(white), -Material(black))
}

func TestPhaseStartposIsOpening(t *testing.T) {
	pos := board.NewStartingPosition()
	assert.Zero(t, Phase(pos))
}

func TestPhaseBareKingsIsMaxEndgame(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.EqualValues(t, 256, Phase(pos))
}

func TestBishopPairBonus(t *testing.T) {
	pair, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	require.NoError(t, err)
	lone, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/3BK3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Material(pair), Material(lone))
}
