package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
)

func TestSeeSignPawnTakesUndefendedKnight(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/8/3n4/4P3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := pos.ParseMove("e3d4")
	require.NoError(t, err)
	assert.False(t, seeSign(pos, m), "pawn takes undefended knight should not be a losing exchange")
}

func TestSeeSignQueenTakesDefendedPawnLoses(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/3p4/8/8/8/8/3Q4/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := pos.ParseMove("d2d7")
	require.NoError(t, err)
	assert.True(t, seeSign(pos, m), "queen takes pawn defended by the king should be a losing exchange")
}
