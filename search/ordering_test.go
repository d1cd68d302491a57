package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zugzwang-engine/zugzwang/board"
)

func TestOrderPutsTTMoveFirst(t *testing.T) {
	pos := board.NewStartingPosition()
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	ttMove := moves[len(moves)-1]
	h := NewHistory()
	h.Order(pos, moves, ttMove, 0)
	assert.Equal(t, ttMove, moves[0])
}

func TestOrderPrefersWinningCaptureOverLosingOne(t *testing.T) {
	// white rook a1 can take an undefended knight on a8 for free; rook h1
	// can take a pawn on h2 that the black king on g3 recaptures with.
	// Checking moves (Ra1-a3+, Rh1-g1+) rank above captures, so the first
	// capture in the ordered list is the one compared.
	pos, err := board.PositionFromFEN("n7/8/8/8/8/6k1/7p/R3K2R w - - 0 1")
	require.NoError(t, err)
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	h := NewHistory()
	h.Order(pos, moves, board.NullMove, 0)
	var firstCapture board.Move
	for _, m := range moves {
		if pos.Get(m.CaptureSquare()) != board.NoPiece {
			firstCapture = m
			break
		}
	}
	assert.Equal(t, "a1a8", firstCapture.String())
}

func TestOrderPutsNonCapturingCheckAboveQuietMoves(t *testing.T) {
	// Rh1-h8+ is a non-capturing check; it must outrank every quiet king
	// or rook move, none of which have any history score yet.
	pos, err := board.PositionFromFEN("4k3/8/8/8/8/8/4K3/7R w - - 0 1")
	require.NoError(t, err)
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	h := NewHistory()
	h.Order(pos, moves, board.NullMove, 0)
	assert.Equal(t, "h1h8", moves[0].String())
}

func TestOrderPutsNonCapturingPromotionAboveQuietMoves(t *testing.T) {
	// e7e8=Q neither captures nor checks the black king on b3; it must
	// still outrank the quiet king moves available alongside it.
	pos, err := board.PositionFromFEN("8/4P3/8/8/8/1k6/8/4K3 w - - 0 1")
	require.NoError(t, err)
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	h := NewHistory()
	h.Order(pos, moves, board.NullMove, 0)
	assert.Equal(t, "e7e8q", moves[0].String())
}

func TestOrderPutsCastlingAboveQuietMoves(t *testing.T) {
	// The h7 pawn closes the h-file, so no rook move checks and the only
	// capture (Rxh7) loses material.
	pos, err := board.PositionFromFEN("r3k2r/7p/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	h := NewHistory()
	h.Order(pos, moves, board.NullMove, 0)
	assert.True(t, moves[0].IsCastling, "castling should rank above any quiet move with no history yet")
}

func TestRecordCutoffTracksKillerAndHistory(t *testing.T) {
	h := NewHistory()
	m := board.Move{From: board.SquareE2, To: board.SquareE4}
	h.RecordCutoff(board.White, m, board.NullMove, 3, 5)
	assert.True(t, h.IsKiller(3, m))
	assert.EqualValues(t, 25, h.history[board.White][m.From][m.To])
}

func TestAgeHistoryHalvesScores(t *testing.T) {
	h := NewHistory()
	m := board.Move{From: board.SquareE2, To: board.SquareE4}
	h.RecordCutoff(board.White, m, board.NullMove, 0, 10)
	before := h.history[board.White][m.From][m.To]
	h.AgeHistory()
	assert.Equal(t, before/2, h.history[board.White][m.From][m.To])
}
