package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftStartPos(t *testing.T) {
	want := []uint64{1, 20, 400, 8902, 197281}
	for depth, w := range want {
		pos := NewStartingPosition()
		assert.Equal(t, w, Perft(pos, depth), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	want := []uint64{1, 48, 2039, 97862}
	for depth, w := range want {
		pos, err := PositionFromFEN(kiwipete)
		require.NoError(t, err)
		assert.Equal(t, w, Perft(pos, depth), "depth %d", depth)
	}
}

func TestPerftDuplain(t *testing.T) {
	const duplain = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	want := []uint64{1, 14, 191, 2812, 43238}
	for depth, w := range want {
		pos, err := PositionFromFEN(duplain)
		require.NoError(t, err)
		assert.Equal(t, w, Perft(pos, depth), "depth %d", depth)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, pos.String())
	}
}

func TestZobristFromScratchMatchesIncremental(t *testing.T) {
	pos := NewStartingPosition()
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	require.NotEmpty(t, moves)

	for _, m := range moves[:5] {
		before := pos.Zobrist()
		undo := pos.DoMove(m)
		after := pos.Zobrist()
		assert.NotEqual(t, before, after)

		rebuilt, err := PositionFromFEN(pos.String())
		require.NoError(t, err)
		assert.Equal(t, rebuilt.Zobrist(), pos.Zobrist())

		pos.UnmakeMove(m, undo)
		assert.Equal(t, before, pos.Zobrist())
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := PositionFromFEN("rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2")
	require.NoError(t, err)
	assert.Equal(t, SquareC6, pos.EnpassantSquare())

	m, err := pos.ParseMove("d5c6")
	require.NoError(t, err)
	assert.True(t, m.IsEnPassant)

	undo := pos.DoMove(m)
	assert.Equal(t, NoPiece, pos.Get(SquareC5), "captured pawn should be removed")
	assert.Equal(t, WhitePawn, pos.Get(SquareC6))
	pos.UnmakeMove(m, undo)
	assert.Equal(t, BlackPawn, pos.Get(SquareC5), "capture should be undone")
}

func TestCastlingLegalWhenPathClear(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(Tactical, &moves)
	found := false
	for _, m := range moves {
		if m.IsCastling {
			found = true
		}
	}
	assert.True(t, found, "castling should be legal when not in check and path is clear")
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f-file attacks f1, the square the king crosses
	// while castling kingside; castling must be excluded.
	pos, err := PositionFromFEN("4k3/8/8/8/8/5r2/8/4K2R w K - 0 1")
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(Tactical, &moves)
	for _, m := range moves {
		assert.False(t, m.IsCastling, "king may not pass through an attacked square")
	}
}

func TestMateInOne(t *testing.T) {
	// Fool's mate final position: black has just played Qh4#, white is mated.
	pos, err := PositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, pos.IsChecked(White))
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	assert.Empty(t, moves, "white has no legal replies: checkmate")
}

func TestStalemate(t *testing.T) {
	pos, err := PositionFromFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.IsChecked(Black))
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	assert.Empty(t, moves, "black has no legal moves and is not in check: stalemate")
}

func TestTerminalDetection(t *testing.T) {
	stalemate, err := PositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.True(t, stalemate.IsStalemate())
	assert.False(t, stalemate.IsCheckmate())
	var moves []Move
	stalemate.GenerateLegalMoves(All, &moves)
	assert.Empty(t, moves)

	mate, err := PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R6K w - - 0 1")
	require.NoError(t, err)
	// white just played Ra8#
	undo := mate.DoMove(Move{From: SquareA1, To: SquareA8})
	assert.True(t, mate.IsChecked(Black))
	assert.True(t, mate.IsCheckmate())
	assert.False(t, mate.IsStalemate())
	mate.UnmakeMove(Move{From: SquareA1, To: SquareA8}, undo)
}

func TestUnmakeRestoresByteIdenticalPosition(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := PositionFromFEN(kiwipete)
	require.NoError(t, err)

	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		before := pos.Clone()
		undo := pos.DoMove(m)
		pos.UnmakeMove(m, undo)
		if diff := cmp.Diff(before, pos, cmp.AllowUnexported(Position{}, state{})); diff != "" {
			t.Fatalf("unmake of %v left position changed (-want +got):\n%s", m, diff)
		}
	}
}

func TestDrawFiftyMoveAndInsufficientMaterial(t *testing.T) {
	pos, err := PositionFromFEN("7k/8/8/8/8/8/8/K6R w - - 100 50")
	require.NoError(t, err)
	assert.True(t, pos.IsDrawFiftyMove())
	assert.False(t, pos.IsCheckmate())

	bare, err := PositionFromFEN("7k/8/8/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)
	assert.True(t, bare.IsDrawInsufficientMaterial())
}
