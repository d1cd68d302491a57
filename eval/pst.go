package eval

import "github.com/zugzwang-engine/zugzwang/board"

// wFigure holds each figure's material value, mid-game and end-game.
// Values follow the familiar 100/320/330/500/900 centipawn scale; king
// carries no material weight since it can't be traded off.
var wFigure = [board.FigureArraySize]Score{
	board.NoFigure: {0, 0},
	board.Pawn:     {100, 120},
	board.Knight:   {320, 290},
	board.Bishop:   {330, 320},
	board.Rook:     {500, 530},
	board.Queen:    {900, 940},
	board.King:     {0, 0},
}

// wMobility rewards each extra reachable square, tapered: minor pieces
// matter more in the middlegame, rooks and queens more in the endgame.
var wMobility = [board.FigureArraySize]Score{
	board.Knight: {4, 4},
	board.Bishop: {5, 5},
	board.Rook:   {2, 4},
	board.Queen:  {1, 3},
}

var (
	wBishopPair         = Score{30, 50}
	wRookOnOpenFile     = Score{20, 10}
	wRookOnHalfOpenFile = Score{10, 5}
)

// pst holds tapered piece-square bonuses indexed [figure][square], all
// written from White's point of view; evaluateSide mirrors the rank for
// Black so the tables are shared between colors.
var pst [board.FigureArraySize][64]Score

func init() {
	applyRankFile(board.Pawn, pawnPSTMid, pawnPSTEnd)
	applyRankFile(board.Knight, knightPSTMid, knightPSTEnd)
	applyRankFile(board.Bishop, bishopPSTMid, bishopPSTEnd)
	applyRankFile(board.Rook, rookPSTMid, rookPSTEnd)
	applyRankFile(board.Queen, queenPSTMid, queenPSTEnd)
	applyRankFile(board.King, kingPSTMid, kingPSTEnd)
}

func applyRankFile(fig board.Figure, mid, end [64]int32) {
	for sq := board.SquareMinValue; sq <= board.SquareMaxValue; sq++ {
		pst[fig][sq] = Score{mid[sq], end[sq]}
	}
}

// Tables are listed a8..h8, a7..h7, ..., a1..h1 (top-to-bottom, the
// conventional way to read a PST), then flipped into a1-based index
// order at init time via rankFileFlip.
var pawnPSTMid = rankFileFlip([8][8]int32{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
})

var pawnPSTEnd = rankFileFlip([8][8]int32{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{80, 80, 80, 80, 80, 80, 80, 80},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{30, 30, 30, 30, 30, 30, 30, 30},
	{15, 15, 15, 15, 15, 15, 15, 15},
	{5, 5, 5, 5, 5, 5, 5, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
})

var knightPSTMid = rankFileFlip([8][8]int32{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
})

var knightPSTEnd = knightPSTMid

var bishopPSTMid = rankFileFlip([8][8]int32{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
})

var bishopPSTEnd = bishopPSTMid

var rookPSTMid = rankFileFlip([8][8]int32{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
})

var rookPSTEnd = rookPSTMid

var queenPSTMid = rankFileFlip([8][8]int32{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
})

var queenPSTEnd = queenPSTMid

var kingPSTMid = rankFileFlip([8][8]int32{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
})

var kingPSTEnd = rankFileFlip([8][8]int32{
	{-50, -40, -30, -20, -20, -30, -40, -50},
	{-30, -20, -10, 0, 0, -10, -20, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -30, 0, 0, 0, 0, -30, -30},
	{-50, -30, -30, -30, -30, -30, -30, -50},
})

// rankFileFlip converts a table written rank-8-first (as chess diagrams
// are normally drawn) into one indexed by board.RankFile(0,...)..(7,...).
func rankFileFlip(t [8][8]int32) (out [64]int32) {
	for i := 0; i < 8; i++ {
		rank := 7 - i
		for f := 0; f < 8; f++ {
			out[board.RankFile(rank, f)] = t[i][f]
		}
	}
	return out
}
