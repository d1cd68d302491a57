package board

import "math/rand"

// Zobrist hashing keys. Seeded deterministically so that two processes
// (e.g. Lazy-SMP workers, or a test and the engine under test) always
// agree on the same hash for the same position.
var (
	zobristPiece    [PieceArraySize][SquareArraySize]uint64
	zobristEnpassant [SquareArraySize]uint64
	zobristCastle   [CastleArraySize]uint64
	zobristColor    [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Uint32())<<32 ^ uint64(r.Uint32())
}

func initZobristPiece(r *rand.Rand) {
	for pi := PieceMinValue; pi <= PieceMaxValue; pi++ {
		for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
			zobristPiece[pi][sq] = rand64(r)
		}
	}
}

func initZobristEnpassant(r *rand.Rand) {
	for f := 0; f < 8; f++ {
		hash := rand64(r)
		zobristEnpassant[RankFile(2, f)] = hash
		zobristEnpassant[RankFile(5, f)] = hash
	}
}

func initZobristCastle(r *rand.Rand) {
	for c := CastleMinValue; c <= CastleMaxValue; c++ {
		zobristCastle[c] = rand64(r)
	}
}

func initZobristColor(r *rand.Rand) {
	for c := ColorMinValue; c <= ColorMaxValue; c++ {
		zobristColor[c] = rand64(r)
	}
}

func init() {
	r := rand.New(rand.NewSource(1))
	initZobristColor(r)
	initZobristPiece(r)
	initZobristCastle(r)
	initZobristEnpassant(r)
}
