package search

import "github.com/zugzwang-engine/zugzwang/board"

// ExtractPV walks the transposition table from pos forward, following
// each position's stored best move, to reconstruct the principal
// variation found during the last completed iteration. pos is restored
// to its original state before returning; a seen-hash set guards
// against looping through a repeated position.
func ExtractPV(tt *Table, pos *board.Position, maxLen int) []board.Move {
	var pv []board.Move
	var moves []board.Move
	var undos []board.UndoInfo
	seen := map[uint64]bool{pos.Zobrist(): true}

	for len(pv) < maxLen {
		entry, ok := tt.Probe(pos.Zobrist())
		if !ok || entry.Move.IsNull() || !pos.IsLegal(entry.Move) {
			break
		}
		undo := pos.DoMove(entry.Move)
		moves = append(moves, entry.Move)
		undos = append(undos, undo)
		pv = append(pv, entry.Move)
		if seen[pos.Zobrist()] {
			break
		}
		seen[pos.Zobrist()] = true
	}

	for i := len(moves) - 1; i >= 0; i-- {
		pos.UnmakeMove(moves[i], undos[i])
	}
	return pv
}
