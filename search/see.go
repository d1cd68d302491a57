package search

import "github.com/zugzwang-engine/zugzwang/board"

// seeBonus gives each figure a fixed value for the swap algorithm below,
// deliberately simpler than the tuned material values in eval: SEE only
// needs to rank captures relative to each other.
var seeBonus = [board.FigureArraySize]int32{0, 100, 357, 377, 712, 1253, 20000}

// seeSign reports whether SEE(m) is negative, i.e. the capture loses
// material after all recaptures. Cheap to check first: if the piece
// moving is worth no more than what it captures, the exchange can never
// go negative regardless of what recaptures follow.
func seeSign(pos *board.Position, m board.Move) bool {
	moving := pos.Get(m.From).Figure()
	captured := pos.Get(m.CaptureSquare()).Figure()
	if moving <= captured {
		return false
	}
	return see(pos, m) < 0
}

// see runs the classical static-exchange-evaluation swap algorithm on m,
// a pseudo-legal move not yet applied to pos: https://www.chessprogramming.org/SEE_-_The_Swap_Algorithm
func see(pos *board.Position, m board.Move) int32 {
	us := pos.SideToMove
	sq := m.To
	target := pos.Get(m.From) // the piece that will sit on sq after each capture
	captured := pos.Get(m.CaptureSquare())

	var occ [board.ColorArraySize]board.Bitboard
	occ[board.White] = pos.ByColor[board.White]
	occ[board.Black] = pos.ByColor[board.Black]
	occ[us] &^= m.From.Bitboard()
	occ[us] |= m.To.Bitboard()
	occ[us.Opposite()] &^= m.CaptureSquare().Bitboard()
	us = us.Opposite()

	all := occ[board.White] | occ[board.Black]

	score := seeBonus[captured.Figure()]
	if m.Promotion != board.NoFigure {
		score += seeBonus[m.Promotion] - seeBonus[board.Pawn]
	}

	gain := make([]int32, 0, 16)
	gain = append(gain, score)

	bb := sq.Bitboard()
	bb27 := bb &^ (board.BbRank1 | board.BbRank8)
	bb18 := bb & (board.BbRank1 | board.BbRank8)

	for score >= 0 {
		ours := occ[us]
		var att board.Bitboard
		var fig board.Figure
		promoting := false

		if a := board.Backward(us, board.West(bb27)|board.East(bb27)) & ours & pos.ByFigure[board.Pawn]; a != 0 {
			att, fig = a, board.Pawn
		} else if a := board.BbKnightAttack[sq] & ours & pos.ByFigure[board.Knight]; a != 0 {
			att, fig = a, board.Knight
		} else if board.BbSuperAttack[sq]&ours == 0 {
			break
		} else if a := board.BishopAttack(sq, all) & ours & pos.ByFigure[board.Bishop]; a != 0 {
			att, fig = a, board.Bishop
		} else if a := board.RookAttack(sq, all) & ours & pos.ByFigure[board.Rook]; a != 0 {
			att, fig = a, board.Rook
		} else if a := board.Backward(us, board.West(bb18)|board.East(bb18)) & ours & pos.ByFigure[board.Pawn]; a != 0 {
			att, fig, promoting = a, board.Queen, true
		} else if a := (board.RookAttack(sq, all) | board.BishopAttack(sq, all)) & ours & pos.ByFigure[board.Queen]; a != 0 {
			att, fig = a, board.Queen
		} else if a := board.BbKingAttack[sq] & ours & pos.ByFigure[board.King]; a != 0 {
			att, fig = a, board.King
		} else {
			break
		}

		from := att.LSB()
		gainScore := seeBonus[target.Figure()]
		if promoting {
			gainScore += seeBonus[board.Queen] - seeBonus[board.Pawn]
		}
		score = gainScore - score
		gain = append(gain, score)

		target = board.ColorFigure(us, fig)
		occ[us] &^= from
		all &^= from
		us = us.Opposite()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
