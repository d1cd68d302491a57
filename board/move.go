package board

import "fmt"

// Move is fully determined by these five fields plus the position it is
// applied to: From/To identify the squares, Promotion names the figure a
// pawn promotes to (NoFigure otherwise), and IsCastling/IsEnPassant flag
// the two move kinds make/unmake cannot infer from From/To alone.
type Move struct {
	From, To    Square
	Promotion   Figure
	IsCastling  bool
	IsEnPassant bool
}

// NullMove is the sentinel used by null-move pruning; it never legally
// occurs on the board (From == To).
var NullMove = Move{}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m.From == m.To }

// CaptureSquare returns the square whose occupant m removes, which for
// en-passant differs from the destination square.
func (m Move) CaptureSquare() Square {
	if m.IsEnPassant {
		if m.To.Rank() > m.From.Rank() {
			return m.To.Relative(-1, 0)
		}
		return m.To.Relative(+1, 0)
	}
	return m.To
}

// UndoInfo carries everything Position.UnmakeMove needs to restore the
// exact prior state: the captured piece (if any), the previous castling
// rights, the previous en-passant square, the previous half-move clock
// and the previous Zobrist hash. Recomputing any of these from scratch
// after the fact is not possible in general, so they ride along on the
// search stack.
type UndoInfo struct {
	Captured      Piece
	CastleRights  Castle
	EnpassantSq   Square
	HasEnpassant  bool
	HalfMoveClock int
	Hash          uint64
}

// String renders m in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoFigure {
		s += promotionLetter[m.Promotion]
	}
	return s
}

var promotionLetter = map[Figure]string{
	Knight: "n", Bishop: "b", Rook: "r", Queen: "q",
}

var letterToPromotion = map[byte]Figure{
	'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen,
}

// ParseMoveText parses long algebraic move text ("e2e4", "e7e8q").
// IsCastling and IsEnPassant cannot be recovered from the text alone;
// callers should use Position.ParseMove to fill those in against a
// concrete board.
func ParseMoveText(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move text %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move text %q: %v", s, err)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move text %q: %v", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		fig, ok := letterToPromotion[s[4]]
		if !ok {
			return Move{}, fmt.Errorf("invalid move text %q: bad promotion piece", s)
		}
		m.Promotion = fig
	}
	return m, nil
}
