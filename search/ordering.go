package search

import (
	"sort"

	"github.com/zugzwang-engine/zugzwang/board"
)

// mvvlvaBonus ranks captures by Most-Valuable-Victim minus a small
// penalty for a more valuable attacker, tried before any quiet move.
var mvvlvaBonus = [board.FigureArraySize]int32{0, 10, 30, 30, 50, 90, 900}

const (
	scoreTTMove     = 1 << 30
	scoreCheck      = 1 << 25
	scoreGoodCapt   = 1 << 20
	scorePromotion  = 1 << 19
	scoreEnPassant  = 1 << 18
	scoreCastling   = 1 << 17
	scoreKiller1    = 1 << 16
	scoreKiller2    = 1 << 15
	scoreCounter    = 1 << 14
	scoreBadCapture = -(1 << 20)
)

// MaxPly bounds the killer/history/search-stack arrays; deep enough for
// any game this engine will face time controls on.
const MaxPly = 128

// killerPair holds the two most recent quiet moves that caused a beta
// cutoff at a given ply, tried right after captures since they are
// likely good independent of the exact position.
type killerPair struct {
	first, second board.Move
}

// History accumulates move-ordering statistics across a whole search:
// killer moves per ply, a counter-move table keyed by the opponent's
// last move, and the history heuristic indexed by [color][from][to].
type History struct {
	killers [MaxPly]killerPair
	counter [board.ColorArraySize][64][64]board.Move
	history [board.ColorArraySize][64][64]int32
}

// NewHistory returns a zeroed History, ready for a fresh search.
func NewHistory() *History { return &History{} }

// Reset clears per-game state; called on `ucinewgame`.
func (h *History) Reset() { *h = History{} }

// AgeHistory halves every history score, keeping old information around
// (so it still influences ordering) without letting it dominate forever.
func (h *History) AgeHistory() {
	for c := range h.history {
		for f := range h.history[c] {
			for t := range h.history[c][f] {
				h.history[c][f][t] /= 2
			}
		}
	}
}

// RecordCutoff updates killers/counter/history after a quiet move at
// ply causes a beta cutoff.
func (h *History) RecordCutoff(us board.Color, m board.Move, prev board.Move, ply, depth int) {
	if ply < MaxPly {
		k := &h.killers[ply]
		if k.first != m {
			k.second = k.first
			k.first = m
		}
	}
	if !prev.IsNull() {
		h.counter[us][prev.From][prev.To] = m
	}
	h.history[us][m.From][m.To] += int32(depth * depth)
	if h.history[us][m.From][m.To] > 1<<24 {
		h.AgeHistory()
	}
}

// IsKiller reports whether m is one of ply's two killer moves.
func (h *History) IsKiller(ply int, m board.Move) bool {
	if ply >= MaxPly {
		return false
	}
	k := &h.killers[ply]
	return k.first == m || k.second == m
}

// scored pairs a candidate move with its ordering score for sorting.
type scored struct {
	move  board.Move
	score int32
}

// givesCheck reports whether applying m leaves the opponent in check. It
// plays and immediately unplays m on pos, so callers pay one extra
// make/unmake per candidate move during ordering.
func givesCheck(pos *board.Position, m board.Move) bool {
	undo := pos.DoMove(m)
	check := pos.IsChecked(pos.SideToMove)
	pos.UnmakeMove(m, undo)
	return check
}

// centerLineDist returns v's distance to the nearest of the board's two
// center files/ranks (index 3 or 4 of 0..7).
func centerLineDist(v int) int {
	d3 := v - 3
	if d3 < 0 {
		d3 = -d3
	}
	d4 := v - 4
	if d4 < 0 {
		d4 = -d4
	}
	if d3 < d4 {
		return d3
	}
	return d4
}

// centerTiebreak nudges quiet moves toward the center square by square,
// the smallest of the priority tiers: it adds 0..3 to the history score,
// so it can reorder quiet moves whose history scores differ by 3 or less.
func centerTiebreak(sq board.Square) int32 {
	dist := centerLineDist(sq.File())
	if r := centerLineDist(sq.Rank()); r > dist {
		dist = r
	}
	return int32(3 - dist)
}

// Order sorts moves in place, best-guess-first, following the priority
// tiers a human reviewing this engine's play would expect: the TT move,
// then checking moves, winning captures (MVV-LVA, losing captures
// demoted via SEE), promotions (by promoted-piece value), en-passant,
// castling, killers and the counter-move, and finally quiet moves by
// history score with a small center-proximity tiebreaker.
func (h *History) Order(pos *board.Position, moves []board.Move, ttMove board.Move, ply int) {
	us := pos.SideToMove
	var prev board.Move
	if ply > 0 {
		prev = pos.LastMove()
	}
	counter := board.NullMove
	if !prev.IsNull() {
		counter = h.counter[us][prev.From][prev.To]
	}

	buf := make([]scored, len(moves))
	for i, m := range moves {
		var s int32
		switch {
		case m == ttMove:
			s = scoreTTMove
		case givesCheck(pos, m):
			s = scoreCheck
		case pos.Get(m.CaptureSquare()) != board.NoPiece && !m.IsEnPassant:
			victim := pos.Get(m.CaptureSquare()).Figure()
			attacker := pos.Get(m.From).Figure()
			base := mvvlvaBonus[victim]*8 - mvvlvaBonus[attacker]
			if seeSign(pos, m) {
				s = scoreBadCapture + base
			} else {
				s = scoreGoodCapt + base
			}
		case m.Promotion != board.NoFigure:
			s = scorePromotion + mvvlvaBonus[m.Promotion]
		case m.IsEnPassant:
			s = scoreEnPassant
		case m.IsCastling:
			s = scoreCastling
		case h.IsKiller(ply, m):
			if h.killers[ply].first == m {
				s = scoreKiller1
			} else {
				s = scoreKiller2
			}
		case m == counter:
			s = scoreCounter
		default:
			s = h.history[us][m.From][m.To] + centerTiebreak(m.To)
		}
		buf[i] = scored{m, s}
	}

	sort.SliceStable(buf, func(i, j int) bool { return buf[i].score > buf[j].score })
	for i := range buf {
		moves[i] = buf[i].move
	}
}
