package search

import (
	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
)

// Tuning knobs for the search. These are package-level vars rather than
// constants so internal/config can seed them from a TOML file before
// the first search starts; nothing in this package mutates them once a
// search is underway.
var (
	checkDepthExtension int32 = 1
	nullMoveDepthLimit  int32 = 1
	lmrDepthLimit       int32 = 3
	futilityDepthLimit  int32 = 3

	initialAspirationWindow int32 = 21
	futilityMargin          int32 = 150
	checkpointStep          uint64 = 10000
)

// Tuning holds the subset of search constants a config file may seed.
// Zero fields are left at their built-in default.
type Tuning struct {
	AspirationWindow int32
	FutilityMargin   int32
	LMRDepthLimit    int32
	NullMoveDepthLim int32
	CheckpointNodes  uint64
}

// ApplyTuning overrides the package's search constants from t, leaving
// any zero field at its built-in default. Must be called before the
// first search starts; it is not safe to call concurrently with Play.
func ApplyTuning(t Tuning) {
	if t.AspirationWindow != 0 {
		initialAspirationWindow = t.AspirationWindow
	}
	if t.FutilityMargin != 0 {
		futilityMargin = t.FutilityMargin
	}
	if t.LMRDepthLimit != 0 {
		lmrDepthLimit = t.LMRDepthLimit
	}
	if t.NullMoveDepthLim != 0 {
		nullMoveDepthLimit = t.NullMoveDepthLim
	}
	if t.CheckpointNodes != 0 {
		checkpointStep = t.CheckpointNodes
	}
}

// futilityFigureBonus estimates how much capturing each figure could
// swing the static evaluation, used to prune moves that cannot possibly
// raise alpha even in the most generous case.
var futilityFigureBonus = [board.FigureArraySize]int32{0, 100, 325, 325, 500, 975, 0}

// Stats reports progress of a single Play call.
type Stats struct {
	Nodes    uint64
	Depth    int32
	SelDepth int32
}

// Logger receives progress reports during a search. A nil Logger is
// replaced with NulLogger, which discards everything.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []board.Move)
}

// NulLogger implements Logger by doing nothing.
type NulLogger struct{}

func (NulLogger) BeginSearch()                                 {}
func (NulLogger) EndSearch()                                   {}
func (NulLogger) PrintPV(Stats, int32, []board.Move)           {}

// Searcher finds the best move in a position via iterative-deepening
// negamax with the usual complement of pruning and reduction
// techniques. A Searcher is single-threaded; Coordinator fans
// several of them out over one shared Table.
type Searcher struct {
	Position *board.Position
	Table    *Table
	History  *History
	Evaluate eval.Evaluator
	Log      Logger
	Stats    Stats

	rootPly    int
	tc         *TimeControl
	stopped    bool
	checkpoint uint64
}

// NewSearcher returns a Searcher over pos, using tt as its transposition
// table. If evaluator is nil, eval.Material is used; if log is nil,
// progress reports are discarded.
func NewSearcher(pos *board.Position, tt *Table, evaluator eval.Evaluator, log Logger) *Searcher {
	if evaluator == nil {
		evaluator = eval.Material
	}
	if log == nil {
		log = NulLogger{}
	}
	return &Searcher{
		Position: pos,
		Table:    tt,
		History:  NewHistory(),
		Evaluate: evaluator,
		Log:      log,
	}
}

// SetPosition replaces the position being searched.
func (s *Searcher) SetPosition(pos *board.Position) { s.Position = pos }

func (s *Searcher) ply() int32 { return int32(s.Position.Ply - s.rootPly) }

// score evaluates the current position from the side-to-move's POV.
func (s *Searcher) score() int32 { return s.Evaluate(s.Position) }

// endPosition reports whether the game is immediately over at the
// current node and, if so, its score from the side-to-move's POV.
func (s *Searcher) endPosition() (int32, bool) {
	pos := s.Position
	if pos.HasInsufficientMaterial() {
		return 0, true
	}
	if pos.HalfMoveClock >= 100 {
		return 0, true
	}
	if pos.IsThreeFoldRepetition() {
		return 0, true
	}
	if s.ply() > 0 && pos.IsRepetition() {
		return 0, true
	}
	return 0, false
}

// isFutile reports whether m cannot raise the static evaluation static
// above α even granting it margin room, short-circuiting promotions,
// which can swing the score by much more. Pawn pushes, passed or not,
// are judged like any other move.
func isFutile(pos *board.Position, static, alpha, margin int32, m board.Move) bool {
	if m.Promotion != board.NoFigure {
		return false
	}
	captured := pos.Get(m.CaptureSquare())
	delta := futilityFigureBonus[captured.Figure()]
	return static+delta+margin < alpha
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// searchQuiescence resolves tactical sequences (captures, promotions,
// en-passant) until the position is quiet, so the static evaluator is
// never asked to judge a position in the middle of a trade.
func (s *Searcher) searchQuiescence(alpha, beta int32) int32 {
	s.Stats.Nodes++
	if score, done := s.endPosition(); done {
		return score
	}

	static := s.score()
	if static >= beta {
		return static
	}

	pos := s.Position
	inCheck := pos.IsChecked(pos.SideToMove)
	localAlpha := max32(alpha, static)

	var moves []board.Move
	kind := board.Violent
	if inCheck {
		kind = board.All
	}
	pos.GenerateLegalMoves(kind, &moves)
	s.History.Order(pos, moves, board.NullMove, int(s.ply()))

	for _, move := range moves {
		if !inCheck && isFutile(pos, static, localAlpha, futilityMargin, move) {
			continue
		}
		if !inCheck && pos.Get(move.CaptureSquare()) != board.NoPiece && seeSign(pos, move) {
			continue
		}

		undo := pos.DoMove(move)
		score := -s.searchQuiescence(-beta, -localAlpha)
		pos.UnmakeMove(move, undo)

		if score >= beta {
			return score
		}
		if score > localAlpha {
			localAlpha = score
		}
	}
	return localAlpha
}

// tryMove applies move (possibly NullMove), descends with optional late
// move reduction and a null-window scout, and returns the score from the
// side to move's POV before move was applied.
func (s *Searcher) tryMove(alpha, beta, depth, lmr int32, nullWindow bool, move board.Move) int32 {
	depth--

	score := alpha + 1
	if lmr > 0 {
		score = -s.searchTree(-alpha-1, -alpha, depth-lmr)
	}
	if score > alpha {
		if nullWindow {
			score = -s.searchTree(-alpha-1, -alpha, depth)
			if alpha < score && score < beta {
				score = -s.searchTree(-beta, -alpha, depth)
			}
		} else {
			score = -s.searchTree(-beta, -alpha, depth)
		}
	}
	return score
}

// searchTree is the negamax core: fail-soft alpha-beta with transposition
// table probing, null-move pruning, futility pruning, check extensions and
// late move reductions. The returned score is from the side to move's POV.
func (s *Searcher) searchTree(alpha, beta, depth int32) int32 {
	ply := s.ply()
	pvNode := alpha+1 < beta
	pos := s.Position
	us := pos.SideToMove

	s.Stats.Nodes++
	if !s.stopped && s.Stats.Nodes >= s.checkpoint {
		s.checkpoint = s.Stats.Nodes + checkpointStep
		if s.tc.Stopped() {
			s.stopped = true
		}
	}
	if s.stopped {
		return alpha
	}
	if pvNode && ply > s.Stats.SelDepth {
		s.Stats.SelDepth = ply
	}

	if score, done := s.endPosition(); done {
		if ply != 0 || score != 0 {
			return score
		}
	}

	if eval.MateScore-ply <= alpha {
		return eval.KnownWinScore
	}

	hash := board.NullMove
	if entry, ok := s.Table.Probe(pos.Zobrist()); ok {
		hash = entry.Move
		if depth <= int32(entry.Depth) {
			score := FromTTScore(int16(entry.Score), int(ply))
			switch entry.Bound {
			case BoundExact:
				if alpha < score && score < beta {
					return score
				}
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
		if !hash.IsNull() && !pos.IsLegal(hash) {
			hash = board.NullMove
		}
	}

	if depth <= 0 {
		if alpha >= eval.KnownWinScore || beta <= eval.KnownLossScore {
			return s.score()
		}
		score := s.searchQuiescence(alpha, beta)
		s.Table.Store(pos.Zobrist(), board.NullMove, ToTTScore(score, int(ply)), 0, BoundExact, 0, false)
		return score
	}

	sideIsChecked := pos.IsChecked(us)

	if depth > nullMoveDepthLimit &&
		!sideIsChecked &&
		pos.HasNonPawns(us) &&
		eval.KnownLossScore < alpha && beta < eval.KnownWinScore {
		undo := pos.DoNullMove()
		reduction := int32(2)
		if pos.NumNonPawns(us) <= 1 {
			reduction = 1
		}
		score := s.tryMove(beta-1, beta, depth-reduction, 0, false, board.NullMove)
		pos.UndoNullMove(undo)
		if score >= beta {
			return score
		}
	}

	bestMove, bestScore := board.NullMove, int32(-eval.InfinityScore)

	static := int32(0)
	allowLeafPruning := false
	if depth <= futilityDepthLimit &&
		!sideIsChecked && !pvNode &&
		eval.KnownLossScore < alpha && beta < eval.KnownWinScore {
		allowLeafPruning = true
		static = s.score()
	}

	nullWindow := false
	allowLateMove := !sideIsChecked && depth > lmrDepthLimit

	dropped := false
	numMoves := int32(0)
	localAlpha := alpha

	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	s.History.Order(pos, moves, hash, int(ply))

	for _, move := range moves {
		critical := move == hash || s.History.IsKiller(int(ply), move)
		numMoves++
		newDepth := depth

		// SEE and futility read the captured piece off the board, so they
		// are evaluated before the move is applied.
		isCapture := pos.Get(move.CaptureSquare()) != board.NoPiece
		losingCapture := allowLateMove && !critical && isCapture && seeSign(pos, move)
		futile := allowLeafPruning && !critical && isFutile(pos, static, localAlpha, depth*futilityMargin, move)

		undo := pos.DoMove(move)
		them := us.Opposite()
		givesCheck := pos.IsChecked(them)
		if givesCheck {
			newDepth += checkDepthExtension
		}

		lmr := int32(0)
		if allowLateMove && !givesCheck && !critical {
			if !isCapture || losingCapture {
				lmr = 1 + min32(depth, numMoves)/5
			}
		}

		if futile && !givesCheck {
			bestScore = max32(bestScore, static)
			dropped = true
			pos.UnmakeMove(move, undo)
			continue
		}

		score := s.tryMove(localAlpha, beta, newDepth, lmr, nullWindow, move)
		pos.UnmakeMove(move, undo)

		if score >= beta {
			if !isCapture {
				var prev board.Move
				if ply > 0 {
					prev = pos.LastMove()
				}
				s.History.RecordCutoff(us, move, prev, int(ply), int(depth))
			}
			s.Table.Store(pos.Zobrist(), move, ToTTScore(score, int(ply)), int8(depth), BoundLower, 0, false)
			return score
		}
		if score > bestScore {
			nullWindow = true
			bestMove, bestScore = move, score
			localAlpha = max32(localAlpha, score)
		}
	}

	if !dropped {
		if bestMove.IsNull() {
			if sideIsChecked {
				bestScore = eval.MatedScore + ply
			} else {
				bestScore = 0
			}
		}
		bound := BoundExact
		if bestScore <= alpha {
			bound = BoundUpper
		}
		s.Table.Store(pos.Zobrist(), bestMove, ToTTScore(bestScore, int(ply)), int8(depth), bound, 0, false)
	}

	return bestScore
}

// search runs one iterative-deepening iteration at depth, using estimated
// (the previous iteration's score) to pick an aspiration window and
// gradually widening it on failure.
func (s *Searcher) search(depth, estimated int32) int32 {
	gamma, delta := estimated, int32(initialAspirationWindow)
	alpha, beta := max32(gamma-delta, -eval.InfinityScore), min32(gamma+delta, eval.InfinityScore)
	score := estimated

	if depth < 4 {
		alpha, beta = -eval.InfinityScore, eval.InfinityScore
	}

	for !s.stopped {
		score = s.searchTree(alpha, beta, depth)
		if score <= alpha {
			alpha = max32(alpha-delta, -eval.InfinityScore)
			delta += delta / 2
		} else if score >= beta {
			beta = min32(beta+delta, eval.InfinityScore)
			delta += delta / 2
		} else {
			return score
		}
	}
	return score
}

// Play runs iterative deepening until tc says to stop, and returns the
// principal variation found, moves[0] being the move to play. tc should
// already have had Start called. An empty result means the game is over
// in the current position.
func (s *Searcher) Play(tc *TimeControl) []board.Move {
	s.Log.BeginSearch()
	s.Stats = Stats{Depth: -1}

	s.rootPly = s.Position.Ply
	s.tc = tc
	s.stopped = false
	s.checkpoint = checkpointStep

	var pv []board.Move
	score := int32(0)
	for depth := int32(0); depth < 64; depth++ {
		if !tc.NextDepth(int(depth)) {
			break
		}
		s.Stats.Depth = depth
		score = s.search(depth, score)
		if !s.stopped {
			pv = ExtractPV(s.Table, s.Position, int(depth)+1)
			s.Log.PrintPV(s.Stats, score, pv)
		}
	}

	s.Log.EndSearch()
	return pv
}
