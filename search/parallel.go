package search

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
	"github.com/zugzwang-engine/zugzwang/internal/xlog"
)

// depthVariation perturbs a helper thread's search depth around the main
// thread's target depth, trading some search-tree overlap for diversity:
// a helper stuck in a bad line at one depth may stumble onto the right
// move at a neighboring one, and feed it into the shared table.
type depthVariation struct {
	base, jitter int32
}

// defaultVariations cycles helper threads through a handful of depth
// offsets; thread 1 searches one ply shallower, thread 2 one deeper, and
// so on, each with a little random jitter for extra diversity.
var defaultVariations = []depthVariation{
	{base: -1, jitter: 1},
	{base: 1, jitter: 1},
	{base: 0, jitter: 2},
	{base: -2, jitter: 1},
}

// Coordinator runs Lazy-SMP search: several Searcher workers over
// independent position clones, all probing and storing into one shared
// Table. Workers see each other's discoveries through the table instead
// of through explicit coordination, so the win from extra threads comes
// cheaply, without splitting the search tree.
type Coordinator struct {
	Table    *Table
	Evaluate eval.Evaluator
	Log      Logger
	Threads  int

	// BookProbe, if set, is consulted before any search starts. Opening
	// book content itself is out of scope; this is only the seam a
	// caller can plug one into.
	BookProbe func(pos *board.Position) (board.Move, bool)

	mu        sync.Mutex
	bestMove  board.Move
	bestScore int32
	nodes     uint64
}

// NewCoordinator returns a coordinator for threads workers (at least
// 1) sharing tt.
func NewCoordinator(tt *Table, evaluator eval.Evaluator, log Logger, threads int) *Coordinator {
	if threads < 1 {
		threads = 1
	}
	if evaluator == nil {
		evaluator = eval.Material
	}
	if log == nil {
		log = NulLogger{}
	}
	return &Coordinator{Table: tt, Evaluate: evaluator, Log: log, Threads: threads}
}

// Play runs iterative deepening to tc's deadline using all configured
// threads and returns the principal variation from root, moves[0] being
// the move to play. The main worker (thread 0) drives depth progression
// and reporting; helper workers search jittered depths in the background
// and feed the table but do not otherwise influence the returned result
// beyond what they leave behind in it.
func (ps *Coordinator) Play(ctx context.Context, pos *board.Position, tc *TimeControl) []board.Move {
	ps.Log.BeginSearch()
	ps.mu.Lock()
	ps.bestMove, ps.bestScore, ps.nodes = board.NullMove, 0, 0
	ps.mu.Unlock()

	var root []board.Move
	pos.GenerateLegalMoves(board.All, &root)
	if len(root) == 0 {
		ps.Log.EndSearch()
		return nil
	}
	if len(root) == 1 {
		ps.Log.EndSearch()
		return root
	}
	if ps.BookProbe != nil {
		if move, ok := ps.BookProbe(pos); ok {
			ps.mu.Lock()
			ps.bestMove = move
			ps.mu.Unlock()
			ps.Log.EndSearch()
			return []board.Move{move}
		}
	}

	histories := make([]*History, ps.Threads)
	boards := make([]*board.Position, ps.Threads)
	for i := range histories {
		histories[i] = NewHistory()
		if i == 0 {
			boards[i] = pos
		} else {
			boards[i] = pos.Clone()
		}
	}

	var pv []board.Move
	score := int32(0)
	for depth := int32(0); depth < 64; depth++ {
		if !tc.NextDepth(int(depth)) {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		var mainScore int32
		for w := 0; w < ps.Threads; w++ {
			w := w
			g.Go(func() (err error) {
				// A panicking worker must never take its siblings down
				// with it: recover, log, and let the rest of the pool
				// carry the iteration without this thread's contribution.
				defer func() {
					if r := recover(); r != nil {
						xlog.Errorf("search worker %d panicked: %v", w, r)
					}
				}()

				wdepth := depth
				if w > 0 {
					v := defaultVariations[(w-1)%len(defaultVariations)]
					jitter := int32(0)
					if v.jitter > 0 {
						jitter = rand.Int31n(2*v.jitter+1) - v.jitter
					}
					wdepth = depth + v.base + jitter
					if wdepth < 1 {
						wdepth = 1
					}
				}
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				s := NewSearcher(boards[w], ps.Table, ps.Evaluate, NulLogger{})
				s.History = histories[w]
				s.tc = tc
				s.rootPly = boards[w].Ply
				s.checkpoint = checkpointStep
				ws := s.search(wdepth, score)
				ps.mu.Lock()
				ps.nodes += s.Stats.Nodes
				if w == 0 {
					mainScore = ws
				}
				ps.mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		if tc.Stopped() {
			break
		}
		score = mainScore
		pv = ExtractPV(ps.Table, pos, int(depth)+1)
		if len(pv) == 0 {
			pv = root[:1]
		}

		ps.mu.Lock()
		ps.bestMove, ps.bestScore = pv[0], score
		ps.mu.Unlock()

		ps.Log.PrintPV(Stats{Depth: depth, Nodes: ps.nodes}, score, pv)

		if score > eval.MateScore-1000 || score < eval.MatedScore+1000 {
			break
		}
	}

	ps.Log.EndSearch()
	return pv
}

// BestMove returns the best move and score found by the most recently
// completed Play iteration.
func (ps *Coordinator) BestMove() (board.Move, int32) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.bestMove, ps.bestScore
}

// Nodes returns the total node count across all worker threads in the
// most recently completed Play call.
func (ps *Coordinator) Nodes() uint64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.nodes
}
