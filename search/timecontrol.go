package search

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/zugzwang-engine/zugzwang/board"
)

const (
	defaultMovesToGo    = 30
	defaultBranchFactor = 2
)

// TimeControl decides how long a search may run and when the current
// iteration should give up. Pondering on the opponent's clock is out of
// scope, so unlike some engines this only ever manages "our" deadline.
type TimeControl struct {
	WTime, WInc time.Duration
	BTime, BInc time.Duration
	Depth       int
	MovesToGo   int
	NodeLimit   uint64
	Infinite    bool

	numPieces  int
	sideToMove board.Color
	stopped    atomic.Bool
	nodes      atomic.Uint64

	searchTime     time.Duration
	searchDeadline time.Time
}

// NewTimeControl returns an unconstrained time control for pos: no time
// limit, full depth, no node limit.
func NewTimeControl(pos *board.Position) *TimeControl {
	inf := time.Duration(math.MaxInt64)
	return &TimeControl{
		WTime: inf, BTime: inf,
		Depth:      64,
		MovesToGo:  defaultMovesToGo,
		numPieces:  (pos.ByColor[board.White] | pos.ByColor[board.Black]).Popcnt(),
		sideToMove: pos.SideToMove,
	}
}

// NewFixedDepthTimeControl returns a time control that only limits depth.
func NewFixedDepthTimeControl(pos *board.Position, depth int) *TimeControl {
	tc := NewTimeControl(pos)
	tc.Depth = depth
	tc.MovesToGo = 1
	return tc
}

// NewMoveTimeControl returns a time control bound to a fixed per-move duration.
func NewMoveTimeControl(pos *board.Position, d time.Duration) *TimeControl {
	tc := NewTimeControl(pos)
	tc.WTime, tc.BTime = d, d
	tc.MovesToGo = 1
	return tc
}

// thinkingTime apportions remaining time t (plus increment i) over the
// moves still expected, front-loading the budget early and leaning on
// the increment as MovesToGo shrinks.
func (tc *TimeControl) thinkingTime(t, i time.Duration) time.Duration {
	n := time.Duration(tc.MovesToGo)
	if tt := (t + (n-1)*i) / n; tt < t {
		return tt
	}
	return t
}

// Start computes the search deadline. Call as close as possible to the
// start of the search so elapsed clock time is charged correctly.
func (tc *TimeControl) Start() {
	if tc.Infinite {
		tc.searchDeadline = time.Now().Add(time.Duration(math.MaxInt64 / 2))
		return
	}

	branchFactor := time.Duration(defaultBranchFactor)
	for np := tc.numPieces - 2; np > 0; np /= 6 {
		branchFactor++
	}
	for i := 4; i > 0; i /= 2 {
		if tc.MovesToGo <= i {
			branchFactor++
		}
	}

	var otime, oinc time.Duration
	if tc.sideToMove == board.White {
		otime, oinc = tc.WTime, tc.WInc
	} else {
		otime, oinc = tc.BTime, tc.BInc
	}

	tc.searchTime = tc.thinkingTime(otime, oinc) / branchFactor
	tc.searchDeadline = time.Now().Add(tc.searchTime)
}

// NextDepth reports whether the searcher may start iterating at depth.
// Depths 1 and 2 always start, so a search under heavy time pressure
// still returns a move instead of nothing.
func (tc *TimeControl) NextDepth(depth int) bool {
	return depth <= tc.Depth && (depth <= 2 || !tc.Stopped())
}

// Stop marks the search as stopped; idempotent and safe from any goroutine.
func (tc *TimeControl) Stop() { tc.stopped.Store(true) }

// Stopped reports whether the deadline has passed or Stop was called.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.Load() {
		return true
	}
	if tc.NodeLimit != 0 && tc.nodes.Load() >= tc.NodeLimit {
		tc.stopped.Store(true)
		return true
	}
	if !tc.Infinite && time.Now().After(tc.searchDeadline) {
		tc.stopped.Store(true)
		return true
	}
	return false
}

// AddNodes records nodes searched, for NodeLimit enforcement and NPS reporting.
func (tc *TimeControl) AddNodes(n uint64) { tc.nodes.Add(n) }

// Nodes returns the total nodes recorded via AddNodes.
func (tc *TimeControl) Nodes() uint64 { return tc.nodes.Load() }
