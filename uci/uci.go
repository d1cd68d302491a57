// Package uci implements enough of the Universal Chess Interface for a
// GUI to drive the engine: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
	"github.com/zugzwang-engine/zugzwang/internal/xlog"
	"github.com/zugzwang-engine/zugzwang/search"
)

// ErrQuit is returned by Execute for the `quit` command; the caller's
// read loop treats it as a clean exit rather than an error to report.
var ErrQuit = errors.New("quit")

const (
	minHashMB, maxHashMB       = 1, 65536
	minThreads, maxThreads     = 1, 512
	minMultiPV, maxMultiPV     = 1, 1 // MultiPV beyond 1 is a non-goal
)

// Options holds the engine's UCI-tunable state. Hash/Threads start from
// whatever internal/config seeded and are only ever overridden by
// `setoption`, never the other way around.
type Options struct {
	HashMB   int
	Threads  int
	OwnBook  bool
	MultiPV  int
	Ponder   bool // accepted, no-op: pondering is out of scope
}

// DefaultOptions returns the engine's built-in option defaults, used
// when no config file supplied different ones.
func DefaultOptions() Options {
	return Options{HashMB: 64, Threads: 1, MultiPV: 1}
}

// BookProbe is the opening-book seam: nil means no book is wired.
// When non-nil, it is only consulted while Options.OwnBook is true.
type BookProbe func(pos *board.Position) (board.Move, bool)

// Engine is the UCI front-end's view of the search core: one position,
// one shared table, and the coordinator driving Lazy-SMP over it.
type Engine struct {
	Options   Options
	bookProbe BookProbe

	pos   *board.Position
	table *search.Table
	log   *protocolLogger

	cancel  context.CancelFunc
	running chan struct{}      // non-nil while a search goroutine is in flight
	tc      *search.TimeControl // time control of the in-flight search, if any

	lastPV []board.Move // pv from the most recently completed go command
}

// lastResult returns the best move from the most recently completed
// search, in UCI move-text form ("(none)" if the game was already over),
// and the length of that search's principal variation. Exposed for
// tests; GUIs read bestmove off stdout instead.
func (e *Engine) lastResult() (string, int) {
	if len(e.lastPV) == 0 {
		return "(none)", 0
	}
	return e.lastPV[0].String(), len(e.lastPV)
}

// New returns an Engine configured with opts (typically
// internal/config's Default()/Load() result layered under CLI flags).
func New(opts Options, book BookProbe) *Engine {
	if opts.HashMB <= 0 {
		opts.HashMB = DefaultOptions().HashMB
	}
	if opts.Threads <= 0 {
		opts.Threads = DefaultOptions().Threads
	}
	if opts.MultiPV <= 0 {
		opts.MultiPV = 1
	}
	table := search.NewTable(opts.HashMB)
	return &Engine{
		Options:   opts,
		bookProbe: book,
		pos:       board.NewStartingPosition(),
		table:     table,
		log:       newProtocolLogger(table),
	}
}

// UCI dispatches one line of input. Returns ErrQuit on `quit`.
type UCI struct {
	engine *Engine
}

// NewUCI wraps engine for line-at-a-time Execute calls.
func NewUCI(engine *Engine) *UCI {
	return &UCI{engine: engine}
}

var reCommand = regexp.MustCompile(`^[[:word:]]+\b`)

// Execute parses and runs one UCI command line.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCommand.FindString(line)
	if cmd == "" {
		fmt.Printf("info string unrecognized command line\n")
		return nil
	}

	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "ucinewgame":
		u.engine.newGame()
		return nil
	case "position":
		if err := u.engine.setPosition(line); err != nil {
			fmt.Printf("info string %v\n", err)
		}
		return nil
	case "go":
		u.engine.goCommand(line)
		return nil
	case "stop":
		u.engine.stop()
		return nil
	case "setoption":
		if err := u.engine.setOption(line); err != nil {
			fmt.Printf("info string %v\n", err)
		}
		return nil
	case "ponderhit":
		return nil // pondering is out of scope; accepted as a no-op
	case "quit":
		u.engine.stop()
		return ErrQuit
	default:
		fmt.Printf("info string unhandled command %s\n", cmd)
		return nil
	}
}

func (u *UCI) uci() error {
	fmt.Println("id name zugzwang")
	fmt.Println("id author the zugzwang contributors")
	fmt.Println()
	fmt.Printf("option name Hash type spin default %d min %d max %d\n", DefaultOptions().HashMB, minHashMB, maxHashMB)
	fmt.Printf("option name Threads type spin default %d min %d max %d\n", DefaultOptions().Threads, minThreads, maxThreads)
	fmt.Println("option name Ponder type check default false")
	fmt.Println("option name OwnBook type check default false")
	fmt.Printf("option name MultiPV type spin default 1 min %d max %d\n", minMultiPV, maxMultiPV)
	fmt.Println("option name Clear Hash type button")
	fmt.Println("uciok")
	return nil
}

// matchLegalMove returns the fully-flagged legal move matching text's
// From/To/Promotion, so a caller-constructed Move (which cannot tell
// castling or en-passant from text alone) is replaced by the board's
// own authoritative version, and moves that are not actually legal
// (not just unsafe for the king, but absent from the generator's
// output entirely) are rejected.
func matchLegalMove(pos *board.Position, want board.Move) (board.Move, error) {
	var moves []board.Move
	pos.GenerateLegalMoves(board.All, &moves)
	for _, m := range moves {
		if m.From == want.From && m.To == want.To && m.Promotion == want.Promotion {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("illegal move %v", want)
}

func (e *Engine) newGame() {
	e.stop()
	e.table.Clear()
	e.pos = board.NewStartingPosition()
}

func (e *Engine) setPosition(line string) error {
	e.stop()
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *board.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos = board.NewStartingPosition()
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		pos, err = board.PositionFromFEN(strings.Join(args[1:i], " "))
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, text := range args[i+1:] {
			move, err := pos.ParseMove(text)
			if err == nil {
				move, err = matchLegalMove(pos, move)
			}
			if err != nil {
				xlog.Warningf("dropping rest of moves list: %v", err)
				fmt.Printf("info string illegal move %s, ignoring rest of moves list\n", text)
				break
			}
			pos.DoMove(move)
		}
	}

	e.pos = pos
	return nil
}

var validGoArgs = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true,
	"depth": true, "nodes": true, "mate": true, "movetime": true, "infinite": true,
}

func (e *Engine) goCommand(line string) {
	e.stop()

	tc := search.NewTimeControl(e.pos)
	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			tc.Infinite = true
		case "wtime":
			i++
			tc.WTime = parseMillis(args, i)
		case "winc":
			i++
			tc.WInc = parseMillis(args, i)
		case "btime":
			i++
			tc.BTime = parseMillis(args, i)
		case "binc":
			i++
			tc.BInc = parseMillis(args, i)
		case "movestogo":
			i++
			n, _ := strconv.Atoi(args[i])
			tc.MovesToGo = n
		case "depth":
			i++
			n, _ := strconv.Atoi(args[i])
			tc.Depth = n
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			tc.NodeLimit = n
		case "movetime":
			i++
			d := parseMillis(args, i)
			tc.WTime, tc.BTime = d, d
			tc.WInc, tc.BInc = 0, 0
			tc.MovesToGo = 1
		case "searchmoves":
			for i+1 < len(args) && !validGoArgs[args[i+1]] {
				i++
			}
		case "mate":
			i++ // not implemented; ignored, matching the teacher engine
		case "ponder":
			// pondering is out of scope; treat exactly like a normal go
		}
	}
	tc.Start()

	if e.pos.IsCheckmate() || e.pos.IsStalemate() {
		fmt.Println("bestmove (none)")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.tc = tc
	running := make(chan struct{})
	e.running = running

	var book BookProbe
	if e.Options.OwnBook {
		book = e.bookProbe
	}

	coord := search.NewCoordinator(e.table, eval.Material, e.log, e.Options.Threads)
	coord.BookProbe = book

	go func() {
		defer close(running)
		pv := coord.Play(ctx, e.pos, tc)
		e.lastPV = pv
		if len(pv) == 0 {
			fmt.Println("bestmove (none)")
			return
		}
		if len(pv) >= 2 {
			fmt.Printf("bestmove %v ponder %v\n", pv[0], pv[1])
		} else {
			fmt.Printf("bestmove %v\n", pv[0])
		}
	}()
}

func parseMillis(args []string, i int) time.Duration {
	if i >= len(args) {
		return 0
	}
	n, _ := strconv.Atoi(args[i])
	return time.Duration(n) * time.Millisecond
}

// stop cancels any in-flight search and waits for its bestmove to be
// printed, so a following `position`/`go` never races the prior search.
func (e *Engine) stop() {
	if e.tc != nil {
		e.tc.Stop()
	}
	if e.cancel != nil {
		e.cancel()
	}
	if e.running != nil {
		<-e.running
		e.running = nil
	}
	e.tc = nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (e *Engine) setOption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("invalid setoption arguments")
	}
	name, hasValue, value := m[1], m[2] != "", m[3]

	if name == "Clear Hash" {
		e.table.Clear()
		return nil
	}
	if !hasValue {
		return fmt.Errorf("missing setoption value for %q", name)
	}

	switch name {
	case "Hash":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		n = clamp(n, minHashMB, maxHashMB)
		e.Options.HashMB = n
		e.table = search.NewTable(n)
		e.log = newProtocolLogger(e.table)
		return nil
	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		limit := maxThreads
		if runtime.NumCPU() < limit {
			limit = runtime.NumCPU()
		}
		e.Options.Threads = clamp(n, minThreads, limit)
		return nil
	case "OwnBook":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		e.Options.OwnBook = b
		return nil
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		e.Options.MultiPV = clamp(n, minMultiPV, maxMultiPV)
		return nil
	case "Ponder":
		_, err := strconv.ParseBool(value)
		return err // accepted, no-op
	default:
		return fmt.Errorf("unhandled option %q", name)
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
