package uci

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
	"github.com/zugzwang-engine/zugzwang/search"
)

// numberPrinter groups node/nps counts with thousands separators, the
// way a production CLI report would rather than a bare Fprintf.
var numberPrinter = message.NewPrinter(language.English)

// protocolLogger renders search progress as UCI `info` lines. It is
// distinct from internal/xlog: this writer talks the UCI wire protocol
// on stdout, xlog is for engine-internal diagnostics on stderr.
type protocolLogger struct {
	start time.Time
	buf   *bytes.Buffer
	table *search.Table
}

func newProtocolLogger(table *search.Table) *protocolLogger {
	return &protocolLogger{buf: &bytes.Buffer{}, table: table}
}

func (l *protocolLogger) BeginSearch() {
	l.start = time.Now()
	l.buf.Reset()
}

func (l *protocolLogger) EndSearch() {
	l.flush()
}

func (l *protocolLogger) PrintPV(stats search.Stats, score int32, pv []board.Move) {
	now := time.Now()
	fmt.Fprintf(l.buf, "info depth %d seldepth %d ", stats.Depth, stats.SelDepth)

	switch {
	case score > eval.KnownWinScore:
		fmt.Fprintf(l.buf, "score mate %d ", (eval.MateScore-score+1)/2)
	case score < eval.KnownLossScore:
		fmt.Fprintf(l.buf, "score mate %d ", (eval.MatedScore-score)/2)
	default:
		fmt.Fprintf(l.buf, "score cp %d ", score)
	}

	elapsed := now.Sub(l.start)
	if elapsed < time.Microsecond {
		elapsed = time.Microsecond
	}
	millis := uint64(elapsed / time.Millisecond)
	nps := stats.Nodes * uint64(time.Second) / uint64(elapsed)

	numberPrinter.Fprintf(l.buf, "nodes %d nps %d ", stats.Nodes, nps)
	fmt.Fprintf(l.buf, "time %d hashfull %d ", millis, l.table.HashFull())

	fmt.Fprint(l.buf, "pv")
	for _, m := range pv {
		fmt.Fprintf(l.buf, " %v", m)
	}
	fmt.Fprintln(l.buf)

	l.flush()
}

func (l *protocolLogger) flush() {
	os.Stdout.Write(l.buf.Bytes())
	l.buf.Reset()
}
