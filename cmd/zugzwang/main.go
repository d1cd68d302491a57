// Command zugzwang is a UCI chess engine. It reads commands from stdin
// and writes UCI protocol responses to stdout until `quit`.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/op/go-logging"

	"github.com/zugzwang-engine/zugzwang/internal/config"
	"github.com/zugzwang-engine/zugzwang/internal/xlog"
	"github.com/zugzwang-engine/zugzwang/uci"
)

var (
	configPath = flag.String("config", "", "optional TOML file seeding engine defaults")
	verbose    = flag.Bool("verbose", false, "log engine diagnostics at DEBUG level instead of WARNING")
	version    = flag.Bool("version", false, "print version and exit")
)

const buildVersion = "0.1.0"

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("zugzwang %s, %s, %d logical CPUs\n", buildVersion, runtime.Version(), runtime.NumCPU())
		return
	}

	level := logging.WARNING
	if *verbose {
		level = logging.DEBUG
	}
	xlog.Init(os.Stderr, level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		xlog.Errorf("loading config %q: %v", *configPath, err)
		cfg = config.Default()
	}
	cfg.ApplySearchTuning()

	opts := uci.DefaultOptions()
	opts.HashMB = cfg.Engine.Hash
	opts.Threads = cfg.Engine.Threads
	opts.OwnBook = cfg.Engine.OwnBook

	engine := uci.New(opts, nil)
	front := uci.NewUCI(engine)

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for in.Scan() {
		if err := front.Execute(in.Text()); err != nil {
			if err == uci.ErrQuit {
				break
			}
			xlog.Warningf("%v", err)
		}
	}
}
