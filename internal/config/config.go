// Package config loads the engine's tunable defaults from an optional
// TOML file. Config only ever supplies defaults: UCI `setoption` always
// overrides whatever a config file set, the same precedence a real
// engine gives its CLI flags versus its live protocol options.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/zugzwang-engine/zugzwang/search"
)

// DefaultHashMB is used when neither a config file nor `setoption Hash`
// set a table size.
const DefaultHashMB = 64

// DefaultThreads is used when neither a config file nor `setoption
// Threads` set a worker count.
const DefaultThreads = 1

// Config is the optional TOML document shape:
//
//	[engine]
//	hash = 128
//	threads = 4
//	own_book = false
//
//	[tuning]
//	aspiration_window = 21
//	futility_margin = 150
//	lmr_depth_limit = 3
//	null_move_depth_limit = 1
//	checkpoint_nodes = 10000
type Config struct {
	Engine struct {
		Hash     int  `toml:"hash"`
		Threads  int  `toml:"threads"`
		OwnBook  bool `toml:"own_book"`
	} `toml:"engine"`
	Tuning struct {
		AspirationWindow   int32  `toml:"aspiration_window"`
		FutilityMargin     int32  `toml:"futility_margin"`
		LMRDepthLimit      int32  `toml:"lmr_depth_limit"`
		NullMoveDepthLimit int32  `toml:"null_move_depth_limit"`
		CheckpointNodes    uint64 `toml:"checkpoint_nodes"`
	} `toml:"tuning"`
}

// Default returns a Config with the engine's built-in defaults, as if
// no file had been loaded.
func Default() Config {
	var c Config
	c.Engine.Hash = DefaultHashMB
	c.Engine.Threads = DefaultThreads
	return c
}

// Load reads and decodes the TOML file at path on top of Default's
// values. An empty path is not an error: it simply returns the
// defaults, matching the CLI's "-config is optional" contract. A path
// naming a file that does not exist is an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplySearchTuning pushes the [tuning] section into the search
// package's tunable constants. Safe to call once at startup, before
// any search begins.
func (c Config) ApplySearchTuning() {
	search.ApplyTuning(search.Tuning{
		AspirationWindow: c.Tuning.AspirationWindow,
		FutilityMargin:   c.Tuning.FutilityMargin,
		LMRDepthLimit:    c.Tuning.LMRDepthLimit,
		NullMoveDepthLim: c.Tuning.NullMoveDepthLimit,
		CheckpointNodes:  c.Tuning.CheckpointNodes,
	})
}
