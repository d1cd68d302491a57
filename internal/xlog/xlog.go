// Package xlog configures engine-internal diagnostic logging, kept
// strictly off the UCI stdout channel so log noise never corrupts the
// protocol stream the GUI reads.
package xlog

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("zugzwang")

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{shortfunc} > %{message}`,
)

func init() {
	Init(os.Stderr, logging.WARNING)
}

// Init points engine diagnostics at w, leveled at or above level.
// Called once at process start (cmd/zugzwang); tests leave
// the default stderr/WARNING backend untouched.
func Init(w io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// Debugf logs at DEBUG level.
func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }

// Infof logs at INFO level.
func Infof(format string, args ...interface{}) { log.Infof(format, args...) }

// Warningf logs at WARNING level.
func Warningf(format string, args ...interface{}) { log.Warningf(format, args...) }

// Errorf logs at ERROR level.
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }
