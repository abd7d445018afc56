// Package logging builds the logr.Logger used throughout iapssh.
//
// Logs go to standard error through zap so that standard output stays free
// for step outputs. Terminals get a coloured console encoding, CI logs a
// plain console encoding, and log collectors can ask for JSON.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configures New.
type Options struct {
	// Verbosity enables logr V-levels up to this value. 0 logs info and errors.
	Verbosity int
	Format    Format
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger and a flush function to call before exiting.
func New(opts Options) (logr.Logger, func(), error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Verbosity < 0 {
		return logr.Discard(), func() {}, fmt.Errorf("verbosity must not be negative, got %d", opts.Verbosity)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch opts.Format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encCfg)
	case FormatConsole, "":
		if isTerminal(out) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return logr.Discard(), func() {}, fmt.Errorf("unknown log format %q", opts.Format)
	}

	// zapr maps logr V(n) to zap level -n.
	level := zap.NewAtomicLevelAt(zapcore.Level(-opts.Verbosity))
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), level)
	zl := zap.New(core)

	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
