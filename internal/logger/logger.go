// File: internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type Options struct {
	// One of debug, info, warn, error
	Level string
	// One of auto, text, json. auto picks a colored handler on a terminal and text otherwise
	Format string
	Output io.Writer
	// When set, the handler reads its level from here so it can be raised after construction
	LevelVar *slog.LevelVar
}

// NewLogger builds the process-wide logger and installs it as the slog default
func NewLogger(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var leveler slog.Leveler = level
	if opts.LevelVar != nil {
		opts.LevelVar.Set(level)
		leveler = opts.LevelVar
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "auto":
		if isTerminal(out) {
			handler = tint.NewHandler(out, &tint.Options{Level: leveler, TimeFormat: time.Kitchen})
		} else {
			handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: leveler})
		}
	case "text":
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: leveler})
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: leveler})
	default:
		return nil, fmt.Errorf("unknown log format: %s", opts.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
