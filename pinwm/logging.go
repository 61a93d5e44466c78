package main

import (
	"fmt"
	"io"
	"os"

	"pkt.systems/pslog"
)

// logSink is where the window manager logs: a file, in structured form, or
// stderr, for a human.
type logSink struct {
	w          io.Writer
	structured bool
	close      func() error
}

func openLogSink(file string) (*logSink, error) {
	if file == "" {
		return &logSink{w: os.Stderr, close: func() error { return nil }}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &logSink{w: f, structured: true, close: f.Close}, nil
}

// logger returns a logger writing to s that drops records below level.
func (s *logSink) logger(level string) pslog.Logger {
	opts := pslog.Options{Mode: pslog.ModeConsole}
	if s.structured {
		opts.Mode = pslog.ModeStructured
		opts.NoColor = true
	}
	switch level {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		opts.MinLevel = pslog.InfoLevel
	}
	return pslog.NewWithOptions(s.w, opts)
}
