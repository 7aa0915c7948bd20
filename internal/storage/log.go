package storage

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the package logger. Logging is disabled until it is called.
func UseLogger(logger slog.Logger) {
	log = logger
}
