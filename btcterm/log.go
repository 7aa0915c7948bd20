package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"rhystmorgan/btcterm/internal/payto"
	"rhystmorgan/btcterm/internal/storage"
	"rhystmorgan/btcterm/internal/views"
)

const logFilename = "btcterm.log"

// logWriter writes to the log rotator only. The terminal belongs to the UI.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	if logRotator == nil {
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem. A single backend logger is created and all
// subsystem loggers created from it write to the backend.
var (
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is nil until initLogRotator is called, and log output is
	// discarded until then.
	logRotator *rotator.Rotator

	log     = backendLog.Logger("BTRM")
	pytoLog = backendLog.Logger("PYTO")
	storLog = backendLog.Logger("STOR")
	viewLog = backendLog.Logger("VIEW")
)

func init() {
	payto.UseLogger(pytoLog)
	storage.UseLogger(storLog)
	views.UseLogger(viewLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]slog.Logger{
	"BTRM": log,
	"PYTO": pytoLog,
	"STOR": storLog,
	"VIEW": viewLog,
}

// initLogRotator initializes the log rotator to write to logDir and create
// roll files in the same directory.
func initLogRotator(logDir string) error {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	r, err := rotator.New(filepath.Join(logDir, logFilename), 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r
	return nil
}

func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// setLogLevels sets the level of every subsystem logger. The level has
// already been validated by the config.
func setLogLevels(logLevel string) {
	level, ok := slog.LevelFromString(logLevel)
	if !ok {
		level = slog.LevelInfo
	}

	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
