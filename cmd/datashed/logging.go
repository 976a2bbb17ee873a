package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

var logger *slog.Logger

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// initLogging sets up structured JSON logging on stderr. Every record from
// one invocation carries the same run id, so interleaved output from
// concurrent invocations stays attributable.
func initLogging(logLevel string) error {
	level, ok := logLevelMap[strings.ToLower(logLevel)]
	if !ok {
		level = slog.LevelWarn
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler).With("run_id", uuid.New().String())
	slog.SetDefault(logger)
	return nil
}
