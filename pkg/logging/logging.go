package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

const levelEnvVar = "LOG_LEVEL"

// sink is the destination for the default logger. It starts as stderr and is
// extended with the working-directory file by AddFileSink.
var sink io.Writer = os.Stderr

// ParseLevel converts a level name into a slog.Level. Unknown or empty values
// fall back to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger creates a JSON logger writing to the shared sink with
// module and version attributes attached to every record. Debug level enables
// source location tracking.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})

	return slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
		slog.String("run", uuid.NewString()),
	)
}

// SetDefaultStructuredLogger installs the default logger using the LOG_LEVEL
// environment variable (info when unset).
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(levelEnvVar))
}

// SetDefaultStructuredLoggerWithLevel installs the default logger with an
// explicit level, overriding the environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(levelEnvVar)
	}
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// AddFileSink duplicates all subsequent log records into an append-only file.
// The returned function closes the file. The default logger must be
// (re)installed after this call to pick up the new sink.
func AddFileSink(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	sink = io.MultiWriter(os.Stderr, f)
	return f.Close, nil
}
