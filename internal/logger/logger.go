package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	base     zerolog.Logger
	fileSink *lumberjack.Logger
)

// Init configures the global JSON logger.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
//   - LOG_FILE: path of a rotating JSON log file written in addition to stdout
//   - LOG_FILE_MAX_MB / LOG_FILE_MAX_AGE_DAYS: rotation bounds (default: 100 MB, 28 days)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if pretty {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		w = cw
	}

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
	if path := getenv("LOG_FILE", ""); path != "" {
		fileSink = &lumberjack.Logger{
			Filename: path,
			MaxSize:  getenvInt("LOG_FILE_MAX_MB", 100),
			MaxAge:   getenvInt("LOG_FILE_MAX_AGE_DAYS", 28),
			Compress: true,
		}
		// the file always gets JSON, even when stdout is pretty
		w = zerolog.MultiLevelWriter(w, fileSink)
	}

	l := zerolog.New(w).With().Timestamp().Logger().Level(level)
	base = l
}

// Close flushes and releases the log file, if any.
func Close() error {
	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink = nil
	return err
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if base.GetLevel() == zerolog.NoLevel {
		Init()
	}
	return &base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if n, err := strconv.Atoi(getenv(key, "")); err == nil && n > 0 {
		return n
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
