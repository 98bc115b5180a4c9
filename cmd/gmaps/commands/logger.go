package commands

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/lmittmann/tint"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// slogLogger adapts a slog.Logger to gmaps.Logger.
type slogLogger struct {
	logger *slog.Logger
}

// newLogger writes colored logs to w. Verbose lowers the level to debug; otherwise
// only warnings and errors are shown.
func newLogger(w io.Writer, verbose, noColor bool) *slogLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	})

	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, attrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, attrs(fields)...)
}

// attrs flattens fields into key/value pairs in key order.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}

var _ gmaps.Logger = (*slogLogger)(nil)
