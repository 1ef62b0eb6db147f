// Package logging builds the logr.Logger used for diagnostics on stderr.
// Operator-facing output does not go through it.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Supported levels and formats.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelError = "error"

	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to w at the given level and format.
func New(w io.Writer, level, format string) (logr.Logger, error) {
	opts := funcr.Options{LogTimestamp: true}

	switch strings.ToLower(level) {
	case LevelDebug:
		opts.Verbosity = 1
	case LevelInfo, LevelError:
	default:
		return logr.Discard(), fmt.Errorf("unknown log level %q (want debug, info or error)", level)
	}

	var logger logr.Logger
	switch strings.ToLower(format) {
	case FormatText:
		logger = funcr.New(func(prefix, args string) {
			if prefix != "" {
				fmt.Fprintf(w, "%s: %s\n", prefix, args)
				return
			}
			fmt.Fprintln(w, args)
		}, opts)
	case FormatJSON:
		logger = funcr.NewJSON(func(obj string) {
			fmt.Fprintln(w, obj)
		}, opts)
	default:
		return logr.Discard(), fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	if strings.EqualFold(level, LevelError) {
		logger = logr.New(errorOnly{logger.GetSink()})
	}
	return logger.WithName("etlprov"), nil
}

// errorOnly drops Info records and keeps Error records.
type errorOnly struct {
	logr.LogSink
}

func (errorOnly) Enabled(int) bool { return false }

func (s errorOnly) WithValues(kv ...any) logr.LogSink {
	return errorOnly{s.LogSink.WithValues(kv...)}
}

func (s errorOnly) WithName(name string) logr.LogSink {
	return errorOnly{s.LogSink.WithName(name)}
}
