package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logLevelEnv overrides the starting log level (debug, info, warn, error).
// --verbose still raises it to debug.
const logLevelEnv = "HEATMAP_LOG_LEVEL"

// newLogger writes "HH:MM:SS.ms" timestamped records to w at the given level,
// or at the level named by HEATMAP_LOG_LEVEL when that is set and valid.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           envLevel(level),
	})
}

func envLevel(fallback log.Level) log.Level {
	v := os.Getenv(logLevelEnv)
	if v == "" {
		return fallback
	}
	level, err := log.ParseLevel(v)
	if err != nil {
		return fallback
	}
	return level
}

// progress logs how long a command took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key/value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
