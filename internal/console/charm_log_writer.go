package console

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoapp/internal/utils"
)

// CharmLogOptions holds configuration for leveled terminal output.
type CharmLogOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultCharmLogOptions returns default options for leveled output.
func DefaultCharmLogOptions() CharmLogOptions {
	return CharmLogOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "todoapp",
	}
}

// CharmLogWriter implements LogWriter using charmbracelet/log for
// colorful, leveled, human-readable output.
type CharmLogWriter struct {
	logger *log.Logger
}

// NewCharmLogWriter creates a writer that logs to w.
func NewCharmLogWriter(w io.Writer, opts CharmLogOptions) *CharmLogWriter {
	return &CharmLogWriter{logger: NewLogger(w, opts)}
}

// NewCharmLogWriterWithLogger wraps an existing logger.
func NewCharmLogWriterWithLogger(logger *log.Logger) *CharmLogWriter {
	return &CharmLogWriter{logger: logger}
}

// NewLogger builds a charmbracelet logger from options. The CLI uses it for
// diagnostics that are not part of a session's console.
func NewLogger(w io.Writer, opts CharmLogOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// Write logs the line at a level matching its console level.
func (c *CharmLogWriter) Write(line Line) error {
	switch line.Level {
	case LevelError:
		c.logger.Error(line.Message)
	case LevelSuccess:
		c.logger.Info(line.Message, "status", "ok")
	default:
		c.logger.Info(line.Message)
	}
	return nil
}

// ParseLogLevel parses a string log level to a charmbracelet/log Level.
func ParseLogLevel(level string) log.Level {
	switch utils.NormalizeName(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseLogFormatter(format string) log.Formatter {
	switch utils.NormalizeName(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// CharmLogOptionsFromConfig builds options from string configuration values.
func CharmLogOptionsFromConfig(level, format string, timestamps, caller bool, prefix string) CharmLogOptions {
	return CharmLogOptions{
		Level:           ParseLogLevel(level),
		Formatter:       ParseLogFormatter(format),
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		Prefix:          prefix,
	}
}
