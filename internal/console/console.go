// Package console implements the session's scrolling message panel.
package console

import (
	"sync"
	"time"
)

// Level classifies a console line.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DefaultMaxLines is the panel history kept when no limit is configured.
const DefaultMaxLines = 200

// Line is a single console message.
type Line struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"timestamp"`
}

// String renders the line the way the panel shows it.
func (l Line) String() string {
	return "> " + l.Message
}

// Console keeps a bounded, ordered history of lines and forwards each new
// line to an optional sink.
type Console struct {
	mu    sync.Mutex
	lines []Line
	max   int
	sink  LogWriter
	now   func() time.Time
}

// Option configures a Console.
type Option func(*Console)

// WithMaxLines bounds the history; n <= 0 keeps DefaultMaxLines.
func WithMaxLines(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.max = n
		}
	}
}

// WithSink forwards every logged line to w.
func WithSink(w LogWriter) Option {
	return func(c *Console) {
		c.sink = normalizeLogWriter(w)
	}
}

// WithClock sets the time source for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an empty console.
func New(opts ...Option) *Console {
	c := &Console{
		max:  DefaultMaxLines,
		sink: NullLogWriter{},
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Log appends a line. Sink errors are returned but the line is kept.
func (c *Console) Log(level Level, message string) error {
	c.mu.Lock()
	line := Line{Level: level, Message: message, Time: c.now()}
	c.lines = append(c.lines, line)
	if over := len(c.lines) - c.max; over > 0 {
		c.lines = append(c.lines[:0:0], c.lines[over:]...)
	}
	sink := c.sink
	c.mu.Unlock()

	return sink.Write(line)
}

// Info logs an informational line.
func (c *Console) Info(message string) {
	_ = c.Log(LevelInfo, message)
}

// Success logs a success line.
func (c *Console) Success(message string) {
	_ = c.Log(LevelSuccess, message)
}

// Error logs an error line.
func (c *Console) Error(message string) {
	_ = c.Log(LevelError, message)
}

// Clear empties the panel. Lines already sent to the sink are unaffected.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the history, oldest first.
func (c *Console) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines in the panel.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
