package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// LogWriter receives every console line.
type LogWriter interface {
	Write(line Line) error
}

// IOStreamLogWriter writes lines as JSONL to an io.Writer.
type IOStreamLogWriter struct {
	w       io.Writer
	session string
}

// NewIOStreamLogWriter creates a JSONL writer. A non-empty session id is
// added to every record.
func NewIOStreamLogWriter(w io.Writer, session string) *IOStreamLogWriter {
	return &IOStreamLogWriter{w: w, session: session}
}

type record struct {
	Line
	Session string `json:"session,omitempty"`
}

// Write writes a line as one JSON object followed by a newline.
func (l *IOStreamLogWriter) Write(line Line) error {
	data, err := json.Marshal(record{Line: line, Session: l.session})
	if err != nil {
		return fmt.Errorf("marshal console line: %w", err)
	}
	data = append(data, '\n')
	_, err = l.w.Write(data)
	return err
}

// TextLogWriter writes lines as they appear in the panel ("> message").
// Error lines go to errW when it is set.
type TextLogWriter struct {
	w    io.Writer
	errW io.Writer
}

// NewTextLogWriter creates a plain text writer.
func NewTextLogWriter(w, errW io.Writer) *TextLogWriter {
	return &TextLogWriter{w: w, errW: errW}
}

// Write prints the rendered line.
func (t *TextLogWriter) Write(line Line) error {
	w := t.w
	if line.Level == LevelError && t.errW != nil {
		w = t.errW
	}
	_, err := fmt.Fprintln(w, line.String())
	return err
}

// MultiLogWriter writes to multiple log writers.
type MultiLogWriter struct {
	writers []LogWriter
}

// NewMultiLogWriter creates a new multi-log writer. Nil writers are skipped.
func NewMultiLogWriter(writers ...LogWriter) *MultiLogWriter {
	m := &MultiLogWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// Write writes the line to all underlying writers.
func (m *MultiLogWriter) Write(line Line) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NullLogWriter is a no-op log writer.
type NullLogWriter struct{}

// Write does nothing.
func (NullLogWriter) Write(Line) error {
	return nil
}

type lockedLogWriter struct {
	mu     sync.Mutex
	writer LogWriter
}

func (l *lockedLogWriter) Write(line Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Write(line)
}

func normalizeLogWriter(writer LogWriter) LogWriter {
	if writer == nil {
		return NullLogWriter{}
	}
	return &lockedLogWriter{writer: writer}
}
