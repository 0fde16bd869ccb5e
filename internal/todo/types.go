package todo

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyInput is returned by Add when the trimmed text is empty.
	ErrEmptyInput = errors.New("task text is empty")

	// ErrIndexOutOfRange is returned when an index falls outside [0, Len).
	ErrIndexOutOfRange = errors.New("task index out of range")
)

// Task is a single entry in the list.
type Task struct {
	ID        string
	Text      string
	Done      bool
	CreatedAt time.Time
}

// Entry is one row of a List snapshot.
type Entry struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// StatusMark returns "[x]" for completed entries and "[ ]" otherwise.
func (e Entry) StatusMark() string {
	if e.Done {
		return "[x]"
	}
	return "[ ]"
}

// Stats summarises the list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// IndexError reports an index that does not address a task.
type IndexError struct {
	Op    string // operation that rejected the index
	Index int
	Len   int // list length at the time of the call
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("%s: index %d: list is empty", e.Op, e.Index)
	}
	return fmt.Sprintf("%s: index %d: must be between 0 and %d", e.Op, e.Index, e.Len-1)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
