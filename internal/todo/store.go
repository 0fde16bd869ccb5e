package todo

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Store is the task list. The zero value is not usable; call New.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for Task.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the source of task IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		tasks: make([]Task, 0),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return xid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a task with the trimmed text and returns its row.
func (s *Store) Add(text string) (Entry, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Entry{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:        s.newID(),
		Text:      trimmed,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, task)
	return entryOf(len(s.tasks)-1, task), nil
}

// List returns the tasks in order. The slice is a copy.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, len(s.tasks))
	for i, task := range s.tasks {
		entries[i] = entryOf(i, task)
	}
	return entries
}

// ToggleDone flips the completion flag at index and returns the new value.
func (s *Store) ToggleDone(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex("toggle", index); err != nil {
		return false, err
	}
	s.tasks[index].Done = !s.tasks[index].Done
	return s.tasks[index].Done, nil
}

// DeleteAt removes the task at index and returns its text.
// Every later task moves down by one position.
func (s *Store) DeleteAt(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex("delete", index); err != nil {
		return "", err
	}
	text := s.tasks[index].Text
	copy(s.tasks[index:], s.tasks[index+1:])
	s.tasks[len(s.tasks)-1] = Task{}
	s.tasks = s.tasks[:len(s.tasks)-1]
	return text, nil
}

// Stats counts total, completed and pending tasks.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.tasks)}
	for _, task := range s.tasks {
		if task.Done {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// checkIndex must be called with s.mu held.
func (s *Store) checkIndex(op string, index int) error {
	if index < 0 || index >= len(s.tasks) {
		return &IndexError{Op: op, Index: index, Len: len(s.tasks)}
	}
	return nil
}

func entryOf(index int, task Task) Entry {
	return Entry{
		Index: index,
		ID:    task.ID,
		Text:  task.Text,
		Done:  task.Done,
	}
}
