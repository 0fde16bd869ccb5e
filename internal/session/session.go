// Package session drives a task list from user actions and reports every
// outcome as console lines. It has no rendering concerns; the terminal widget
// and the line-command runner both sit on top of it.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nibzard/todoapp/internal/console"
	"github.com/nibzard/todoapp/internal/todo"
)

// Mode is the input state of a session.
type Mode string

const (
	ModeNormal      Mode = "normal"
	ModeAdd         Mode = "add"
	ModeDelete      Mode = "delete"
	ModeConfirmQuit Mode = "confirm-quit"
)

const (
	msgWelcome     = "Welcome to To-Do Apps!"
	msgGetStarted  = "Click any button above to get started."
	msgTip         = "Tip: Use Ctrl+L (List), Ctrl+N (New), Ctrl+D (Delete), Ctrl+Q (Quit)"
	msgRule        = "-----------------"
	msgNoTasks     = "No tasks found!"
	msgAddMode     = "Add mode activated. Enter your task below."
	msgEmptyTask   = "Please enter a task!"
	msgAdded       = "Task added successfully!"
	msgNothingToRm = "No tasks to delete!"
	msgDeleteMode  = "Delete mode activated. Enter task index to delete."
	msgBadIndex    = "Invalid task index!"
	msgDeleted     = "Task deleted successfully!"
	msgNoMore      = "No more tasks to delete."
	msgClosing     = "Closing app..."
	msgClosed      = "App closed successfully!"
	msgWelcomeBack = "Welcome back!"
	msgCleared     = "Console cleared."
)

var (
	// ErrUnknownCommand is returned by Exec for an unrecognised command word.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidIndex is returned when index input is not an integer.
	ErrInvalidIndex = errors.New("invalid task index")

	// ErrNoTasks is returned by BeginDelete on an empty list.
	ErrNoTasks = errors.New("no tasks to delete")

	// ErrClosed is returned by every action after the session has quit.
	ErrClosed = errors.New("session closed")
)

// Session couples one store with one console.
type Session struct {
	store   *todo.Store
	console *console.Console

	confirmQuit bool
	showTips    bool

	mu     sync.Mutex
	mode   Mode
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithConfirmQuit controls whether RequestQuit waits for ConfirmQuit.
func WithConfirmQuit(confirm bool) Option {
	return func(s *Session) {
		s.confirmQuit = confirm
	}
}

// WithTips controls whether Start logs the keyboard shortcut tip.
func WithTips(show bool) Option {
	return func(s *Session) {
		s.showTips = show
	}
}

// New returns a session over store and cons. Nil arguments get fresh values.
func New(store *todo.Store, cons *console.Console, opts ...Option) *Session {
	if store == nil {
		store = todo.New()
	}
	if cons == nil {
		cons = console.New()
	}
	s := &Session{
		store:       store,
		console:     cons,
		confirmQuit: true,
		mode:        ModeNormal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying task list.
func (s *Session) Store() *todo.Store { return s.store }

// Console returns the message panel.
func (s *Session) Console() *console.Console { return s.console }

// Mode returns the current input state.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Closed reports whether the session has quit.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Start logs the greeting.
func (s *Session) Start() {
	s.console.Success(msgWelcome)
	s.console.Info(msgGetStarted)
	if s.showTips {
		s.console.Info(msgTip)
	}
}

// List prints every task between two rules.
func (s *Session) List() error {
	if err := s.enter(ModeNormal); err != nil {
		return err
	}
	s.console.Info(msgRule)
	entries := s.store.List()
	if len(entries) == 0 {
		s.console.Error(msgNoTasks)
	}
	for _, e := range entries {
		s.console.Success(fmt.Sprintf("%d: %s %s", e.Index, e.StatusMark(), e.Text))
	}
	s.console.Info(msgRule)
	return nil
}

// BeginAdd switches to add mode.
func (s *Session) BeginAdd() error {
	if err := s.enter(ModeAdd); err != nil {
		return err
	}
	s.console.Info(msgAddMode)
	return nil
}

// SubmitTask adds input as a new task.
func (s *Session) SubmitTask(input string) error {
	if s.Closed() {
		return ErrClosed
	}
	entry, err := s.store.Add(input)
	if err != nil {
		s.console.Error(msgEmptyTask)
		return err
	}
	s.console.Success(msgAdded)
	s.console.Info(`Added: "` + entry.Text + `"`)
	return nil
}

// BeginDelete switches to delete mode, or reports that there is nothing
// to delete.
func (s *Session) BeginDelete() error {
	if err := s.enter(ModeNormal); err != nil {
		return err
	}
	n := s.store.Len()
	if n == 0 {
		s.console.Error(msgNothingToRm)
		return ErrNoTasks
	}
	s.setMode(ModeDelete)
	s.console.Info(msgDeleteMode)
	s.console.Info(availableIndices(n))
	return nil
}

// SubmitDelete removes the task whose index is typed in input.
func (s *Session) SubmitDelete(input string) error {
	if s.Closed() {
		return ErrClosed
	}
	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		s.reportBadIndex()
		return fmt.Errorf("%w: %q", ErrInvalidIndex, input)
	}
	text, err := s.store.DeleteAt(index)
	if err != nil {
		s.reportBadIndex()
		return err
	}
	s.console.Success(msgDeleted)
	s.console.Info(`Deleted: "` + text + `"`)

	if n := s.store.Len(); n == 0 {
		s.setMode(ModeNormal)
		s.console.Info(msgNoMore)
	} else {
		s.console.Info(availableIndices(n))
	}
	return nil
}

// ToggleDone flips the task at index.
func (s *Session) ToggleDone(index int) error {
	if s.Closed() {
		return ErrClosed
	}
	done, err := s.store.ToggleDone(index)
	if err != nil {
		s.console.Error(msgBadIndex)
		return err
	}
	state := "pending"
	if done {
		state = "done"
	}
	s.console.Info(fmt.Sprintf("Task %d marked as %s", index, state))
	return nil
}

// DeleteTaskByIndex removes the task at index without entering delete mode.
func (s *Session) DeleteTaskByIndex(index int) error {
	if s.Closed() {
		return ErrClosed
	}
	text, err := s.store.DeleteAt(index)
	if err != nil {
		s.console.Error(msgBadIndex)
		return err
	}
	s.console.Success(`Task deleted: "` + text + `"`)
	return nil
}

// RequestQuit starts closing. Without quit confirmation the session closes
// immediately.
func (s *Session) RequestQuit() error {
	if err := s.enter(ModeConfirmQuit); err != nil {
		return err
	}
	s.console.Error(msgClosing)
	if !s.confirmQuit {
		return s.ConfirmQuit(true)
	}
	return nil
}

// ConfirmQuit answers a pending quit request.
func (s *Session) ConfirmQuit(yes bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mode = ModeNormal
	s.closed = yes
	s.mu.Unlock()

	if yes {
		s.console.Success(msgClosed)
	} else {
		s.console.Success(msgWelcomeBack)
	}
	return nil
}

// Cancel leaves add or delete mode without logging.
func (s *Session) Cancel() {
	s.setMode(ModeNormal)
}

// ClearConsole empties the panel and notes that it did.
func (s *Session) ClearConsole() {
	s.console.Clear()
	s.console.Info(msgCleared)
}

func (s *Session) enter(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.mode = mode
	return nil
}

func (s *Session) setMode(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

func (s *Session) reportBadIndex() {
	s.console.Error(msgBadIndex)
	s.console.Error(fmt.Sprintf("Please enter a number between 0 and %d", s.store.Len()-1))
}

func availableIndices(n int) string {
	return fmt.Sprintf("Available indices: 0 to %d", n-1)
}
