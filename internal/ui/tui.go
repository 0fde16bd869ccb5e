// Package ui provides the terminal to-do widget.
package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoapp/internal/config"
	"github.com/nibzard/todoapp/internal/session"
	"github.com/nibzard/todoapp/internal/utils"
)

const (
	defaultWidth         = 80
	defaultConsoleHeight = 8
	defaultCloseDelay    = 800 * time.Millisecond
)

// TUIOption configures the widget.
type TUIOption func(*Model)

// WithKeys sets the key bindings.
func WithKeys(keys config.KeyMap) TUIOption {
	return func(m *Model) {
		m.keys = newKeyMap(keys)
	}
}

// WithCloseDelay sets how long the closing message stays on screen.
func WithCloseDelay(d time.Duration) TUIOption {
	return func(m *Model) {
		if d >= 0 {
			m.closeDelay = d
		}
	}
}

// RunTUI runs the widget on the terminal until the session closes or ctx is
// cancelled.
func RunTUI(ctx context.Context, sess *session.Session, opts ...TUIOption) error {
	if !utils.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(sess, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model of the widget. All task state lives in the
// session; the model only tracks the cursor and panel layout.
type Model struct {
	sess       *session.Session
	keys       keyMap
	help       help.Model
	input      textinput.Model
	console    viewport.Model
	cursor     int
	width      int
	showHelp   bool
	closeDelay time.Duration
	seenLines  []string
}

// NewModel builds the widget for sess.
func NewModel(sess *session.Session, opts ...TUIOption) *Model {
	input := textinput.New()
	input.Prompt = "> "

	m := &Model{
		sess:       sess,
		keys:       newKeyMap(config.DefaultKeys()),
		help:       help.New(),
		input:      input,
		console:    viewport.New(defaultWidth, defaultConsoleHeight),
		width:      defaultWidth,
		closeDelay: defaultCloseDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.syncConsole()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	m.clampCursor()
	m.syncConsole()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.sess.Closed() {
		return tea.Quit
	}

	mode := m.sess.Mode()
	if mode == session.ModeConfirmQuit {
		switch msg.String() {
		case "y", "Y":
			_ = m.sess.ConfirmQuit(true)
			return m.quit()
		case "n", "N", "esc":
			_ = m.sess.ConfirmQuit(false)
		}
		return nil
	}

	typing := mode == session.ModeAdd || mode == session.ModeDelete
	if typing {
		// Printable keys belong to the input line.
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			if key.Matches(msg, m.keys.global()...) {
				return m.runAction(msg)
			}
		}
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.submit(mode)
			return nil
		case key.Matches(msg, m.keys.Cancel):
			m.sess.Cancel()
			m.closeInput()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	return m.runAction(msg)
}

func (m *Model) runAction(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.closeInput()
		_ = m.sess.RequestQuit()
		if m.sess.Closed() {
			return m.quit()
		}
	case key.Matches(msg, m.keys.List):
		m.closeInput()
		_ = m.sess.List()
	case key.Matches(msg, m.keys.Add):
		if m.sess.BeginAdd() == nil {
			return m.openInput("What needs to be done?")
		}
	case key.Matches(msg, m.keys.Delete):
		m.closeInput()
		if m.sess.BeginDelete() == nil {
			return m.openInput(fmt.Sprintf("index 0-%d", m.sess.Store().Len()-1))
		}
	case key.Matches(msg, m.keys.Clear):
		m.sess.ClearConsole()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Toggle):
		if m.sess.Store().Len() > 0 {
			_ = m.sess.ToggleDone(m.cursor)
		}
	case key.Matches(msg, m.keys.Remove):
		if m.sess.Store().Len() > 0 {
			_ = m.sess.DeleteTaskByIndex(m.cursor)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *Model) submit(mode session.Mode) {
	var err error
	switch mode {
	case session.ModeAdd:
		if err = m.sess.SubmitTask(m.input.Value()); err == nil {
			m.cursor = m.sess.Store().Len() - 1
		}
	case session.ModeDelete:
		err = m.sess.SubmitDelete(m.input.Value())
	}
	if err != nil {
		return
	}
	m.input.Reset()
	if m.sess.Mode() == session.ModeNormal {
		m.input.Blur()
	}
}

func (m *Model) openInput(placeholder string) tea.Cmd {
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) quit() tea.Cmd {
	if m.closeDelay <= 0 {
		return tea.Quit
	}
	return tea.Tick(m.closeDelay, func(time.Time) tea.Msg {
		return tea.QuitMsg{}
	})
}

func (m *Model) resize(width, height int) {
	if width > 0 {
		m.width = width
		m.console.Width = width - 2
		m.input.Width = width - 6
		m.help.Width = width
	}
	if height > 0 {
		consoleHeight := height / 3
		if consoleHeight < 3 {
			consoleHeight = 3
		}
		m.console.Height = consoleHeight
	}
}

func (m *Model) clampCursor() {
	n := m.sess.Store().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// syncConsole re-renders the console panel when its lines changed and keeps
// it scrolled to the newest line.
func (m *Model) syncConsole() {
	lines := m.sess.Console().Lines()
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = renderConsoleLine(line)
	}
	if equalLines(rendered, m.seenLines) {
		return
	}
	m.seenLines = rendered
	m.console.SetContent(joinLines(rendered))
	m.console.GotoBottom()
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
