package session

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// CommandHelp lists the commands Exec understands.
var CommandHelp = []string{
	"list | ls            show all tasks",
	"add <text>           add a task",
	"done | toggle <i>    flip the task at index i",
	"rm | delete <i>      delete the task at index i",
	"stats                show totals",
	"clear                clear the console",
	"help                 show this help",
	"quit | exit          close the app",
}

// Exec runs one line command. Blank lines and lines starting with '#' are
// ignored. Failures are logged to the console and returned.
func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if s.Closed() {
		return ErrClosed
	}

	name, arg := splitCommand(line)
	switch strings.ToLower(name) {
	case "list", "ls":
		return s.List()
	case "add":
		return s.SubmitTask(arg)
	case "done", "toggle":
		index, err := s.parseIndex(arg)
		if err != nil {
			return err
		}
		return s.ToggleDone(index)
	case "rm", "delete":
		if s.store.Len() == 0 {
			s.console.Error(msgNothingToRm)
			return ErrNoTasks
		}
		return s.SubmitDelete(arg)
	case "stats":
		st := s.store.Stats()
		s.console.Info(fmt.Sprintf("Total: %d | Completed: %d | Pending: %d", st.Total, st.Completed, st.Pending))
		return nil
	case "clear":
		s.ClearConsole()
		return nil
	case "help":
		for _, h := range CommandHelp {
			s.console.Info(h)
		}
		return nil
	case "quit", "exit":
		if err := s.RequestQuit(); err != nil {
			return err
		}
		if s.Closed() {
			return nil
		}
		return s.ConfirmQuit(true)
	default:
		s.console.Error(fmt.Sprintf("Unknown command: %s (try help)", name))
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

func (s *Session) parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		s.console.Error(msgBadIndex)
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, arg)
	}
	return index, nil
}

// splitCommand separates the first word from the rest of the line.
// Inner spacing of the rest is kept.
func splitCommand(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
