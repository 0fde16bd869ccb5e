package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/todoapp/internal/config"
	"github.com/nibzard/todoapp/internal/console"
	"github.com/nibzard/todoapp/internal/logging"
	"github.com/nibzard/todoapp/internal/session"
	"github.com/nibzard/todoapp/internal/todo"
	"github.com/nibzard/todoapp/internal/ui"
)

func schemaText() string {
	return todo.SchemaJSON()
}

func commandHelp() []string {
	return session.CommandHelp
}

// tuiCommand runs the terminal widget.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoapp tui", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	sess, closeFn, err := c.newSession(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	sess.Start()
	if err := ui.RunTUI(ctx, sess, ui.WithKeys(c.cfg.Keys)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// replCommand reads line commands until quit, EOF or cancellation.
func (c *cli) replCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoapp repl", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	sess, closeFn, err := c.newSession(console.NewTextLogWriter(c.std.out, c.std.err))
	if err != nil {
		return err
	}
	defer closeFn()

	sess.Start()
	interactive := isTerminal(c.std.in)
	prompt := func() {
		if interactive {
			fmt.Fprint(c.std.out, "todo> ")
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, c.std.in)
	prompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			if l.err != nil {
				return fmt.Errorf("reading input: %w", l.err)
			}
			_ = sess.Exec(l.text)
			if sess.Closed() {
				return nil
			}
			prompt()
		}
	}
}

// runCommand executes script files of line commands in one session.
func (c *cli) runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoapp run", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	asJSON := fs.Bool("json", false, "Print the final task list as JSON")
	strict := fs.Bool("strict", false, "Stop at the first failing line")

	scripts, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return fmt.Errorf("run: at least one script is required")
	}

	// With --json stdout carries only the snapshot.
	var echo console.LogWriter = console.NewTextLogWriter(c.std.out, c.std.err)
	if *asJSON {
		echo = console.NewCharmLogWriterWithLogger(c.logger)
	}
	sess, closeFn, err := c.newSession(echo)
	if err != nil {
		return err
	}
	defer closeFn()

	failures := 0
	for _, script := range scripts {
		n, err := c.runScript(ctx, sess, script, *strict)
		failures += n
		if err != nil {
			return err
		}
		if sess.Closed() {
			break
		}
	}
	if failures > 0 {
		c.logger.Warn("script finished with failures", "failed", failures)
	}

	if *asJSON {
		return sess.Store().Snapshot().Write(c.std.out)
	}
	return nil
}

// runScript executes one script and returns the number of failing lines.
func (c *cli) runScript(ctx context.Context, sess *session.Session, path string, strict bool) (int, error) {
	var r io.Reader
	name := path
	if path == "-" {
		r = c.std.in
		name = "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		r = f
	}

	failures := 0
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return failures, err
		}
		err := sess.Exec(scanner.Text())
		if errors.Is(err, session.ErrClosed) {
			return failures, nil
		}
		if err != nil {
			failures++
			c.logger.Debug("line failed", "script", name, "line", lineNo, "err", err)
			if strict {
				return failures, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
		}
		if sess.Closed() {
			return failures, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return failures, fmt.Errorf("reading %s: %w", name, err)
	}
	return failures, nil
}

// checkCommand validates a seed file without starting a session.
func (c *cli) checkCommand(args []string) error {
	fs := flag.NewFlagSet("todoapp check", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := c.cfg.SeedFile
	switch fs.NArg() {
	case 0:
	case 1:
		path = fs.Arg(0)
	default:
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if path == "" {
		return fmt.Errorf("check: no seed file given and seed_file is not set")
	}

	seed, err := todo.LoadSeed(path)
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}
	result := seed.Validate(todo.ValidationOptions{SchemaPath: c.cfg.SeedSchema})
	for _, warning := range result.Warnings {
		fmt.Fprintf(c.std.err, "warning: %s\n", warning)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(c.std.out, "%s: %v\n", path, e)
		}
		return fmt.Errorf("%s: %d validation error(s)", path, len(result.Errors))
	}
	_, err = fmt.Fprintf(c.std.out, "%s: ok (%d tasks)\n", path, len(seed.Tasks))
	return err
}

// configCommand prints the effective configuration.
func (c *cli) configCommand(args []string) error {
	fs := flag.NewFlagSet("todoapp config", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		_, err := fmt.Fprint(c.std.out, config.ExampleConfig())
		return err
	}

	file := c.sources.GetConfigFile()
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintf(c.std.out, "Config file: %s\n\n", file)
	return c.sources.Print(c.std.out)
}

// tailCommand prints the latest transcript.
func (c *cli) tailCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoapp tail", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	follow := fs.Bool("f", false, "Follow the transcript (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the transcript (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.std.out, "No transcripts found.")
		return nil
	}

	fmt.Fprintf(c.std.err, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.std.err, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, c.std.out, logPath, *n, *follow)
}

// lsCommand lists transcripts of the current project, newest first.
func (c *cli) lsCommand(args []string) error {
	fs := flag.NewFlagSet("todoapp ls", flag.ContinueOnError)
	fs.SetOutput(c.std.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	sessions, err := logging.FindSessions(logDir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(c.std.out, "No transcripts found.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(c.std.out, "%-28s %s %8d  %s\n", s.ID, s.ModTime.Format("2006-01-02 15:04:05"), s.Size, s.Path)
	}
	return nil
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if rest[0] == "-" || !strings.HasPrefix(rest[0], "-") {
			positional = append(positional, rest[0])
			args = rest[1:]
			continue
		}
		// fs.Parse stopped at "--"; everything after it is positional.
		return append(positional, rest...), nil
	}
}

type inputLine struct {
	text string
	err  error
}

// readLines scans r on its own goroutine so the caller can stop on ctx.
func readLines(ctx context.Context, r io.Reader) <-chan inputLine {
	ch := make(chan inputLine)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- inputLine{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case ch <- inputLine{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
