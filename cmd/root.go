// Package cmd implements the CLI command structure for todoapp.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoapp/internal/config"
	"github.com/nibzard/todoapp/internal/console"
	"github.com/nibzard/todoapp/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams are the process's standard streams; tests substitute buffers.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the todoapp CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, std streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todoapp", flag.ContinueOnError)
	fs.SetOutput(std.err)
	fs.Usage = func() {
		printUsage(fs, std.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, std.out)
		return nil
	}
	if *showVersion {
		return versionCommand(std.out)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := console.NewLogger(std.err, console.CharmLogOptionsFromConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller, "todoapp"))

	// Without a subcommand the widget runs on a terminal and the line
	// reader runs everywhere else.
	subcommand := "repl"
	if isTerminal(std.in) && isTerminal(std.out) {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	c := &cli{cfg: cfg, sources: cws, logger: logger, std: std}
	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "repl":
		return c.replCommand(ctx, remainingArgs)
	case "run":
		return c.runCommand(ctx, remainingArgs)
	case "check":
		return c.checkCommand(remainingArgs)
	case "schema":
		_, err := fmt.Fprint(std.out, schemaText())
		return err
	case "config":
		return c.configCommand(remainingArgs)
	case "tail":
		return c.tailCommand(ctx, remainingArgs)
	case "ls":
		return c.lsCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(std.out)
	case "help", "--help", "-h":
		printUsage(fs, std.out)
		return nil
	default:
		fmt.Fprintf(std.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, std.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cli carries what every subcommand needs.
type cli struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	std     streams
}

func versionCommand(w io.Writer) error {
	_, err := fmt.Fprintf(w, "todoapp version %s\n", Version)
	return err
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && utils.IsTTY(f)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todoapp - a small to-do list with a console panel")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todoapp [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Terminal widget (default on a terminal)")
	fmt.Fprintln(w, "  repl              Read line commands from stdin (default otherwise)")
	fmt.Fprintln(w, "  run <script>...   Run files of line commands in one session (- for stdin)")
	fmt.Fprintln(w, "  check [seed]      Validate a seed file")
	fmt.Fprintln(w, "  schema            Print the seed JSON Schema")
	fmt.Fprintln(w, "  config            Show effective configuration and where each value came from")
	fmt.Fprintln(w, "  tail              Print the latest session transcript")
	fmt.Fprintln(w, "  ls                List session transcripts")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Line commands (repl and run):")
	for _, line := range commandHelp() {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Options (use with 'run' command):")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the final task list as JSON; console lines go to stderr")
	fmt.Fprintln(w, "  -strict")
	fmt.Fprintln(w, "        Stop at the first failing line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the transcript (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
