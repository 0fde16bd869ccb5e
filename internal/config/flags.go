package config

import (
	"flag"
)

// parseFlags defines the global flags on fs and parses args. Only flags that
// are explicitly set override cfg.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todoapp", flag.ContinueOnError)
	}

	// Flag values are staged so that unset flags leave cfg untouched.
	staged := *cfg
	fs.StringVar(&staged.LogDir, "log-dir", cfg.LogDir, "Transcript directory")
	fs.BoolVar(&staged.Transcript, "transcript", cfg.Transcript, "Write a JSONL transcript of each session")
	fs.StringVar(&staged.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&staged.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&staged.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&staged.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.IntVar(&staged.ConsoleMaxLines, "console-max-lines", cfg.ConsoleMaxLines, "Console lines kept in the panel")
	fs.BoolVar(&staged.ConfirmQuit, "confirm-quit", cfg.ConfirmQuit, "Ask before quitting")
	fs.BoolVar(&staged.ShowTips, "show-tips", cfg.ShowTips, "Show the shortcut tip on start")
	fs.StringVar(&staged.SeedFile, "seed", cfg.SeedFile, "JSON file with the initial task list")
	fs.StringVar(&staged.SeedSchema, "seed-schema", cfg.SeedSchema, "JSON Schema file overriding the built-in seed schema")

	if err := fs.Parse(args); err != nil {
		return err
	}

	apply := map[string]func(){
		"log-dir":           func() { setSource(&cfg.LogDir, staged.LogDir, sources, "log_dir", SourceFlag) },
		"transcript":        func() { setSource(&cfg.Transcript, staged.Transcript, sources, "transcript", SourceFlag) },
		"log-level":         func() { setSource(&cfg.LogLevel, staged.LogLevel, sources, "log_level", SourceFlag) },
		"log-format":        func() { setSource(&cfg.LogFormat, staged.LogFormat, sources, "log_format", SourceFlag) },
		"log-timestamps":    func() { setSource(&cfg.LogTimestamps, staged.LogTimestamps, sources, "log_timestamps", SourceFlag) },
		"log-caller":        func() { setSource(&cfg.LogCaller, staged.LogCaller, sources, "log_caller", SourceFlag) },
		"console-max-lines": func() { setSource(&cfg.ConsoleMaxLines, staged.ConsoleMaxLines, sources, "console_max_lines", SourceFlag) },
		"confirm-quit":      func() { setSource(&cfg.ConfirmQuit, staged.ConfirmQuit, sources, "confirm_quit", SourceFlag) },
		"show-tips":         func() { setSource(&cfg.ShowTips, staged.ShowTips, sources, "show_tips", SourceFlag) },
		"seed":              func() { setSource(&cfg.SeedFile, staged.SeedFile, sources, "seed_file", SourceFlag) },
		"seed-schema":       func() { setSource(&cfg.SeedSchema, staged.SeedSchema, sources, "seed_schema", SourceFlag) },
	}
	fs.Visit(func(f *flag.Flag) {
		if fn, ok := apply[f.Name]; ok {
			fn()
		}
	})
	return nil
}
