package config

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.LogDir = DefaultLogDir
	cfg.Transcript = DefaultTranscript
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.ConsoleMaxLines = DefaultConsoleMaxLines
	cfg.ConfirmQuit = DefaultConfirmQuit
	cfg.ShowTips = DefaultShowTips
	cfg.Keys = DefaultKeys()
}

// GetConfigFile returns the highest priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// Values returns the effective value of every tracked field, rendered as text.
func (cws *ConfigWithSources) Values() map[string]string {
	cfg := cws.Config
	values := map[string]string{
		"log_dir":           cfg.LogDir,
		"transcript":        fmt.Sprint(cfg.Transcript),
		"log_level":         cfg.LogLevel,
		"log_format":        cfg.LogFormat,
		"log_timestamps":    fmt.Sprint(cfg.LogTimestamps),
		"log_caller":        fmt.Sprint(cfg.LogCaller),
		"console_max_lines": fmt.Sprint(cfg.ConsoleMaxLines),
		"confirm_quit":      fmt.Sprint(cfg.ConfirmQuit),
		"show_tips":         fmt.Sprint(cfg.ShowTips),
		"seed_file":         cfg.SeedFile,
		"seed_schema":       cfg.SeedSchema,
	}
	for _, action := range Actions() {
		values["keys."+action] = formatKeys(cfg.Keys.Get(action))
	}
	return values
}

// Print writes one "name = value (source)" line per field, sorted by name.
func (cws *ConfigWithSources) Print(w io.Writer) error {
	values := cws.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		source := cws.Sources[name]
		if source == "" {
			source = SourceDefault
		}
		if _, err := fmt.Fprintf(w, "%-24s = %-28s (%s)\n", name, values[name], source); err != nil {
			return err
		}
	}
	return nil
}

func formatKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
