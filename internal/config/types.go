package config

import (
	"fmt"
	"sort"

	"github.com/nibzard/todoapp/internal/utils"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string // config files that were read, lowest priority first
}

// Default values.
const (
	DefaultLogDir          = "~/.todoapp/logs"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultConsoleMaxLines = 200
	DefaultConfirmQuit     = true
	DefaultShowTips        = true
	DefaultTranscript      = true
)

// Config holds the full configuration for todoapp.
type Config struct {
	// Transcripts
	LogDir     string `toml:"log_dir"`
	Transcript bool   `toml:"transcript"`

	// Diagnostics
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Widget
	ConsoleMaxLines int    `toml:"console_max_lines"`
	ConfirmQuit     bool   `toml:"confirm_quit"`
	ShowTips        bool   `toml:"show_tips"`
	Keys            KeyMap `toml:"keys"`

	// Initial list
	SeedFile   string `toml:"seed_file"`
	SeedSchema string `toml:"seed_schema"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Widget actions that can be bound to keys.
const (
	ActionList   = "list"
	ActionAdd    = "add"
	ActionDelete = "delete"
	ActionQuit   = "quit"
	ActionToggle = "toggle"
	ActionRemove = "remove"
	ActionClear  = "clear"
	ActionUp     = "up"
	ActionDown   = "down"
	ActionHelp   = "help"
)

// DefaultKeys returns the built-in key bindings.
func DefaultKeys() KeyMap {
	return KeyMap{
		ActionList:   {"ctrl+l"},
		ActionAdd:    {"ctrl+n"},
		ActionDelete: {"ctrl+d"},
		ActionQuit:   {"ctrl+q", "ctrl+c"},
		ActionToggle: {" ", "x"},
		ActionRemove: {"backspace", "delete"},
		ActionClear:  {"ctrl+k"},
		ActionUp:     {"up", "k"},
		ActionDown:   {"down", "j"},
		ActionHelp:   {"?"},
	}
}

// Actions returns the bindable action names in a stable order.
func Actions() []string {
	actions := make([]string, 0, len(DefaultKeys()))
	for action := range DefaultKeys() {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

// KeyMap maps widget actions to the keys that trigger them.
type KeyMap map[string][]string

// UnmarshalTOML merges a [keys] table over the existing bindings, so a file
// only needs to list the actions it changes.
func (km *KeyMap) UnmarshalTOML(data interface{}) error {
	table, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("keys config must be a table")
	}
	if *km == nil {
		*km = KeyMap{}
	}
	return mergeKeyTable(*km, table)
}

// Get returns a copy of the keys bound to action.
func (km KeyMap) Get(action string) []string {
	if km == nil {
		return nil
	}
	keys := km[utils.NormalizeName(action)]
	if len(keys) == 0 {
		return nil
	}
	copied := make([]string, len(keys))
	copy(copied, keys)
	return copied
}

// Set binds keys to action.
func (km *KeyMap) Set(action string, keys []string) {
	name := utils.NormalizeName(action)
	if name == "" {
		return
	}
	if *km == nil {
		*km = KeyMap{}
	}
	(*km)[name] = keys
}
