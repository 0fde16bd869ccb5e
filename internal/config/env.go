package config

import (
	"fmt"
	"os"

	"github.com/nibzard/todoapp/internal/utils"
)

// loadFromEnv overrides config from TODOAPP_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			setSource(target, v, sources, field, SourceEnv)
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			setSource(target, utils.BoolFromString(v), sources, field, SourceEnv)
		}
	}

	setString("TODOAPP_LOG_DIR", "log_dir", &cfg.LogDir)
	setBool("TODOAPP_TRANSCRIPT", "transcript", &cfg.Transcript)
	setString("TODOAPP_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TODOAPP_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TODOAPP_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TODOAPP_LOG_CALLER", "log_caller", &cfg.LogCaller)
	if v := os.Getenv("TODOAPP_CONSOLE_MAX_LINES"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			setSource(&cfg.ConsoleMaxLines, i, sources, "console_max_lines", SourceEnv)
		}
	}
	setBool("TODOAPP_CONFIRM_QUIT", "confirm_quit", &cfg.ConfirmQuit)
	setBool("TODOAPP_SHOW_TIPS", "show_tips", &cfg.ShowTips)
	setString("TODOAPP_SEED", "seed_file", &cfg.SeedFile)
	setString("TODOAPP_SEED_SCHEMA", "seed_schema", &cfg.SeedSchema)
}
