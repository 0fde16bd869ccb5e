package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nibzard/todoapp/internal/utils"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// FieldError names the config field that holds an invalid value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks value ranges and key bindings. All problems are joined.
func (c *Config) Validate() error {
	var errs []error
	fieldErr := func(field, format string, args ...interface{}) {
		errs = append(errs, &FieldError{Field: field, Err: fmt.Errorf(format, args...)})
	}

	if c.ConsoleMaxLines < 0 {
		fieldErr("console_max_lines", "must be >= 0, got %d", c.ConsoleMaxLines)
	}
	if !contains(validLogLevels, utils.NormalizeName(c.LogLevel)) {
		fieldErr("log_level", "unknown level %q (want one of %v)", c.LogLevel, validLogLevels)
	}
	if !contains(validLogFormats, utils.NormalizeName(c.LogFormat)) {
		fieldErr("log_format", "unknown format %q (want one of %v)", c.LogFormat, validLogFormats)
	}

	known := DefaultKeys()
	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	boundTo := make(map[string]string)
	for _, action := range actions {
		if _, ok := known[action]; !ok {
			fieldErr("keys."+action, "unknown action")
			continue
		}
		for _, key := range c.Keys[action] {
			if other, ok := boundTo[key]; ok && other != action {
				fieldErr("keys."+action, "key %q is already bound to %s", key, other)
				continue
			}
			boundTo[key] = action
		}
	}

	return errors.Join(errs...)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
