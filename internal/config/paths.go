package config

import (
	"os"
	"path/filepath"
	"strings"
)

// projectConfigNames are looked up in the working directory, first match wins.
var projectConfigNames = []string{"todoapp.toml", ".todoapp.toml"}

// expandPath expands $VAR references and a leading ~ in path-valued fields.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// findUserConfigFile returns ~/.todoapp/todoapp.toml, or todoapp/todoapp.toml
// under the OS config directory, whichever exists first.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".todoapp", "todoapp.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "todoapp", "todoapp.toml"))
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
