package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/todoapp/internal/utils"
)

// mergeKeyTable merges key bindings from a TOML table.
func mergeKeyTable(target KeyMap, table map[string]interface{}) error {
	for action, value := range table {
		keys, err := parseKeysValue(value)
		if err != nil {
			return fmt.Errorf("keys.%s: %w", action, err)
		}
		target[utils.NormalizeName(action)] = keys
	}
	return nil
}

// parseKeysValue accepts a string array or a comma-separated string.
// Keys are case sensitive and a lone space is a valid key.
func parseKeysValue(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return filterEmptyKeys(val), nil
	case []interface{}:
		keys := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a string array")
			}
			if k := normalizeKey(s); k != "" {
				keys = append(keys, k)
			}
		}
		return keys, nil
	case string:
		return filterEmptyKeys(strings.Split(val, ",")), nil
	default:
		return nil, fmt.Errorf("must be a string or string array")
	}
}

func filterEmptyKeys(keys []string) []string {
	filtered := make([]string, 0, len(keys))
	for _, key := range keys {
		if k := normalizeKey(key); k != "" {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

func normalizeKey(key string) string {
	if key == " " || strings.EqualFold(strings.TrimSpace(key), "space") {
		return " "
	}
	return strings.TrimSpace(key)
}

// setSource is a helper for loadConfigFile.
func setSource[T any](field *T, value T, sources map[string]ConfigSource, name string, source ConfigSource) {
	*field = value
	if sources != nil {
		sources[name] = source
	}
}
