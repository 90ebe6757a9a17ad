package config

import (
	"os"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/paths"
)

// EnvPrefix prefixes environment overrides, e.g. CMDCORE_LOG_LEVEL.
const EnvPrefix = "CMDCORE_"

// Default configuration values (in code, not persisted).
var Defaults = defaultValues()

func defaultValues() map[string]func() string {
	out := make(map[string]func() string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		value := key.Default
		out[key.Name] = func() string { return value }
	}
	out["manifest_path"] = func() string { return paths.DefaultManifestPath() }
	return out
}

// envKey maps a config key to its environment variable.
func envKey(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Get returns the value for a config key.
// An environment override wins, then the config file, then the default.
// Returns the value and whether it was found.
func Get(key string) (string, bool) {
	if v, ok := os.LookupEnv(envKey(key)); ok {
		return v, true
	}

	lines, err := ReadLines()
	if err != nil {
		if defaultFn, ok := Defaults[key]; ok {
			return defaultFn(), true
		}
		return "", false
	}

	cfg, err := Parse(lines)
	if err != nil {
		if defaultFn, ok := Defaults[key]; ok {
			return defaultFn(), true
		}
		return "", false
	}

	if value, exists := cfg[key]; exists {
		return value, true
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns every config value: defaults, overridden by the file,
// overridden by the environment.
func GetAll() (map[string]string, error) {
	result := make(map[string]string)

	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	lines, err := ReadLines()
	if err == nil {
		if cfg, err := Parse(lines); err == nil {
			for key, value := range cfg {
				result[key] = value
			}
		}
	}

	for key := range result {
		if v, ok := os.LookupEnv(envKey(key)); ok {
			result[key] = v
		}
	}

	return result, nil
}
