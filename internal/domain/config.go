package domain

// ConfigKey describes one ~/.cmdcorerc setting.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string
	// HideIfEmpty keeps unset keys out of listings and the seeded file.
	HideIfEmpty bool
}

var configSections = []string{"Display", "Logging", "Dispatch", "History", "Tracing", "Color Overrides"}

func section(name string, keys ...ConfigKey) []ConfigKey {
	for i := range keys {
		keys[i].Section = name
	}
	return keys
}

func optional(name, description string) ConfigKey {
	return ConfigKey{Name: name, Description: description, HideIfEmpty: true}
}

func colorKey(role, extra string) ConfigKey {
	return optional("color_"+role, "Override the theme's "+role+" color (ANSI 0-255"+extra+")")
}

// ConfigKeys lists every setting in display order.
var ConfigKeys = concat(
	section("Display",
		ConfigKey{Name: "pager", Default: "less -FRSX", Description: "Pager command for long output"},
		ConfigKey{Name: "theme", Default: "default", Description: "Color theme: default, neon, aurora, mono, ocean, sunset, candy, contrast"},
		ConfigKey{Name: "display_date", Default: "Jan 02", Description: "Date format: mm/dd/yyyy, dd/mm/yyyy, yyyy-mm-dd or a Go layout"},
		ConfigKey{Name: "display_time", Default: "24h", Description: "Time format: 24h or 12h"},
		ConfigKey{Name: "console_mode", Default: "tui", Description: "Console flavour: tui, plain"},
	),
	section("Logging",
		ConfigKey{Name: "enable_log", Default: "true", Description: "Write a log file (true/false)"},
		ConfigKey{Name: "log_level", Default: "info", Description: "Minimum log level: debug, info, warn, error"},
		ConfigKey{Name: "log_max_size_mb", Default: "5", Description: "Rotate the log file after this many megabytes"},
	),
	section("Dispatch",
		ConfigKey{Name: "caller", Default: "console", Description: "Name of the caller used for commands typed locally"},
		ConfigKey{Name: "permissions", Default: "*", Description: "Comma separated permission nodes granted to the local caller"},
		ConfigKey{Name: "manifest_path", Description: "TOML or YAML file with extra command definitions"},
		ConfigKey{Name: "manifest_watch", Default: "false", Description: "Reload the manifest when it changes (true/false)"},
		ConfigKey{Name: "rate_per_sec", Default: "0", Description: "Commands per second allowed for each caller (0 disables)"},
		ConfigKey{Name: "rate_burst", Default: "5", Description: "Burst size for the per-caller rate limit"},
	),
	section("History",
		ConfigKey{Name: "history_enabled", Default: "true", Description: "Record every dispatch in the history database (true/false)"},
		ConfigKey{Name: "history_keep", Default: "1000", Description: "Number of history entries kept after pruning"},
	),
	section("Tracing",
		optional("trace_endpoint", "OTLP/HTTP endpoint for dispatch traces (empty disables)"),
	),
	section("Color Overrides",
		colorKey("success", ""),
		colorKey("warning", ""),
		colorKey("error", ""),
		colorKey("info", ""),
		colorKey("muted", ""),
		colorKey("header", " or 'bold'"),
	),
)

func concat(groups ...[]ConfigKey) []ConfigKey {
	var all []ConfigKey
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

var configIndex = func() map[string]int {
	m := make(map[string]int, len(ConfigKeys))
	for i, k := range ConfigKeys {
		m[k.Name] = i
	}
	return m
}()

func IsValidConfigKey(name string) bool {
	_, ok := configIndex[name]
	return ok
}

// GetDefaultValue reports the default for name and whether name is a key.
func GetDefaultValue(name string) (string, bool) {
	i, ok := configIndex[name]
	if !ok {
		return "", false
	}
	return ConfigKeys[i].Default, true
}

// ConfigSections returns section names in display order.
func ConfigSections() []string {
	return append([]string(nil), configSections...)
}

func ConfigKeysBySection() map[string][]ConfigKey {
	out := make(map[string][]ConfigKey, len(configSections))
	for _, k := range ConfigKeys {
		out[k.Section] = append(out[k.Section], k)
	}
	return out
}
