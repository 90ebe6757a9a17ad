package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Settings is the typed view of the configuration used at startup.
type Settings struct {
	Pager       string `env:"PAGER"`
	Theme       string `env:"THEME"`
	ConsoleMode string `env:"CONSOLE_MODE"`

	EnableLog    bool   `env:"ENABLE_LOG"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB"`

	Caller        string   `env:"CALLER"`
	Permissions   []string `env:"PERMISSIONS" envSeparator:","`
	ManifestPath  string   `env:"MANIFEST_PATH"`
	ManifestWatch bool     `env:"MANIFEST_WATCH"`
	RatePerSec    float64  `env:"RATE_PER_SEC"`
	RateBurst     int      `env:"RATE_BURST"`

	HistoryEnabled bool `env:"HISTORY_ENABLED"`
	HistoryKeep    int  `env:"HISTORY_KEEP"`

	TraceEndpoint string `env:"TRACE_ENDPOINT"`

	// Raw holds every value, including color overrides.
	Raw map[string]string
}

// Load reads the config file and applies CMDCORE_* environment overrides.
func Load() (Settings, error) {
	values, err := GetAll()
	if err != nil {
		return Settings{}, err
	}
	return FromValues(values, nil)
}

// FromValues builds Settings from raw values, then applies environment
// overrides. A nil environ reads the process environment.
func FromValues(values map[string]string, environ map[string]string) (Settings, error) {
	s := Settings{Raw: values}
	p := fieldParser{values: values}

	s.Pager = p.str("pager")
	s.Theme = p.str("theme")
	s.ConsoleMode = p.str("console_mode")
	s.EnableLog = p.boolean("enable_log")
	s.LogLevel = p.str("log_level")
	s.LogMaxSizeMB = p.integer("log_max_size_mb")
	s.Caller = p.str("caller")
	s.Permissions = splitList(p.str("permissions"))
	s.ManifestPath = p.str("manifest_path")
	s.ManifestWatch = p.boolean("manifest_watch")
	s.RatePerSec = p.float("rate_per_sec")
	s.RateBurst = p.integer("rate_burst")
	s.HistoryEnabled = p.boolean("history_enabled")
	s.HistoryKeep = p.integer("history_keep")
	s.TraceEndpoint = p.str("trace_endpoint")

	if p.err != nil {
		return Settings{}, p.err
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, usage.Configuration("environment: %v", err)
	}
	return s, nil
}

type fieldParser struct {
	values map[string]string
	err    error
}

func (p *fieldParser) str(key string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	v, _ := domain.GetDefaultValue(key)
	return v
}

func (p *fieldParser) fail(key, value, want string) {
	if p.err == nil {
		p.err = usage.Configuration("config key %q: %q is not %s", key, value, want)
	}
}

func (p *fieldParser) boolean(key string) bool {
	v := p.str(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, "a boolean")
	}
	return b
}

func (p *fieldParser) integer(key string) int {
	v := p.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, "an integer")
	}
	return n
}

func (p *fieldParser) float(key string) float64 {
	v := p.str(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, "a number")
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String renders s for debugging.
func (s Settings) String() string {
	return fmt.Sprintf("caller=%s permissions=%v manifest=%s history=%t log=%s",
		s.Caller, s.Permissions, s.ManifestPath, s.HistoryEnabled, s.LogLevel)
}
