package config

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/paths"
)

// ReadLines returns the lines of the config file. A missing or empty file
// is seeded with the documented defaults first.
func ReadLines() ([]string, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return seedDefaults(path), nil
	case err != nil:
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if err := f.Chmod(0600); err != nil {
		log.Warn("config: could not set permissions on %s: %v", path, err)
	}

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return seedDefaults(path), nil
	}
	return lines, nil
}

// seedDefaults writes the default file and returns its lines. A write
// failure is logged and the defaults are still returned.
func seedDefaults(path string) []string {
	lines := defaultLines()
	if err := writeAtomic(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		log.Warn("config: could not write default config: %v", err)
	}
	return lines
}

// defaultLines lists the visible keys grouped by section. Keys that are
// empty by default are written commented out.
func defaultLines() []string {
	lines := []string{
		"# cmdcore configuration",
		"# Edit values below or use: cmdcore exec config set <key> <value>",
	}

	bySection := domain.ConfigKeysBySection()
	for _, section := range domain.ConfigSections() {
		keys := bySection[section]
		if len(keys) == 0 {
			continue
		}
		lines = append(lines, "", "# "+section)
		for _, key := range keys {
			value := key.Default
			if fn, ok := Defaults[key.Name]; ok {
				value = fn()
			}
			switch {
			case key.HideIfEmpty:
				lines = append(lines, "# "+key.Name+"=")
			case strings.ContainsRune(value, ' '):
				lines = append(lines, key.Name+`="`+value+`"`)
			default:
				lines = append(lines, key.Name+"="+value)
			}
		}
	}
	return lines
}
