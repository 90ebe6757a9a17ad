package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
)

// Source is the reload source name manifest commands are registered under.
const Source = "manifest"

// Target receives manifest commands.
type Target interface {
	Replacements() *dispatchers.Replacements
	Reload(source string, defs []domain.CommandDefinition) error
}

// Apply loads the manifest at path into target. Replacements are added
// before the commands are registered so placeholders in paths, flags and
// reply text expand.
func Apply(target Target, path string, handlers Handlers) (int, error) {
	m, err := Load(path)
	if err != nil {
		return 0, err
	}
	repl := target.Replacements()
	for _, key := range slices.Sorted(maps.Keys(m.Replacements)) {
		if err := repl.Add(key, m.Replacements[key]); err != nil {
			return 0, err
		}
	}
	for i := range m.Commands {
		m.Commands[i].Reply = repl.Replace(m.Commands[i].Reply)
	}
	defs, err := m.Definitions(handlers)
	if err != nil {
		return 0, fmt.Errorf("manifest %s: %w", path, err)
	}
	if err := target.Reload(Source, defs); err != nil {
		return 0, err
	}
	return len(defs), nil
}
