package dispatchers

import (
	"maps"
	"regexp"
	"strings"
	"sync"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

var replacementPattern = regexp.MustCompile(`%\{?([A-Za-z0-9_.\-]+)\}?`)

// Replacements expands %key placeholders in definitions at registration.
type Replacements struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewReplacements returns replacements holding the builtin "truthy" key.
func NewReplacements() *Replacements {
	return &Replacements{
		values: map[string]string{
			"truthy": "true|false|yes|no|1|0|on|off",
		},
	}
}

// Add registers key. Keys are case-insensitive and may be overwritten.
func (r *Replacements) Add(key, value string) error {
	key = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(key), "%"))
	if key == "" {
		return usage.Configuration("replacement key is empty")
	}
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
	return nil
}

// Replace expands every known %key in s. Unknown keys are left as typed.
func (r *Replacements) Replace(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return replacementPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := strings.ToLower(replacementPattern.FindStringSubmatch(match)[1])
		if v, ok := r.values[key]; ok {
			return v
		}
		return match
	})
}

func (r *Replacements) replaceAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = r.Replace(s)
	}
	return out
}

// Apply returns a deep copy of def with every placeholder expanded.
func (r *Replacements) Apply(def domain.CommandDefinition) domain.CommandDefinition {
	d := def
	d.Path = r.replaceAll(def.Path)
	d.Permission = r.Replace(def.Permission)
	d.Conditions = r.replaceAll(def.Conditions)
	d.Description = r.Replace(def.Description)

	d.Params = make([]domain.Parameter, len(def.Params))
	for i, p := range def.Params {
		p.Default = r.Replace(p.Default)
		p.Conditions = r.replaceAll(p.Conditions)
		p.Suggest = r.replaceAll(p.Suggest)
		p.Completion = r.Replace(p.Completion)
		p.Description = r.Replace(p.Description)
		if p.Flags != nil {
			flags := maps.Clone(p.Flags)
			for k, v := range flags {
				flags[k] = r.Replace(v)
			}
			p.Flags = flags
		}
		d.Params[i] = p
	}
	return d
}
