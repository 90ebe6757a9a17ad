package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// ListView is the visible configuration grouped by section.
type ListView struct {
	Values map[string]string
}

// String renders one key=value line per visible key, under section headers.
func (v ListView) String() string {
	var b strings.Builder
	bySection := domain.ConfigKeysBySection()
	for _, section := range domain.ConfigSections() {
		var lines []string
		for _, key := range bySection[section] {
			value, exists := v.Values[key.Name]
			if !exists || (key.HideIfEmpty && value == "") {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s=%s", key.Name, value))
		}
		if len(lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(style.Header(section))
		b.WriteByte('\n')
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// List reports every visible configuration value.
func List() domain.Handler {
	return list(DefaultDeps())
}

func list(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		values, err := deps.GetAll()
		if err != nil {
			return nil, err
		}
		return ListView{Values: values}, nil
	})
}
