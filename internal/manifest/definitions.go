package manifest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
)

// Handlers maps the handler names a manifest may reference.
type Handlers map[string]domain.Handler

// Definitions converts m into command definitions. Handlers are looked up
// by name; reply commands get a template handler.
func (m *Manifest) Definitions(handlers Handlers) ([]domain.CommandDefinition, error) {
	defs := make([]domain.CommandDefinition, 0, len(m.Commands))
	for _, c := range m.Commands {
		def, err := c.definition(handlers)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (c Command) definition(handlers Handlers) (domain.CommandDefinition, error) {
	def := domain.CommandDefinition{
		Path:          strings.Fields(c.Path),
		Description:   c.Description,
		Category:      domain.ParseCategory(c.Category),
		Permission:    c.Permission,
		Conditions:    c.Conditions,
		Hidden:        c.Hidden,
		AllowTrailing: c.AllowTrailing,
	}

	if c.Reply != "" {
		def.Handler = ReplyHandler(c.Reply)
	} else {
		h, ok := handlers[c.Handler]
		if !ok {
			return domain.CommandDefinition{}, fmt.Errorf("command %q: unknown handler %q", c.Path, c.Handler)
		}
		def.Handler = h
	}

	for _, p := range c.Params {
		param := domain.Parameter{
			Name:        p.Name,
			Type:        p.Type,
			Optional:    p.Optional,
			Rest:        p.Rest,
			Default:     p.Default,
			Conditions:  p.Conditions,
			Suggest:     p.Suggest,
			Completion:  p.Completion,
			Description: p.Description,
		}
		if p.Flags != "" {
			param.Flags = resolvers.ParseFlags(p.Flags)
		}
		def.Params = append(def.Params, param)
	}
	return def, nil
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// ReplyHandler answers with template, replacing {name} by the bound
// argument of that name and {caller} by the caller's name.
func ReplyHandler(template string) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		return placeholder.ReplaceAllStringFunc(template, func(match string) string {
			name := match[1 : len(match)-1]
			if _, ok := ec.Arg(name); ok {
				return ec.String(name)
			}
			if name == "caller" {
				return ec.CallerName()
			}
			return match
		}), nil
	})
}
