package actions

import (
	"context"
	"testing"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

type player struct {
	name  string
	perms []string
}

func (p player) Name() string { return p.name }

func (p player) HasPermission(perm string) bool {
	for _, have := range p.perms {
		if have == perm {
			return true
		}
	}
	return false
}

func invoke(t *testing.T, h domain.Handler, caller domain.Issuer, args map[string]any) (any, error) {
	t.Helper()
	inv := &domain.Invocation{}
	for name, v := range args {
		inv.Args = append(inv.Args, domain.BoundArg{Name: name, Value: v})
	}
	return h.Handle(context.Background(), domain.NewExecutionContext(caller, inv, ""))
}
