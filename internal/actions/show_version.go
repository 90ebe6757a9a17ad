package actions

import (
	"context"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// ShowVersion reports the binary version.
func ShowVersion(d Deps) domain.Handler {
	return showVersion(d.resolve())
}

func showVersion(deps actionDependencies) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		return "cmdcore version " + deps.Version(), nil
	})
}
