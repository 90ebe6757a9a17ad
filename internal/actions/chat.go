package actions

import (
	"context"
	"fmt"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
)

// Say broadcasts a chat line from the caller.
func Say(Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		return fmt.Sprintf("[%s] %s", ec.CallerName(), ec.String("message")), nil
	})
}

// WhoAmI reports the caller and how deeply nested the current dispatch is.
func WhoAmI(Deps) domain.Handler {
	return domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		self, _ := ec.Arg("self")
		issuer, _ := self.(domain.Issuer)
		if issuer == nil {
			return "You are nobody", nil
		}
		return fmt.Sprintf("You are %s (execution %s, depth %d)", issuer.Name(), ec.ID, execctx.Depth(ctx)), nil
	})
}
