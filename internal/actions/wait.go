package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
)

// Wait suspends the dispatch, finishes it on another goroutine once the
// duration elapses, and hands the frame back before returning.
func Wait(d Deps) domain.Handler {
	return wait(d.resolve())
}

func wait(deps actionDependencies) domain.Handler {
	return domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		v, _ := ec.Arg("duration")
		dur, _ := v.(time.Duration)

		cont, err := execctx.Suspend(ctx)
		if err != nil {
			return nil, err
		}
		defer func() { _ = cont.Restore() }()

		type outcome struct {
			msg string
			err error
		}
		done := make(chan outcome, 1)
		start := deps.Now()

		go func() {
			select {
			case <-ctx.Done():
				done <- outcome{err: ctx.Err()}
				return
			case <-deps.After(dur):
			}

			var msg string
			err := cont.Resume(context.Background(), func(rctx context.Context) error {
				resumed, ok := execctx.Current(rctx)
				if !ok || resumed != cont.Context() {
					return fmt.Errorf("execution context lost across resume")
				}
				msg = fmt.Sprintf("%s waited %s", resumed.CallerName(), deps.Now().Sub(start).Round(time.Millisecond))
				return nil
			})
			done <- outcome{msg: msg, err: err}
		}()

		out := <-done
		return out.msg, out.err
	})
}
