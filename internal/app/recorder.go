package app

import (
	"context"
	"fmt"
	"time"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/store"
)

// pruneEvery is the minimum time between two history prunes.
const pruneEvery = time.Hour

// recorder stores every finished dispatch and prunes old entries.
type recorder struct {
	store  *store.Store
	keep   int
	logger domain.Logger
	now    func() time.Time
}

func (r *recorder) observe(_ context.Context, res dispatchers.Result) {
	entry := domain.HistoryEntry{
		Raw:      res.Raw,
		Command:  res.Command,
		Outcome:  res.Kind.String(),
		Started:  res.Started,
		Duration: res.Duration,
	}
	if res.Caller != nil {
		entry.Caller = res.Caller.Name()
	}
	if res.Err != nil {
		entry.Message = res.Err.Message
	}
	if res.Invocation != nil {
		entry.Args = argsOf(res.Invocation)
	}

	if err := r.store.Record(entry); err != nil {
		r.logger.Warn("history: record %q: %v", res.Raw, err)
		return
	}
	r.maybePrune()
}

func (r *recorder) maybePrune() {
	if r.keep <= 0 {
		return
	}
	state, err := r.store.GetPruneState()
	if err != nil {
		r.logger.Warn("history: read prune state: %v", err)
		return
	}
	if !state.LastPrune.IsZero() && r.now().Sub(state.LastPrune) < pruneEvery {
		return
	}
	removed, err := r.store.Prune(r.keep)
	if err != nil {
		r.logger.Warn("history: prune: %v", err)
		return
	}
	if removed > 0 {
		r.logger.Info("history: pruned %d entries", removed)
	}
}

// argsOf keeps scalar argument values and renders the rest as text.
func argsOf(inv *domain.Invocation) map[string]any {
	if len(inv.Args) == 0 {
		return nil
	}
	out := make(map[string]any, len(inv.Args))
	for _, a := range inv.Args {
		switch v := a.Value.(type) {
		case nil:
		case string, bool, int64, float64:
			out[a.Name] = v
		case time.Duration:
			out[a.Name] = v.String()
		case domain.Issuer:
			out[a.Name] = v.Name()
		default:
			out[a.Name] = fmt.Sprint(v)
		}
	}
	return out
}
