package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/format"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// HistoryView is a list of recorded dispatches, newest first.
type HistoryView struct {
	Entries []domain.HistoryEntry
}

// String renders one line per entry.
func (v HistoryView) String() string {
	if len(v.Entries) == 0 {
		return "No history recorded."
	}
	var b strings.Builder
	for i, e := range v.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		outcome := e.Outcome
		if outcome == "executed" {
			outcome = style.Success(outcome)
		} else {
			outcome = style.Warning(outcome)
		}
		fmt.Fprintf(&b, "%s  %-8s %s  %s  %s",
			style.Muted(format.DateTimeShort(e.Started)),
			e.Caller,
			outcome,
			e.Raw,
			style.Muted(format.Duration(e.Duration)),
		)
	}
	return b.String()
}

// History lists the caller's recent dispatches. Callers holding the
// cmdcore.history.all permission see everyone's.
func History(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		if deps.History == nil {
			return nil, fmt.Errorf("history is disabled")
		}

		filter := domain.HistoryFilter{
			Limit:   int(ec.Int("limit", 20)),
			Command: ec.String("command"),
		}
		if ph, ok := ec.Caller.(domain.PermissionHolder); !ok || !ph.HasPermission("cmdcore.history.all") {
			filter.Caller = ec.CallerName()
		}

		entries, err := deps.History.List(filter)
		if err != nil {
			return nil, err
		}
		return HistoryView{Entries: entries}, nil
	})
}
