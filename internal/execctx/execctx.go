// Package execctx keeps a stack of execution contexts per logical task.
//
// A task is whatever carries the context.Context: a goroutine, a chain of
// callbacks, or a continuation resumed elsewhere. The stack lives in the
// context itself, so goroutines forked from one ctx each extend their own
// copy and concurrent dispatches cannot see each other's frames.
package execctx

import (
	"context"
	"errors"
	"sync"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

var (
	// ErrNoFrame is returned when ctx is not inside WithContext.
	ErrNoFrame = errors.New("execctx: no execution context in scope")

	// ErrFramePopped is returned when resuming a frame whose owner returned.
	ErrFramePopped = errors.New("execctx: execution context already popped")

	// ErrBadState is returned for transitions the state machine forbids.
	ErrBadState = errors.New("execctx: invalid state transition")
)

// State of a frame: Idle -> Pushed -> (Suspended -> Resumed)* -> Popped.
type State int

const (
	Idle State = iota
	Pushed
	Suspended
	Resumed
	Popped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pushed:
		return "pushed"
	case Suspended:
		return "suspended"
	case Resumed:
		return "resumed"
	default:
		return "popped"
	}
}

type linkKey struct{}

// link is one entry of a task's chain, innermost first. Links are
// immutable; every WithContext body and every Resume gets its own, so
// siblings forked from one ctx never observe each other's frames.
type link struct {
	f      *frame
	parent *link
}

type frame struct {
	mu     sync.Mutex
	ec     *domain.ExecutionContext
	state  State
	holder *link // link the frame is visible through, nil while suspended
	home   *link // link of the owning WithContext call
}

func (f *frame) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *frame) visibleAt(l *link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holder == l
}

// NewTask returns ctx detached from any enclosing frames.
func NewTask(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, linkKey{}, (*link)(nil))
}

func linkFrom(ctx context.Context) *link {
	if ctx == nil {
		return nil
	}
	l, _ := ctx.Value(linkKey{}).(*link)
	return l
}

func frameFrom(ctx context.Context) *frame {
	if l := linkFrom(ctx); l != nil {
		return l.f
	}
	return nil
}

// WithContext pushes ec on the task carried by ctx, runs body, and pops
// ec when body returns, fails, panics or is cancelled.
func WithContext(ctx context.Context, ec *domain.ExecutionContext, body func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := &frame{ec: ec, state: Idle}
	l := &link{f: f, parent: linkFrom(ctx)}

	f.mu.Lock()
	f.state = Pushed
	f.holder = l
	f.home = l
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.holder = nil
		f.state = Popped
		f.mu.Unlock()
	}()

	return body(context.WithValue(ctx, linkKey{}, l))
}

// Current returns the innermost visible execution context of the task in
// ctx. Suspended frames and frames resumed elsewhere are skipped.
func Current(ctx context.Context) (*domain.ExecutionContext, bool) {
	for l := linkFrom(ctx); l != nil; l = l.parent {
		if l.f.visibleAt(l) {
			return l.f.ec, true
		}
	}
	return nil, false
}

// Depth returns the number of visible frames on the task in ctx.
func Depth(ctx context.Context) int {
	n := 0
	for l := linkFrom(ctx); l != nil; l = l.parent {
		if l.f.visibleAt(l) {
			n++
		}
	}
	return n
}

// StateOf returns the state of the frame WithContext installed in ctx.
func StateOf(ctx context.Context) State {
	f := frameFrom(ctx)
	if f == nil {
		return Idle
	}
	return f.State()
}
