package execctx

import (
	"context"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// Continuation holds a suspended frame until it is resumed or restored.
type Continuation struct {
	f *frame
}

// Suspend hides the frame of ctx from whichever task holds it. The
// returned continuation can resume it on any task.
func Suspend(ctx context.Context) (*Continuation, error) {
	f := frameFrom(ctx)
	if f == nil {
		return nil, ErrNoFrame
	}

	f.mu.Lock()
	switch f.state {
	case Pushed, Resumed:
	case Popped:
		f.mu.Unlock()
		return nil, ErrFramePopped
	default:
		f.mu.Unlock()
		return nil, ErrBadState
	}
	f.holder = nil
	f.state = Suspended
	f.mu.Unlock()

	return &Continuation{f: f}, nil
}

// Context returns the suspended execution context.
func (c *Continuation) Context() *domain.ExecutionContext {
	return c.f.ec
}

// State returns the frame's current state.
func (c *Continuation) State() State {
	return c.f.State()
}

// Resume pushes the frame on the task carried by ctx, runs fn, and
// suspends the frame again when fn returns.
func (c *Continuation) Resume(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := c.f
	l := &link{f: f, parent: linkFrom(ctx)}

	f.mu.Lock()
	switch f.state {
	case Suspended:
	case Popped:
		f.mu.Unlock()
		return ErrFramePopped
	default:
		f.mu.Unlock()
		return ErrBadState
	}
	f.state = Resumed
	f.holder = l
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		if f.holder == l {
			f.holder = nil
		}
		if f.state == Resumed {
			f.state = Suspended
		}
		f.mu.Unlock()
	}()

	return fn(context.WithValue(ctx, linkKey{}, l))
}

// Restore makes the frame visible again to the task it was suspended
// from, so the owning WithContext call pops it as usual.
func (c *Continuation) Restore() error {
	f := c.f

	f.mu.Lock()
	switch f.state {
	case Suspended:
	case Popped:
		f.mu.Unlock()
		return ErrFramePopped
	default:
		f.mu.Unlock()
		return ErrBadState
	}
	f.state = Pushed
	f.holder = f.home
	f.mu.Unlock()
	return nil
}
