package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/footprint-tools/cmdcore/internal/paths"
)

const lockFileName = ".cmdcorerc.lock"

// ErrLockTimeout is returned when another process holds the config lock
// for longer than the lock timeout.
var ErrLockTimeout = errors.New("config: lock timeout")

// fileLock is a lock file created with O_EXCL next to the config file.
// A lock file older than stale is assumed abandoned and broken.
type fileLock struct {
	timeout time.Duration
	stale   time.Duration
	poll    time.Duration
}

var configLock = fileLock{
	timeout: 5 * time.Second,
	stale:   30 * time.Second,
	poll:    50 * time.Millisecond,
}

// WithLock runs fn while holding the config lock.
func WithLock(fn func() error) error {
	return WithLockContext(context.Background(), fn)
}

// WithLockContext runs fn while holding the config lock. Waiting for the
// lock ends early when ctx is done.
func WithLockContext(ctx context.Context, fn func() error) error {
	path, err := lockPath()
	if err != nil {
		return err
	}
	release, err := configLock.acquire(ctx, path)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func lockPath() (string, error) {
	cfg, err := paths.ConfigFilePath()
	if err != nil {
		return "", err
	}
	return cfg + ".lock", nil
}

func (l fileLock) acquire(ctx context.Context, path string) (func(), error) {
	wait, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) > l.stale {
			_ = os.Remove(path)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}

		select {
		case <-wait.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
