package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/paths"
)

// WriteLines replaces the config file with lines, one per line.
func WriteLines(lines []string) error {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}
	var data string
	if len(lines) > 0 {
		data = strings.Join(lines, "\n") + "\n"
	}
	return writeAtomic(path, []byte(data), 0600)
}

// writeAtomic writes data to a temporary sibling of path and renames it
// into place, so readers see either the old file or the new one.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Edit runs fn on the current config lines while holding the config lock and
// writes the result back when fn reports a change.
func Edit(fn func(lines []string) ([]string, bool)) error {
	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}
		out, changed := fn(lines)
		if !changed {
			return nil
		}
		return WriteLines(out)
	})
}
