package completions

import (
	"os"
	"path/filepath"
	"sync"
)

type binary struct{ path, name string }

// self resolves the running executable once, falling back to argv[0] and
// then to "cmdcore".
var self = sync.OnceValue(func() binary {
	path, err := os.Executable()
	if err == nil {
		if real, err := filepath.EvalSymlinks(path); err == nil {
			path = real
		}
	} else if len(os.Args) > 0 {
		path = os.Args[0]
	}
	if path == "" {
		path = "cmdcore"
	}
	return binary{path: path, name: filepath.Base(path)}
})

// GetBinaryName is the base name completions are registered for.
func GetBinaryName() string { return self().name }

// GetBinaryPath is the absolute path sourced by the shell snippets.
func GetBinaryPath() string { return self().path }
