// Package logs holds the handlers of the logs command group.
package logs

import (
	"io"
	"os"
	"time"

	"github.com/footprint-tools/cmdcore/internal/paths"
)

type Deps struct {
	Path func() string
	// Out receives followed lines as they arrive.
	Out  io.Writer
	Poll time.Duration
}

func DefaultDeps() Deps {
	return Deps{Path: paths.LogFilePath, Out: os.Stdout, Poll: 500 * time.Millisecond}
}
