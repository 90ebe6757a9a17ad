// Package actions holds the handlers of the demo command set.
package actions

import (
	"time"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/world"
)

// Version is the binary version, set by the build.
var Version = "dev"

type actionDependencies struct {
	World   *world.World
	History domain.HistoryStore
	Version func() string
	Now     func() time.Time
	After   func(d time.Duration) <-chan time.Time
}

// Deps are the collaborators the handlers use.
type Deps struct {
	World   *world.World
	History domain.HistoryStore
}

func (d Deps) resolve() actionDependencies {
	return actionDependencies{
		World:   d.World,
		History: d.History,
		Version: func() string { return Version },
		Now:     time.Now,
		After:   time.After,
	}
}
