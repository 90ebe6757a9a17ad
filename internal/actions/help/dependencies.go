// Package help holds the handler of the help command.
package help

import (
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
)

// Source lists help entries visible to a caller.
type Source interface {
	HelpEntries(caller domain.Issuer, path ...string) []dispatchers.HelpEntry
}

// DefaultPerPage is how many entries one help page shows.
const DefaultPerPage = 10

type Deps struct {
	Source  Source
	PerPage int
}
