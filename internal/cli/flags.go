package cli

import (
	"github.com/spf13/pflag"

	"github.com/footprint-tools/cmdcore/internal/ui"
)

// GlobalFlags are accepted by every subcommand of the binary.
type GlobalFlags struct {
	NoColor bool
	NoPager bool
	Pager   string
	As      string
	Perms   []string
}

// Bind registers the global flags on fs.
func (g *GlobalFlags) Bind(fs *pflag.FlagSet) {
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&g.NoPager, "no-pager", false, "Do not use pager for output")
	fs.StringVar(&g.Pager, "pager", "", "Use specified pager for this command")
	fs.StringVar(&g.As, "as", "", "Dispatch as this caller instead of the configured one")
	fs.StringSliceVar(&g.Perms, "perm", nil, "Grant a permission node to the caller (repeatable)")
}

// ValueFlags names the global flags that take a value, for shell completion.
func ValueFlags() map[string]bool {
	return map[string]bool{"--pager": true, "--as": true, "--perm": true}
}

// WriterOptions translates the pager flags.
func (g GlobalFlags) WriterOptions() []ui.WriterOption {
	var opts []ui.WriterOption
	if g.NoPager {
		opts = append(opts, ui.WithPagerDisabled())
	}
	if g.Pager != "" {
		opts = append(opts, ui.WithPagerOverride(g.Pager))
	}
	return opts
}
