package cli

import (
	"strings"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
	"github.com/footprint-tools/cmdcore/internal/world"
)

var (
	PlayerArg = dispatchers.Described(
		dispatchers.Arg("player", "player"),
		"An online player",
	)

	TargetArg = dispatchers.Described(
		dispatchers.Arg("target", "player"),
		"Player to teleport",
	)

	DestinationArg = dispatchers.Described(
		dispatchers.Arg("destination", "location"),
		"x y z coordinates, ~ for relative",
	)

	ItemArg = dispatchers.Described(
		dispatchers.Arg("item", "item"),
		"Item to hand out",
	)

	AmountArg = withConditions(dispatchers.Completed(dispatchers.Described(
		dispatchers.OptionalArg("amount", "int", "1"),
		"How many, 1 to 64",
	), "@range:1-8|16|32|64"), "limits=min=1,max=64")

	GameModeArg = dispatchers.Described(
		dispatchers.Flagged(dispatchers.Arg("mode", "enum"), "values="+strings.Join(world.GameModes, "|")),
		"Game mode",
	)

	OptionalPlayerArg = dispatchers.Completed(dispatchers.Described(
		dispatchers.OptionalArg("player", "player", ""),
		"Player to change, yourself by default",
	), "@players")

	MessageArg = dispatchers.Described(
		dispatchers.Arg("message", "text"),
		"What to say",
	)

	SelfArg = dispatchers.Arg("self", "issuer")

	DurationArg = dispatchers.Described(
		dispatchers.Flagged(dispatchers.Arg("duration", "duration"), "max=1h"),
		"How long to wait, e.g. 5s",
	)

	ConfigKeyArg = dispatchers.Described(
		dispatchers.Arg("key", "configkey"),
		"Configuration key",
	)

	ConfigValueArg = dispatchers.Described(
		dispatchers.Arg("value", "text"),
		"Value to assign",
	)

	ThemeNameArg = dispatchers.Described(
		dispatchers.Flagged(dispatchers.Arg("theme", "enum"),
			"values="+strings.Join(append(append([]string{}, style.BaseThemeNames...), style.ThemeNames...), "|")),
		"Theme name (e.g., default-dark, neon-light)",
	)

	HistoryLimitArg = withConditions(dispatchers.Completed(dispatchers.Described(
		dispatchers.OptionalArg("limit", "int", "20"),
		"How many entries to show",
	), "10|20|50|100|@empty"), "limits=min=1,max=500")

	HistoryCommandArg = dispatchers.Described(
		dispatchers.OptionalArg("command", "text", ""),
		"Only show this command",
	)

	LogLimitArg = withConditions(dispatchers.Described(
		dispatchers.OptionalArg("limit", "int", "50"),
		"How many lines to show",
	), "limits=min=1")

	LogLevelArg = dispatchers.Described(
		dispatchers.Flagged(dispatchers.OptionalArg("level", "enum", ""), "values=debug|info|warn|error"),
		"Lowest level to show",
	)

	HelpQueryArg = dispatchers.Described(
		dispatchers.OptionalArg("query", "text", ""),
		"Command or search words, optionally followed by a page number",
	)
)

func withConditions(p domain.Parameter, conds ...string) domain.Parameter {
	p.Conditions = append(p.Conditions, conds...)
	return p
}
