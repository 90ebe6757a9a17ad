// Package cli declares the cmdcore command set: its commands, argument
// types, conditions and the global flags of the binary.
package cli

import (
	"github.com/footprint-tools/cmdcore/internal/actions"
	configactions "github.com/footprint-tools/cmdcore/internal/actions/config"
	"github.com/footprint-tools/cmdcore/internal/actions/help"
	"github.com/footprint-tools/cmdcore/internal/actions/logs"
	"github.com/footprint-tools/cmdcore/internal/actions/theme"
	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/world"
)

// Deps are the collaborators of the command set.
type Deps struct {
	World   *world.World
	History domain.HistoryStore
	Help    help.Source
}

// Registrar is the part of the dispatch manager the command set needs.
type Registrar interface {
	Resolvers() *resolvers.Registry
	Conditions() *conditions.Validator
	Completions() *dispatchers.Completions
	RegisterAll(defs []domain.CommandDefinition) error
}

// Install registers the world types, conditions and every command on m.
func Install(m Registrar, deps Deps) error {
	if err := RegisterResolvers(m.Resolvers(), deps.World); err != nil {
		return err
	}
	if err := RegisterConditions(m.Conditions(), deps.World); err != nil {
		return err
	}
	if err := RegisterCompletions(m.Completions(), deps.World); err != nil {
		return err
	}
	return m.RegisterAll(BuildDefinitions(deps))
}

// BuildDefinitions returns every builtin command. Overloads of one command
// are listed in the order they are tried.
func BuildDefinitions(deps Deps) []domain.CommandDefinition {
	a := actions.Deps{World: deps.World, History: deps.History}

	return []domain.CommandDefinition{
		def(dispatchers.Command("help", help.Help(deps.Help), HelpQueryArg),
			domain.CategoryGetStarted, "Show help for a command or search commands"),
		def(dispatchers.Command("version", actions.ShowVersion(a)),
			domain.CategoryGetStarted, "Show cmdcore version"),

		permitted(def(dispatchers.Command("give", actions.Give(a), PlayerArg, ItemArg, AmountArg),
			domain.CategoryPlayers, "Give items to a player"), "cmdcore.give"),
		permitted(def(dispatchers.Command("gamemode|gm", actions.GameMode(a), GameModeArg, OptionalPlayerArg),
			domain.CategoryPlayers, "Change a game mode"), "cmdcore.gamemode"),
		def(dispatchers.Command("list|online", actions.List(a)),
			domain.CategoryPlayers, "Show who is online"),

		online(def(dispatchers.Command("teleport|tp", actions.TeleportToPlayer(a), TargetArg),
			domain.CategoryWorld, "Teleport to another player")),
		online(def(dispatchers.Command("teleport|tp", actions.TeleportToLocation(a), DestinationArg),
			domain.CategoryWorld, "Teleport to a location")),
		permitted(def(dispatchers.Command("teleport|tp", actions.TeleportToLocation(a), TargetArg, DestinationArg),
			domain.CategoryWorld, "Teleport a player to a location"), "cmdcore.teleport.others"),

		def(dispatchers.Command("say", actions.Say(a), MessageArg),
			domain.CategoryChat, "Send a chat message"),
		def(dispatchers.Command("whoami", actions.WhoAmI(a), SelfArg),
			domain.CategoryChat, "Show who you are"),

		def(dispatchers.Command("config get", configactions.Get(), ConfigKeyArg),
			domain.CategoryConfig, "Show a setting"),
		permitted(def(dispatchers.Command("config set", configactions.Set(), ConfigKeyArg, ConfigValueArg),
			domain.CategoryConfig, "Change a setting"), "cmdcore.config"),
		permitted(def(dispatchers.Command("config unset", configactions.Unset(), ConfigKeyArg),
			domain.CategoryConfig, "Remove a setting"), "cmdcore.config"),
		permitted(def(dispatchers.Command("config reset", configactions.Reset()),
			domain.CategoryConfig, "Remove every setting"), "cmdcore.config"),
		def(dispatchers.Command("config list", configactions.List()),
			domain.CategoryConfig, "List every setting"),
		def(dispatchers.Command("theme list", theme.List()),
			domain.CategoryConfig, "List color themes"),
		def(dispatchers.Command("theme set", theme.Set(), ThemeNameArg),
			domain.CategoryConfig, "Change the color theme"),

		def(dispatchers.Command("wait", actions.Wait(a), DurationArg),
			domain.CategoryPlumbing, "Suspend, then finish on another task"),
		def(dispatchers.Command("history", actions.History(a), HistoryLimitArg, HistoryCommandArg),
			domain.CategoryPlumbing, "Show recent dispatches"),
		def(dispatchers.Command("logs show", logs.Show(), LogLimitArg, LogLevelArg),
			domain.CategoryPlumbing, "Show the end of the log file"),
		def(dispatchers.Command("logs follow", logs.Follow()),
			domain.CategoryPlumbing, "Stream the log file"),
		permitted(def(dispatchers.Command("logs clear", logs.Clear()),
			domain.CategoryPlumbing, "Empty the log file"), "cmdcore.logs"),
	}
}

func def(d domain.CommandDefinition, cat domain.CommandCategory, description string) domain.CommandDefinition {
	d.Category = cat
	d.Description = description
	return d
}

func permitted(d domain.CommandDefinition, node string) domain.CommandDefinition {
	d.Permission = node
	return d
}

func online(d domain.CommandDefinition) domain.CommandDefinition {
	d.Conditions = append(d.Conditions, "online")
	return d
}

// Handlers are the handlers a manifest may name.
func Handlers(deps Deps) map[string]domain.Handler {
	a := actions.Deps{World: deps.World, History: deps.History}
	return map[string]domain.Handler{
		"give":     actions.Give(a),
		"gamemode": actions.GameMode(a),
		"list":     actions.List(a),
		"say":      actions.Say(a),
		"whoami":   actions.WhoAmI(a),
		"teleport": actions.TeleportToLocation(a),
		"wait":     actions.Wait(a),
		"history":  actions.History(a),
		"version":  actions.ShowVersion(a),
	}
}
