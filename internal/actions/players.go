package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/world"
)

// Give adds items to a player's inventory.
func Give(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		player := ec.String("player")
		item := ec.String("item")
		amount := ec.Int("amount", 1)

		total, err := deps.World.Give(player, item, amount)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("Gave %d %s to %s (now %d)", amount, item, player, total), nil
	})
}

// TeleportToPlayer moves the caller next to another player.
func TeleportToPlayer(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		target, ok := deps.World.Find(ec.String("target"))
		if !ok {
			return nil, fmt.Errorf("%s went offline", ec.String("target"))
		}
		if err := deps.World.Teleport(ec.CallerName(), target.Location); err != nil {
			return nil, err
		}
		return fmt.Sprintf("Teleported %s to %s", ec.CallerName(), target.Name), nil
	})
}

// TeleportToLocation moves a player, the caller by default, to coordinates.
func TeleportToLocation(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		v, _ := ec.Arg("destination")
		loc, ok := v.(world.Location)
		if !ok {
			return nil, errors.New("destination is not a location")
		}
		player := ec.String("target")
		if player == "" {
			player = ec.CallerName()
		}
		if err := deps.World.Teleport(player, loc); err != nil {
			return nil, err
		}
		return fmt.Sprintf("Teleported %s to %s", player, loc), nil
	})
}

// GameMode changes a player's gamemode. Without a player argument the
// caller's own gamemode changes.
func GameMode(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		mode := ec.String("mode")
		player := ec.String("player")
		if player == "" {
			player = ec.CallerName()
		}
		if err := deps.World.SetMode(player, mode); err != nil {
			return nil, err
		}
		return fmt.Sprintf("Set %s's game mode to %s", player, mode), nil
	})
}

// List shows who is online.
func List(d Deps) domain.Handler {
	deps := d.resolve()
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		online := deps.World.Online()
		return fmt.Sprintf("%d player(s) online: %s", len(online), strings.Join(online, ", ")), nil
	})
}
