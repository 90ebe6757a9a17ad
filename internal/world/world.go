// Package world is the in-memory game server the demo commands act on.
package world

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Location is a point in the world.
type Location struct {
	X, Y, Z float64
}

func (l Location) String() string {
	return fmt.Sprintf("%g %g %g", l.X, l.Y, l.Z)
}

// GameModes lists the accepted gamemode values.
var GameModes = []string{"survival", "creative", "adventure", "spectator"}

// Items is the item catalog.
var Items = []string{"dirt", "stone", "diamond", "torch", "bread", "iron_sword", "oak_log"}

// Player is a snapshot of one online player.
type Player struct {
	Name      string
	Location  Location
	Mode      string
	Inventory map[string]int64
}

// World holds the online players. It is safe for concurrent use.
type World struct {
	mu      sync.RWMutex
	players map[string]*Player
}

// New returns a world with the given players online at the origin.
func New(names ...string) *World {
	w := &World{players: make(map[string]*Player)}
	for _, name := range names {
		w.Join(name)
	}
	return w
}

// Demo returns the world the cmdcore binary starts with.
func Demo() *World {
	w := New("Steve", "Alex", "steve the builder")
	_ = w.Teleport("Alex", Location{X: 100, Y: 64, Z: -20})
	return w
}

// key folds name. A Caser keeps state, so each call gets its own.
func (w *World) key(name string) string {
	return cases.Fold().String(name)
}

// Join puts name online. Joining twice keeps the existing player.
func (w *World) Join(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[w.key(name)]; ok {
		return
	}
	w.players[w.key(name)] = &Player{Name: name, Mode: GameModes[0], Inventory: map[string]int64{}}
}

// Online returns the names of every online player, sorted.
func (w *World) Online() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.players))
	for _, p := range w.players {
		names = append(names, p.Name)
	}
	slices.SortFunc(names, func(a, b string) int { return strings.Compare(w.key(a), w.key(b)) })
	return names
}

// Find returns a snapshot of the player called name, case-insensitively.
func (w *World) Find(name string) (Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[w.key(name)]
	if !ok {
		return Player{}, false
	}
	snap := *p
	snap.Inventory = make(map[string]int64, len(p.Inventory))
	for k, v := range p.Inventory {
		snap.Inventory[k] = v
	}
	return snap, true
}

func (w *World) update(name string, fn func(p *Player)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[w.key(name)]
	if !ok {
		return fmt.Errorf("%s is not online", name)
	}
	fn(p)
	return nil
}

// Give adds amount of item to name's inventory and returns the new count.
func (w *World) Give(name, item string, amount int64) (int64, error) {
	var total int64
	err := w.update(name, func(p *Player) {
		p.Inventory[item] += amount
		total = p.Inventory[item]
	})
	return total, err
}

// Teleport moves name to loc.
func (w *World) Teleport(name string, loc Location) error {
	return w.update(name, func(p *Player) { p.Location = loc })
}

// SetMode changes name's gamemode.
func (w *World) SetMode(name, mode string) error {
	return w.update(name, func(p *Player) { p.Mode = mode })
}

// IsItem reports whether item is in the catalog.
func IsItem(item string) bool {
	return slices.Contains(Items, item)
}
