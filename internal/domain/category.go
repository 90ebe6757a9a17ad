package domain

// CommandCategory groups commands in help output.
type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryGetStarted                    // help, whoami
	CategoryPlayers                       // give, gamemode
	CategoryWorld                         // teleport, wait
	CategoryChat                          // say
	CategoryConfig                        // config get/set/list
	CategoryPlumbing                      // history
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryGetStarted:
		return "get started"
	case CategoryPlayers:
		return "manage players"
	case CategoryWorld:
		return "move around the world"
	case CategoryChat:
		return "talk to others"
	case CategoryConfig:
		return "configure cmdcore"
	case CategoryPlumbing:
		return "low-level commands (plumbing)"
	default:
		return "other commands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryGetStarted,
	CategoryPlayers,
	CategoryWorld,
	CategoryChat,
	CategoryConfig,
	CategoryPlumbing,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []CommandCategory {
	return categoryOrder
}

// ParseCategory maps a category name used in manifests to a CommandCategory.
// Unknown names map to CategoryUncategorized.
func ParseCategory(name string) CommandCategory {
	switch name {
	case "start", "get started":
		return CategoryGetStarted
	case "players":
		return CategoryPlayers
	case "world":
		return CategoryWorld
	case "chat":
		return CategoryChat
	case "config":
		return CategoryConfig
	case "plumbing":
		return CategoryPlumbing
	default:
		return CategoryUncategorized
	}
}
