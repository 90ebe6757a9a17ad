package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string

	// Command categories in help and completion listings.
	Players       string
	World         string
	Chat          string
	Configuration string
	Plumbing      string
	Other         string

	Prompt string // console prompt and selected suggestion
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{
	"default",
	"neon",
	"aurora",
	"mono",
	"ocean",
	"sunset",
	"candy",
	"contrast",
}

// ThemeNames lists all themes with explicit dark/light variants.
var ThemeNames = []string{
	"default-dark", "default-light",
	"neon-dark", "neon-light",
	"aurora-dark", "aurora-light",
	"mono-dark", "mono-light",
	"ocean-dark", "ocean-light",
	"sunset-dark", "sunset-light",
	"candy-dark", "candy-light",
	"contrast-dark", "contrast-light",
}

// Themes contains the built-in color themes.
// Dark themes use BRIGHT colors (high contrast on dark backgrounds).
// Light themes use DARK colors (high contrast on light/white backgrounds).
var Themes = map[string]ColorConfig{
	// Classic dark - traditional bright terminal colors for dark backgrounds.
	// Uses the standard 16-color palette for maximum compatibility.
	"default-dark": {
		Success:       "10",  // bright green
		Warning:       "11",  // bright yellow
		Error:         "9",   // bright red
		Info:          "14",  // bright cyan
		Muted:         "245", // medium gray
		Header:        "bold",
		Players:       "10", // bright green
		World:         "13", // bright magenta
		Chat:          "12", // bright blue
		Configuration: "14", // bright cyan
		Plumbing:      "11", // bright yellow
		Other:         "8",  // dark gray
		Prompt:        "15", // white
	},

	// Classic light - dark saturated colors for light/white backgrounds.
	// Each color is dark enough to contrast with white text background.
	"default-light": {
		Success:       "28",  // dark green
		Warning:       "130", // dark orange
		Error:         "124", // dark red
		Info:          "27",  // dark blue
		Muted:         "243", // medium-dark gray
		Header:        "bold",
		Players:       "28",  // dark green
		World:         "90",  // dark magenta
		Chat:          "27",  // dark blue
		Configuration: "30",  // dark cyan
		Plumbing:      "130", // dark orange
		Other:         "240", // dark gray
		Prompt:        "235", // near black
	},

	// Neon dark - vivid saturated colors, cyberpunk aesthetic.
	// High-contrast bright colors that pop on dark backgrounds.
	"neon-dark": {
		Success:       "48",  // bright teal
		Warning:       "220", // gold
		Error:         "197", // hot pink
		Info:          "51",  // electric cyan
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "46",  // neon green
		World:         "201", // hot magenta
		Chat:          "39",  // deep sky blue
		Configuration: "51",  // cyan
		Plumbing:      "226", // yellow
		Other:         "242", // gray
		Prompt:        "231", // white
	},

	// Neon light - deep saturated colors for light backgrounds.
	// Rich jewel tones that remain vibrant but readable.
	"neon-light": {
		Success:       "29",  // deep teal
		Warning:       "166", // dark orange
		Error:         "161", // dark pink
		Info:          "32",  // deep blue
		Muted:         "245", // gray
		Header:        "bold",
		Players:       "28",  // forest green
		World:         "127", // dark magenta
		Chat:          "26",  // navy
		Configuration: "37",  // teal
		Plumbing:      "166", // dark orange
		Other:         "241", // gray
		Prompt:        "236", // dark gray
	},

	// Aurora dark - northern lights inspired palette for dark backgrounds.
	// Dreamy purples, teals, and soft pinks.
	"aurora-dark": {
		Success:       "121", // mint green
		Warning:       "222", // soft gold
		Error:         "204", // salmon pink
		Info:          "147", // lavender
		Muted:         "246", // light gray
		Header:        "bold",
		Players:       "121", // mint
		World:         "183", // orchid
		Chat:          "111", // sky blue
		Configuration: "123", // turquoise
		Plumbing:      "222", // gold
		Other:         "245", // gray
		Prompt:        "189", // light lavender
	},

	// Aurora light - deep jewel tones for light backgrounds.
	// Rich purples, teals, and magentas with good contrast.
	"aurora-light": {
		Success:       "30",  // dark teal
		Warning:       "136", // amber
		Error:         "125", // dark magenta
		Info:          "62",  // purple
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "30",  // dark teal
		World:         "133", // medium orchid
		Chat:          "61",  // slate blue
		Configuration: "37",  // teal
		Plumbing:      "136", // amber
		Other:         "241", // dark gray
		Prompt:        "96",  // plum
	},

	// Mono dark - minimalist grayscale with cyan accent.
	// Clean, distraction-free aesthetic.
	"mono-dark": {
		Success:       "50",  // cyan (the one accent)
		Warning:       "229", // pale yellow
		Error:         "210", // light red
		Info:          "50",  // cyan
		Muted:         "245", // gray
		Header:        "bold",
		Players:       "50",  // cyan
		World:         "251", // light gray
		Chat:          "248", // gray
		Configuration: "50",  // cyan
		Plumbing:      "229", // pale yellow
		Other:         "243", // dim gray
		Prompt:        "255", // white
	},

	// Mono light - minimalist grayscale with teal accent.
	// Clean, professional look for light backgrounds.
	"mono-light": {
		Success:       "30",  // dark teal (the one accent)
		Warning:       "136", // amber
		Error:         "124", // dark red
		Info:          "30",  // dark teal
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "30",  // teal
		World:         "241", // dark gray
		Chat:          "244", // gray
		Configuration: "30",  // teal
		Plumbing:      "136", // amber
		Other:         "247", // light gray
		Prompt:        "235", // near black
	},

	// Ocean dark - cool blues and teals, like deep water.
	// Unified aquatic palette.
	"ocean-dark": {
		Success:       "43",  // turquoise
		Warning:       "221", // light gold
		Error:         "174", // light coral
		Info:          "75",  // sky blue
		Muted:         "245", // gray
		Header:        "bold",
		Players:       "43",  // turquoise
		World:         "105", // slate blue
		Chat:          "75",  // sky blue
		Configuration: "80",  // medium turquoise
		Plumbing:      "221", // gold
		Other:         "67",  // steel blue
		Prompt:        "159", // light cyan
	},

	// Ocean light - deep sea colors for light backgrounds.
	// Navy, teal, and deep blues.
	"ocean-light": {
		Success:       "30",  // dark cyan
		Warning:       "130", // dark orange
		Error:         "124", // dark red
		Info:          "25",  // dark blue
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "30",  // dark cyan
		World:         "61",  // slate blue
		Chat:          "25",  // dark blue
		Configuration: "37",  // teal
		Plumbing:      "130", // dark orange
		Other:         "66",  // grayish cyan
		Prompt:        "17",  // navy
	},

	// Sunset dark - warm gradient from orange to magenta to purple.
	// Dusk vibes.
	"sunset-dark": {
		Success:       "216", // light salmon
		Warning:       "221", // light goldenrod
		Error:         "204", // hot pink
		Info:          "183", // plum
		Muted:         "245", // gray
		Header:        "bold",
		Players:       "216", // salmon
		World:         "213", // orchid
		Chat:          "183", // plum
		Configuration: "209", // coral
		Plumbing:      "221", // gold
		Other:         "139", // dusty rose
		Prompt:        "224", // misty rose
	},

	// Sunset light - deep warm tones for light backgrounds.
	// Rich oranges, magentas, and purples.
	"sunset-light": {
		Success:       "166", // dark orange
		Warning:       "136", // dark goldenrod
		Error:         "125", // dark pink
		Info:          "90",  // dark magenta
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "166", // dark orange
		World:         "127", // medium violet
		Chat:          "90",  // dark magenta
		Configuration: "130", // dark coral
		Plumbing:      "136", // dark gold
		Other:         "95",  // dusty purple
		Prompt:        "52",  // dark red
	},

	// Candy dark - sweet pastel colors on dark background.
	// Playful and soft.
	"candy-dark": {
		Success:       "158", // mint
		Warning:       "222", // light peach
		Error:         "211", // light pink
		Info:          "153", // baby blue
		Muted:         "250", // light gray
		Header:        "bold",
		Players:       "158", // mint
		World:         "218", // pink
		Chat:          "153", // baby blue
		Configuration: "158", // aquamarine
		Plumbing:      "222", // peach
		Other:         "188", // light lavender
		Prompt:        "231", // white
	},

	// Candy light - deeper candy colors for light backgrounds.
	// Still playful but readable.
	"candy-light": {
		Success:       "36",  // dark mint
		Warning:       "172", // dark peach
		Error:         "168", // dark pink
		Info:          "68",  // medium blue
		Muted:         "244", // gray
		Header:        "bold",
		Players:       "36",  // dark mint
		World:         "132", // medium orchid
		Chat:          "68",  // medium blue
		Configuration: "73",  // cadet blue
		Plumbing:      "172", // dark peach
		Other:         "103", // medium purple
		Prompt:        "240", // dark gray
	},

	// Contrast dark - maximum readability with pure primaries.
	// High contrast, accessibility-focused.
	"contrast-dark": {
		Success:       "46",  // pure bright green
		Warning:       "226", // pure bright yellow
		Error:         "196", // pure bright red
		Info:          "51",  // pure bright cyan
		Muted:         "250", // bright gray
		Header:        "bold",
		Players:       "46",  // green
		World:         "201", // magenta
		Chat:          "21",  // blue
		Configuration: "51",  // cyan
		Plumbing:      "226", // yellow
		Other:         "245", // gray
		Prompt:        "231", // white
	},

	// Contrast light - maximum readability for light backgrounds.
	// Pure dark primaries, very accessible.
	"contrast-light": {
		Success:       "22",  // dark green
		Warning:       "130", // dark orange (yellow hard to read on white)
		Error:         "124", // dark red
		Info:          "21",  // dark blue
		Muted:         "240", // dark gray
		Header:        "bold",
		Players:       "22",  // dark green
		World:         "90",  // dark magenta
		Chat:          "19",  // dark blue
		Configuration: "30",  // dark cyan
		Plumbing:      "130", // dark orange
		Other:         "243", // gray
		Prompt:        "232", // near black
	},
}

// colorConfigKeys maps config/env key names to ColorConfig field names.
var colorConfigKeys = map[string]string{
	"color_success":  "Success",
	"color_warning":  "Warning",
	"color_error":    "Error",
	"color_info":     "Info",
	"color_muted":    "Muted",
	"color_header":   "Header",
	"color_players":  "Players",
	"color_world":    "World",
	"color_chat":     "Chat",
	"color_config":   "Configuration",
	"color_plumbing": "Plumbing",
	"color_other":    "Other",
	"color_prompt":   "Prompt",
}

// IsDarkBackground returns true if the terminal has a dark background.
// Uses termenv to query the terminal. Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ResolveThemeName takes a theme name and returns the full theme name.
// If the name doesn't have a -dark/-light suffix, it appends one based
// on terminal background detection.
func ResolveThemeName(name string) string {
	// If already has suffix, return as-is
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}

	// Auto-detect and append suffix
	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
// 1. Environment variable (CMDCORE_COLOR_*)
// 2. Config file value
// 3. Theme value (from the theme key, or CMDCORE_THEME)
// 4. Default theme (auto-detected based on terminal background)
func LoadColorConfig(cfg map[string]string) ColorConfig {
	// Start with auto-detected default
	themeName := ResolveThemeName("default")

	// Check env for theme override
	if envTheme := os.Getenv(envPrefix + "THEME"); envTheme != "" {
		themeName = ResolveThemeName(envTheme)
	} else if cfgTheme, ok := cfg["theme"]; ok && cfgTheme != "" {
		themeName = ResolveThemeName(cfgTheme)
	}

	// Get base theme (fall back to default-dark if unknown)
	theme, ok := Themes[themeName]
	if !ok {
		theme = Themes["default-dark"]
	}

	// Apply overrides from config and env
	result := theme

	for configKey, fieldName := range colorConfigKeys {
		// Check env first (highest priority)
		envKey := envPrefix + strings.ToUpper(configKey)
		if envVal := os.Getenv(envKey); envVal != "" {
			setColorField(&result, fieldName, envVal)
			continue
		}

		// Check config file
		if cfgVal, ok := cfg[configKey]; ok && cfgVal != "" {
			setColorField(&result, fieldName, cfgVal)
		}
	}

	return result
}

// setColorField sets a field on ColorConfig by name.
func setColorField(c *ColorConfig, field, value string) {
	switch field {
	case "Success":
		c.Success = value
	case "Warning":
		c.Warning = value
	case "Error":
		c.Error = value
	case "Info":
		c.Info = value
	case "Muted":
		c.Muted = value
	case "Header":
		c.Header = value
	case "Players":
		c.Players = value
	case "World":
		c.World = value
	case "Chat":
		c.Chat = value
	case "Configuration":
		c.Configuration = value
	case "Plumbing":
		c.Plumbing = value
	case "Other":
		c.Other = value
	case "Prompt":
		c.Prompt = value
	}
}
