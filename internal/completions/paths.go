package completions

import (
	"fmt"
	"os"
	"path/filepath"
)

// setup is how a shell loads completions.
type setup struct {
	rc     string
	source string // format with the binary path and shell
	// autoload returns the directory the shell scans on start, or "".
	autoload func(home, bin string) string
}

var setups = map[Shell]setup{
	ShellBash: {
		rc:     "~/.bashrc",
		source: `eval "$(%s completion %s)"`,
		autoload: func(home, bin string) string {
			if !IsBashCompletionInstalled() {
				return ""
			}
			return filepath.Join(home, ".local", "share", "bash-completion", "completions", bin)
		},
	},
	ShellZsh: {
		rc:     "~/.zshrc",
		source: `eval "$(%s completion %s)"`,
	},
	ShellFish: {
		rc:     "~/.config/fish/config.fish",
		source: `%s completion %s | source`,
		autoload: func(home, bin string) string {
			return filepath.Join(home, ".config", "fish", "completions", bin+".fish")
		},
	},
}

// SourceInstructions is the rc file line that loads completions for shell.
func SourceInstructions(shell Shell) string {
	s, ok := setups[shell]
	if !ok {
		return ""
	}
	return fmt.Sprintf(s.source, GetBinaryPath(), shell)
}

// RcFile is the startup file of shell, "" when unknown.
func RcFile(shell Shell) string {
	return setups[shell].rc
}

// AutoInstallPath is where a script is picked up without editing the rc
// file, or "" when shell has no such place.
func AutoInstallPath(shell Shell) string {
	s, ok := setups[shell]
	if !ok || s.autoload == nil {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return s.autoload(home, GetBinaryName())
}
