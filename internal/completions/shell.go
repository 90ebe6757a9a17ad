package completions

import (
	"os"
	"path/filepath"
	"strings"
)

// Shell names a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ParseShell validates a shell name.
func ParseShell(name string) (Shell, bool) {
	for _, s := range Shells {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// RunningShell guesses the user's shell from $SHELL.
func RunningShell() Shell {
	s, _ := ParseShell(filepath.Base(os.Getenv("SHELL")))
	return s
}

var bashCompletionDirs = []string{
	"/usr/share/bash-completion/bash_completion",
	"/etc/bash_completion",
	"/usr/local/etc/profile.d/bash_completion.sh",
	"/opt/homebrew/etc/profile.d/bash_completion.sh",
}

// IsBashCompletionInstalled reports whether the bash-completion package is
// present, which is what loads ~/.local/share/bash-completion.
func IsBashCompletionInstalled() bool {
	for _, p := range bashCompletionDirs {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
