package completions

import (
	"fmt"
	"io"
)

// generators maps each shell to its script template.
var generators = map[Shell]func(bin string) string{
	ShellBash: GenerateBash,
	ShellZsh:  GenerateZsh,
	ShellFish: GenerateFish,
}

// PrintCompletions writes the completion script for shell to w.
func PrintCompletions(w io.Writer, shell Shell) error {
	gen, ok := generators[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
	}
	_, err := io.WriteString(w, gen(GetBinaryName()))
	return err
}
