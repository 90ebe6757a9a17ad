package completions

import (
	"fmt"
	"strings"
)

// GenerateBash returns a bash completion script for bin.
func GenerateBash(bin string) string {
	fn := funcName(bin)
	return fmt.Sprintf(`# bash completion for %[1]s
%[2]s() {
    local line="${COMP_LINE:0:COMP_POINT}"
    local IFS=$'\n'
    COMPREPLY=($(%[1]s %[3]s --cursor "${#line}" -- "$line" 2>/dev/null))
}
complete -o default -o nospace -F %[2]s %[1]s
`, bin, fn, CompleteCommand)
}

// GenerateZsh returns a zsh completion script for bin.
func GenerateZsh(bin string) string {
	fn := funcName(bin)
	return fmt.Sprintf(`#compdef %[1]s
%[2]s() {
    local line="${(j: :)words[1,CURRENT]}"
    local -a candidates
    candidates=("${(@f)$(%[1]s %[3]s --cursor "${#line}" -- "$line" 2>/dev/null)}")
    compadd -Q -- "${candidates[@]}"
}
compdef %[2]s %[1]s
`, bin, fn, CompleteCommand)
}

// GenerateFish returns a fish completion script for bin.
func GenerateFish(bin string) string {
	return fmt.Sprintf(`# fish completion for %[1]s
function __%[2]s_complete
    set -l line (commandline -cp)
    %[1]s %[3]s --cursor (string length -- "$line") -- "$line" 2>/dev/null
end
complete -c %[1]s -f -a '(__%[2]s_complete)'
`, bin, strings.TrimPrefix(funcName(bin), "_"), CompleteCommand)
}

// funcName turns a binary name into a shell function name.
func funcName(bin string) string {
	return "_" + strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, bin) + "_completions"
}
