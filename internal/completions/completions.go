// Package completions generates shell completion scripts. The scripts call
// back into the binary's hidden __dispatch command, so shells complete
// dispatch commands with the same engine the console uses.
package completions

import (
	"slices"
	"strings"
	"unicode"
)

// CompleteCommand is the hidden subcommand the scripts invoke.
const CompleteCommand = "__dispatch"

// Completer returns candidates for the dispatch line raw at cursor.
type Completer func(raw string, cursor int) []string

// Line completes a full shell command line up to cursor. The first word is
// the binary, the second a subcommand. Words after a subcommand listed in
// dispatching are a dispatch line and go to complete; flags in valueFlags
// consume the word that follows them.
func Line(line string, cursor int, subcommands []string, dispatching map[string]bool, valueFlags map[string]bool, complete Completer) []string {
	cursor = min(max(cursor, 0), len(line))
	line = line[:cursor]

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return nil
	}
	rest := strings.TrimLeftFunc(line[i:], unicode.IsSpace)

	j := strings.IndexFunc(rest, unicode.IsSpace)
	if j < 0 {
		var out []string
		for _, name := range subcommands {
			if strings.HasPrefix(name, rest) && !strings.HasPrefix(name, "__") {
				out = append(out, name)
			}
		}
		slices.Sort(out)
		return out
	}

	if !dispatching[rest[:j]] {
		return nil
	}
	args := strings.TrimLeftFunc(rest[j:], unicode.IsSpace)

	for strings.HasPrefix(args, "-") {
		word, after, found := cutWord(args)
		if !found {
			return nil
		}
		args = after
		if valueFlags[word] {
			if _, after, found = cutWord(args); !found {
				return nil
			}
			args = after
		}
	}

	return complete(args, len(args))
}

// cutWord splits off the first word. found is false while that word is
// still being typed.
func cutWord(s string) (word, rest string, found bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace), true
}
