package dispatchers

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// maxTypoDistance is the largest edit distance still reported as a typo.
const maxTypoDistance = 3

func levenshtein(a, b string) int {
	return fuzzy.LevenshteinDistance(strings.ToLower(a), strings.ToLower(b))
}

type candidate struct {
	name string
	dist int
}

// FindSimilarCommands returns up to limit visible aliases under node that
// look like input: near typos first, then fuzzy subsequence matches when no
// alias is within maxTypoDistance.
func FindSimilarCommands(input string, node *DispatchNode, limit int) []string {
	if node == nil || input == "" {
		return nil
	}

	aliases := visibleAliases(node)
	var found []candidate
	for _, name := range aliases {
		if d := levenshtein(input, name); d > 0 && d <= maxTypoDistance {
			found = append(found, candidate{name, d})
		}
	}
	if len(found) == 0 {
		for _, r := range fuzzy.RankFindFold(input, aliases) {
			found = append(found, candidate{r.Target, r.Distance})
		}
	}

	slices.SortFunc(found, func(x, y candidate) int {
		return cmp.Or(cmp.Compare(x.dist, y.dist), strings.Compare(x.name, y.name))
	})

	var names []string
	for _, c := range found[:min(len(found), limit)] {
		names = append(names, c.name)
	}
	return names
}

func visibleAliases(node *DispatchNode) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, child := range node.order {
		if !child.visibleTo(nil, anyCaller) {
			continue
		}
		for _, alias := range child.Aliases {
			if _, dup := seen[alias]; !dup {
				seen[alias] = struct{}{}
				out = append(out, alias)
			}
		}
	}
	return out
}

// anyCaller ignores permissions so only hidden commands are skipped.
func anyCaller(domain.Issuer, *domain.CommandDefinition) bool { return true }

// CollectAllCommands lists the space-joined primary path of every executable
// node below node, depth first.
func CollectAllCommands(node *DispatchNode, prefix string) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, child := range node.order {
		path := strings.TrimSpace(prefix + " " + child.Name)
		if child.Executable() {
			out = append(out, path)
		}
		out = append(out, CollectAllCommands(child, path)...)
	}
	return out
}
