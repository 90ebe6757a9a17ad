package dispatchers

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/tokens"
)

// Completion lists values that may replace raw[Start:End].
type Completion struct {
	Start  int
	End    int
	Prefix string
	Items  []string
}

// Complete returns ranked completions for the token under cursor.
func (m *Manager) Complete(ctx context.Context, caller domain.Issuer, raw string, cursor int) []string {
	return m.CompleteSpan(ctx, caller, raw, cursor).Items
}

// CompleteSpan is Complete plus the byte span the items replace. It only
// reads the tree and calls resolvers, never handlers or conditions.
func (m *Manager) CompleteSpan(ctx context.Context, caller domain.Issuer, raw string, cursor int) Completion {
	if cursor < 0 || cursor > len(raw) {
		cursor = len(raw)
	}
	line := raw[:cursor]
	toks := tokens.Tokenize(line)

	c := Completion{Start: cursor, End: cursor}
	done := tokens.Texts(toks)
	if tokens.Partial(line, toks) {
		last := toks[len(toks)-1]
		c.Prefix = last.Text
		c.Start = last.Start
		done = done[:len(done)-1]
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	tree := m.snapshot()

	node, consumed := tree.Lookup(done)
	if consumed == 0 && len(done) > 0 {
		return c
	}

	var values []string
	if consumed == len(done) {
		values = append(values, aliasCandidates(node, caller, c.Prefix)...)
	}
	if node.Executable() {
		values = append(values, tree.paramSuggestions(ctx, m.completions, node, done[consumed:], c.Prefix, caller)...)
	}

	c.Items = rankCompletions(values, c.Prefix)
	return c
}

// aliasCandidates lists primary names of visible children, or every alias
// once the user has typed something.
func aliasCandidates(node *DispatchNode, caller domain.Issuer, prefix string) []string {
	var out []string
	for _, child := range node.order {
		if !child.visibleTo(caller, conditions.Permitted) {
			continue
		}
		if prefix == "" {
			out = append(out, child.Name)
			continue
		}
		out = append(out, child.Aliases...)
	}
	return out
}

func (t *Tree) paramSuggestions(ctx context.Context, comps *Completions, node *DispatchNode, args []string, prefix string, caller domain.Issuer) []string {
	var out []string
	for _, o := range node.Overloads {
		if o.Def.Hidden || !conditions.Permitted(caller, o.Def) {
			continue
		}
		p, index, bound, ok := t.cursorParam(ctx, o, args, caller)
		if !ok {
			continue
		}
		out = append(out, paramCompletions(ctx, t.resolvers, comps, resolvers.SuggestRequest{
			Param:  p,
			Prefix: prefix,
			Index:  index,
			Caller: caller,
			Bound:  bound,
		})...)
	}
	return out
}

// cursorParam replays binding of args against o and returns the parameter
// the next token belongs to. ok is false when o cannot take the input.
func (t *Tree) cursorParam(ctx context.Context, o *Overload, args []string, caller domain.Issuer) (domain.Parameter, int, []domain.BoundArg, bool) {
	idx := 0
	var bound []domain.BoundArg

	for i, p := range o.Def.Params {
		a := o.Arities[i]
		if !a.ConsumesInput() {
			if v, _, fail := t.resolvers.Resolve(ctx, p, nil, caller, bound); fail == nil {
				bound = append(bound, domain.BoundArg{Name: p.Name, Value: v})
			}
			continue
		}

		left := len(args) - idx
		if a.Kind == resolvers.ArityRest || left < a.N {
			return p, left, bound, true
		}

		v, n, fail := t.resolvers.Resolve(ctx, p, args[idx:], caller, bound)
		if fail != nil {
			return domain.Parameter{}, 0, nil, false
		}
		bound = append(bound, domain.BoundArg{Name: p.Name, Value: v, Raw: args[idx : idx+n]})
		idx += n
	}
	return domain.Parameter{}, 0, nil, false
}

type completion struct {
	Value string
	Score int
}

// rankCompletions keeps prefix matches ordered by score, falling back to
// fuzzy matches when nothing starts with prefix. Values are quoted so
// they can be typed back as one token.
func rankCompletions(values []string, prefix string) []string {
	seen := make(map[string]bool, len(values))
	unique := values[:0:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}

	folded := resolvers.Fold(prefix)
	var matched []completion
	for _, v := range unique {
		if strings.HasPrefix(resolvers.Fold(v), folded) {
			matched = append(matched, completion{Value: v, Score: calculateScore(v, prefix)})
		}
	}

	var out []string
	if len(matched) > 0 || prefix == "" {
		sortCompletions(matched)
		for _, c := range matched {
			out = append(out, tokens.Quote(c.Value))
		}
		return out
	}

	ranks := fuzzy.RankFindFold(prefix, unique)
	sort.Sort(ranks)
	for _, r := range ranks {
		out = append(out, tokens.Quote(r.Target))
	}
	return out
}

// calculateScore favours exact and short prefix matches.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	// Exact match
	if value == partial {
		return score + 100
	}

	// Prefix match bonus
	if strings.HasPrefix(value, partial) {
		score += 50
		// Bonus for shorter completions
		score += 20 - len(value)
	}

	// Length penalty
	score -= len(value) / 2

	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []completion) {
	sort.SliceStable(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
