package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// HelpEntry describes one overload for help output.
type HelpEntry struct {
	Command     string
	Syntax      string
	Description string
	Category    domain.CommandCategory
	Aliases     []string
	Params      []ParamHelp
}

// ParamHelp describes one input parameter.
type ParamHelp struct {
	Name        string
	Type        string
	Optional    bool
	Description string
}

// HelpPage is one page of help entries.
type HelpPage struct {
	Entries []HelpEntry
	Page    int // 1-based
	Pages   int
	Total   int
}

// HelpEntries lists every overload caller may run, in registration order.
// With path set, only commands at or below that path are listed.
func (m *Manager) HelpEntries(caller domain.Issuer, path ...string) []HelpEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tree := m.snapshot()
	node := tree.Root()
	if len(path) > 0 {
		node = tree.Find(path)
		if node == nil {
			return nil
		}
	}

	var overloads []*Overload
	collectOverloads(node, &overloads)
	sort.SliceStable(overloads, func(i, j int) bool { return overloads[i].Seq < overloads[j].Seq })

	entries := make([]HelpEntry, 0, len(overloads))
	for _, o := range overloads {
		if o.Def.Hidden || !conditions.Permitted(caller, o.Def) {
			continue
		}
		entries = append(entries, helpEntry(o.Def, m.resolvers))
	}
	return entries
}

func helpEntry(def *domain.CommandDefinition, reg *resolvers.Registry) HelpEntry {
	e := HelpEntry{
		Command:     def.PrimaryPath(),
		Syntax:      Syntax(def, reg),
		Description: def.Description,
		Category:    def.Category,
	}
	if n := len(def.Path); n > 0 {
		if aliases := def.Aliases(n - 1); len(aliases) > 1 {
			e.Aliases = aliases[1:]
		}
	}
	for _, p := range def.Params {
		if !reg.ConsumesInput(p) {
			continue
		}
		e.Params = append(e.Params, ParamHelp{Name: p.Name, Type: p.Type, Optional: p.Optional, Description: p.Description})
	}
	return e
}

// SearchHelp keeps entries whose command or description contains every
// word of query. When nothing matches, commands are fuzzy matched instead.
func SearchHelp(entries []HelpEntry, query string) []HelpEntry {
	words := strings.Fields(resolvers.Fold(query))
	if len(words) == 0 {
		return entries
	}

	var out []HelpEntry
	for _, e := range entries {
		haystack := resolvers.Fold(e.Command + " " + strings.Join(e.Aliases, " ") + " " + e.Description)
		all := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	if len(out) > 0 {
		return out
	}

	needle := strings.Join(words, " ")
	for _, e := range entries {
		if fuzzy.MatchFold(needle, e.Command) {
			out = append(out, e)
		}
	}
	return out
}

// Paginate returns page (1-based, clamped) of entries.
func Paginate(entries []HelpEntry, page, perPage int) HelpPage {
	if perPage <= 0 {
		perPage = len(entries)
	}
	total := len(entries)
	pages := 1
	if perPage > 0 && total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	if start > total {
		start = total
	}
	return HelpPage{Entries: entries[start:end], Page: page, Pages: pages, Total: total}
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// Find where the command ends (first [ or <)
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// FormatHelp renders a page of entries grouped by category.
func FormatHelp(p HelpPage) string {
	var out bytes.Buffer

	if p.Total == 0 {
		out.WriteString("No commands found.\n")
		return out.String()
	}

	width := 0
	for _, e := range p.Entries {
		width = max(width, runewidth.StringWidth(e.Syntax))
	}

	grouped := make(map[domain.CommandCategory][]HelpEntry)
	for _, e := range p.Entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	for _, cat := range domain.CategoryOrder() {
		entries := grouped[cat]
		if len(entries) == 0 {
			continue
		}

		out.WriteString(style.Header(cat.String()))
		out.WriteString("\n")
		for _, e := range entries {
			pad := strings.Repeat(" ", width-runewidth.StringWidth(e.Syntax))
			fmt.Fprintf(&out, "   %s%s  %s\n", formatUsage(e.Syntax), pad, e.Description)
		}
		out.WriteString("\n")
	}

	if p.Pages > 1 {
		fmt.Fprintf(&out, "Page %d of %d. See 'help <query> <page>' for more.\n", p.Page, p.Pages)
	}
	out.WriteString("See 'help <command>' for detailed help on a specific command.\n")
	return out.String()
}

// FormatCommandHelp renders every overload of one command.
func FormatCommandHelp(entries []HelpEntry) string {
	var out bytes.Buffer
	if len(entries) == 0 {
		return "No help available.\n"
	}

	first := entries[0]
	out.WriteString(first.Command)
	if first.Description != "" {
		out.WriteString(" - ")
		out.WriteString(first.Description)
	}
	out.WriteString("\n\n")

	if len(first.Aliases) > 0 {
		out.WriteString("ALIASES\n   ")
		out.WriteString(strings.Join(first.Aliases, ", "))
		out.WriteString("\n\n")
	}

	out.WriteString("USAGE\n")
	var params []ParamHelp
	seen := make(map[string]bool)
	for _, e := range entries {
		out.WriteString("   ")
		out.WriteString(formatUsage(e.Syntax))
		out.WriteString("\n")
		for _, p := range e.Params {
			if !seen[p.Name] {
				seen[p.Name] = true
				params = append(params, p)
			}
		}
	}
	out.WriteString("\n")

	if len(params) > 0 {
		out.WriteString("ARGUMENTS\n")
		width := 0
		for _, p := range params {
			width = max(width, runewidth.StringWidth(p.Name))
		}
		for _, p := range params {
			desc := p.Description
			if desc == "" {
				desc = p.Type
			}
			if p.Optional {
				desc += " (optional)"
			}
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(runewidth.FillRight(p.Name, width)), desc)
		}
		out.WriteString("\n")
	}

	return out.String()
}
