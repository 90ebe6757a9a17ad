package help

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
)

// View is what the help command returns: either one command's overloads or
// a page of the command list.
type View struct {
	Command []dispatchers.HelpEntry
	Page    dispatchers.HelpPage
}

// String renders plain terminal help.
func (v View) String() string {
	if len(v.Command) > 0 {
		return strings.TrimSuffix(dispatchers.FormatCommandHelp(v.Command), "\n")
	}
	return strings.TrimSuffix(dispatchers.FormatHelp(v.Page), "\n")
}

// Markdown renders the same help as markdown.
func (v View) Markdown() string {
	var b strings.Builder
	if len(v.Command) > 0 {
		first := v.Command[0]
		fmt.Fprintf(&b, "# %s\n\n", first.Command)
		if first.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", first.Description)
		}
		if len(first.Aliases) > 0 {
			fmt.Fprintf(&b, "**Aliases:** %s\n\n", strings.Join(first.Aliases, ", "))
		}
		b.WriteString("## Usage\n\n")
		seen := make(map[string]bool)
		var params []dispatchers.ParamHelp
		for _, e := range v.Command {
			fmt.Fprintf(&b, "- `%s`\n", e.Syntax)
			for _, p := range e.Params {
				if !seen[p.Name] {
					seen[p.Name] = true
					params = append(params, p)
				}
			}
		}
		if len(params) > 0 {
			b.WriteString("\n## Arguments\n\n")
			for _, p := range params {
				desc := p.Description
				if desc == "" {
					desc = p.Type
				}
				if p.Optional {
					desc += " (optional)"
				}
				fmt.Fprintf(&b, "- `%s`: %s\n", p.Name, desc)
			}
		}
		return b.String()
	}

	if v.Page.Total == 0 {
		return "No commands found.\n"
	}
	grouped := make(map[domain.CommandCategory][]dispatchers.HelpEntry)
	for _, e := range v.Page.Entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	for _, cat := range domain.CategoryOrder() {
		entries := grouped[cat]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n| Command | Description |\n| --- | --- |\n", cat)
		for _, e := range entries {
			fmt.Fprintf(&b, "| `%s` | %s |\n", e.Syntax, strings.ReplaceAll(e.Description, "|", `\|`))
		}
		b.WriteString("\n")
	}
	if v.Page.Pages > 1 {
		fmt.Fprintf(&b, "*Page %d of %d*\n", v.Page.Page, v.Page.Pages)
	}
	return b.String()
}

// Help shows help for a command path, or searches the command list. A
// trailing number selects the page.
func Help(src Source) domain.Handler {
	return help(Deps{Source: src, PerPage: DefaultPerPage})
}

func help(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		if deps.Source == nil {
			return nil, errors.New("help is not available")
		}

		words := strings.Fields(ec.String("query"))
		page := 1
		if n := len(words); n > 0 {
			if p, err := strconv.Atoi(words[n-1]); err == nil {
				page = p
				words = words[:n-1]
			}
		}

		if len(words) > 0 {
			if entries := deps.Source.HelpEntries(ec.Caller, words...); len(entries) > 0 {
				if sameCommand(entries) {
					return View{Command: entries}, nil
				}
				return View{Page: dispatchers.Paginate(entries, page, deps.PerPage)}, nil
			}
		}

		all := deps.Source.HelpEntries(ec.Caller)
		found := dispatchers.SearchHelp(all, strings.Join(words, " "))
		return View{Page: dispatchers.Paginate(found, page, deps.PerPage)}, nil
	})
}

func sameCommand(entries []dispatchers.HelpEntry) bool {
	for _, e := range entries[1:] {
		if e.Command != entries[0].Command {
			return false
		}
	}
	return true
}
