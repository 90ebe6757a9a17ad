package dispatchers

import (
	"strings"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
)

// Command builds a definition from a space separated path such as
// "teleport|tp" or "config set".
func Command(path string, handler domain.Handler, params ...domain.Parameter) domain.CommandDefinition {
	return domain.CommandDefinition{
		Path:    strings.Fields(path),
		Params:  params,
		Handler: handler,
	}
}

// Arg declares a required parameter.
func Arg(name, typ string) domain.Parameter {
	return domain.Parameter{Name: name, Type: typ}
}

// OptionalArg declares an optional parameter. def is resolved through the
// parameter's resolver when the input runs out; empty binds nil.
func OptionalArg(name, typ, def string) domain.Parameter {
	return domain.Parameter{Name: name, Type: typ, Optional: true, Default: def}
}

// RestArg declares a parameter consuming every remaining token.
func RestArg(name, typ string) domain.Parameter {
	return domain.Parameter{Name: name, Type: typ, Rest: true}
}

// Flagged returns p with resolver flags parsed from "min=1,max=64".
func Flagged(p domain.Parameter, flags string) domain.Parameter {
	p.Flags = resolvers.ParseFlags(flags)
	return p
}

// Completed returns p with a named completion reference such as
// "@players|@range:1-10".
func Completed(p domain.Parameter, ref string) domain.Parameter {
	p.Completion = ref
	return p
}

// Described returns p with a description.
func Described(p domain.Parameter, description string) domain.Parameter {
	p.Description = description
	return p
}
