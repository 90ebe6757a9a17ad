package resolvers

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// RegisterBuiltins registers the builtin type tags on r.
func RegisterBuiltins(r *Registry) {
	r.MustRegister("string", stringResolver{})
	r.MustRegister("text", textResolver{})
	r.MustRegister("int", intResolver{bits: 32})
	r.MustRegister("long", intResolver{bits: 64})
	r.MustRegister("float", floatResolver{})
	r.MustRegister("double", floatResolver{})
	r.MustRegister("number", floatResolver{})
	r.MustRegister("bool", boolResolver{})
	r.MustRegister("enum", enumResolver{})
	r.MustRegister("duration", durationResolver{})
	r.MustRegister("strings", stringsResolver{})
	r.MustRegister("issuer", issuerResolver{})
}

// Fold case-folds s for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

func checkLength(req Request, s string) *Failure {
	flags := req.Flags()
	n := int64(utf8.RuneCountInString(s))
	if min := flags.Int("minlen", -1); min >= 0 && n < min {
		return Failf(InvalidFormat, "must be at least %d characters long", min)
	}
	if max := flags.Int("maxlen", -1); max >= 0 && n > max {
		return Failf(InvalidFormat, "must be at most %d characters long", max)
	}
	return nil
}

type stringResolver struct{}

func (stringResolver) Arity(domain.Parameter) Arity { return One }

func (stringResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	s := req.Text()
	if f := checkLength(req, s); f != nil {
		return nil, f
	}
	return s, nil
}

// textResolver joins every remaining token with single spaces.
type textResolver struct{}

func (textResolver) Arity(domain.Parameter) Arity { return Rest }

func (textResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	s := strings.Join(req.Tokens, " ")
	if f := checkLength(req, s); f != nil {
		return nil, f
	}
	return s, nil
}

type intResolver struct {
	bits int
}

func (intResolver) Arity(domain.Parameter) Arity { return One }

func (r intResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	flags := req.Flags()
	n, fail := parseInteger(req.Text(), flags.Has("suffixes"), r.bits)
	if fail != nil {
		return nil, fail
	}
	if flags.Has("min") {
		if min := flags.Int("min", 0); n < min {
			return nil, Failf(InvalidFormat, "must be at least %d", min)
		}
	}
	if flags.Has("max") {
		if max := flags.Int("max", 0); n > max {
			return nil, Failf(InvalidFormat, "must be at most %d", max)
		}
	}
	return n, nil
}

const maxRangeSuggestions = 20

// Suggest lists every value of a small min..max range.
func (intResolver) Suggest(_ context.Context, req SuggestRequest) []string {
	flags := Flags(req.Param.Flags)
	if !flags.Has("min") || !flags.Has("max") {
		return nil
	}
	return RangeValues(flags.Int("min", 0), flags.Int("max", 0), maxRangeSuggestions)
}

// RangeValues returns min..max in decimal, or nil when the range is empty
// or holds more than limit values.
func RangeValues(min, max int64, limit uint64) []string {
	if max < min {
		return nil
	}
	span := uint64(max) - uint64(min)
	if span >= limit {
		return nil
	}
	out := make([]string, 0, span+1)
	for i := uint64(0); i <= span; i++ {
		out = append(out, strconv.FormatInt(min+int64(i), 10))
	}
	return out
}

type floatResolver struct{}

func (floatResolver) Arity(domain.Parameter) Arity { return One }

func (floatResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	flags := req.Flags()
	f, fail := parseDecimal(req.Text(), flags.Has("suffixes"))
	if fail != nil {
		return nil, fail
	}
	if flags.Has("min") {
		if min := flags.Float("min", 0); f < min {
			return nil, Failf(InvalidFormat, "must be at least %g", min)
		}
	}
	if flags.Has("max") {
		if max := flags.Float("max", 0); f > max {
			return nil, Failf(InvalidFormat, "must be at most %g", max)
		}
	}
	return f, nil
}

var (
	truthy = []string{"t", "true", "on", "y", "yes", "1"}
	falsy  = []string{"f", "false", "off", "n", "no", "0"}
)

type boolResolver struct{}

func (boolResolver) Arity(domain.Parameter) Arity { return One }

func (boolResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	s := Fold(req.Text())
	for _, v := range truthy {
		if s == v {
			return true, nil
		}
	}
	for _, v := range falsy {
		if s == v {
			return false, nil
		}
	}
	return nil, Failf(InvalidFormat, "'%s' must be true or false", req.Text())
}

func (boolResolver) Suggest(context.Context, SuggestRequest) []string {
	return []string{"true", "false"}
}

// enumResolver matches one of the '|' separated values flag, ignoring case,
// and returns the canonical spelling.
type enumResolver struct{}

func (enumResolver) Arity(domain.Parameter) Arity { return One }

func (enumResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	values := req.Flags().List("values")
	in := Fold(req.Text())
	for _, v := range values {
		if Fold(v) == in {
			return v, nil
		}
	}
	return nil, Failf(InvalidFormat, "please specify one of: %s", strings.Join(values, ", "))
}

func (enumResolver) Suggest(_ context.Context, req SuggestRequest) []string {
	return Flags(req.Param.Flags).List("values")
}

// durationResolver accepts Go durations ("1m30s") or a bare number of seconds.
type durationResolver struct{}

func (durationResolver) Arity(domain.Parameter) Arity { return One }

func (durationResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	s := req.Text()
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, fail := parseDecimal(s, false)
		if fail != nil {
			return nil, Failf(InvalidFormat, "'%s' must be a duration such as 5s or 1m30s", s)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d < 0 {
		return nil, Failf(InvalidFormat, "'%s' must not be negative", s)
	}
	if max := req.Flags().String("max", ""); max != "" {
		if limit, err := time.ParseDuration(max); err == nil && d > limit {
			return nil, Failf(InvalidFormat, "must be at most %s", limit)
		}
	}
	return d, nil
}

func (durationResolver) Suggest(context.Context, SuggestRequest) []string {
	return []string{"1s", "5s", "10s", "30s", "1m", "5m"}
}

// stringsResolver collects the remaining tokens, or splits one token on the
// split flag's separator.
type stringsResolver struct{}

func (stringsResolver) Arity(p domain.Parameter) Arity {
	if p.HasFlag("split") {
		return One
	}
	return Rest
}

func (stringsResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	if sep, ok := req.Param.Flag("split"); ok {
		if sep == "" {
			sep = ","
		}
		var out []string
		for _, part := range strings.Split(req.Text(), sep) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	return append([]string(nil), req.Tokens...), nil
}

// issuerResolver binds the caller itself and reads no input.
type issuerResolver struct{}

func (issuerResolver) Arity(domain.Parameter) Arity { return None }

func (issuerResolver) Resolve(_ context.Context, req Request) (any, *Failure) {
	if req.Caller == nil {
		return nil, Failf(NotFound, "this command needs a caller")
	}
	return req.Caller, nil
}
