package resolvers

import (
	"strconv"
	"strings"
)

// Flags provides typed access to a parameter's resolver flags.
type Flags map[string]string

// ParseFlags parses "min=1,max=64,single" into Flags. Entries without '='
// are stored with an empty value.
func ParseFlags(s string) Flags {
	flags := Flags{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		flags[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return flags
}

// Has returns true if the flag is present.
func (f Flags) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// String returns the value of a flag, or defaultVal if not present.
func (f Flags) String(name, defaultVal string) string {
	if v, ok := f[name]; ok {
		return v
	}
	return defaultVal
}

// Int returns the integer value of a flag, or defaultVal if not present or invalid.
func (f Flags) Int(name string, defaultVal int64) int64 {
	str := f.String(name, "")
	if str == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

// Float returns the float value of a flag, or defaultVal if not present or invalid.
func (f Flags) Float(name string, defaultVal float64) float64 {
	str := f.String(name, "")
	if str == "" {
		return defaultVal
	}
	n, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

// List splits a '|' separated flag value, e.g. values=a|b|c.
func (f Flags) List(name string) []string {
	str := f.String(name, "")
	if str == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(str, "|") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
