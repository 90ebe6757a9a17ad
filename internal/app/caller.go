package app

import (
	"slices"
	"strings"
)

// Caller is a local issuer with a fixed set of permission nodes. A node
// ending in ".*" grants everything below it and "*" grants everything.
type Caller struct {
	Label string
	Perms []string
}

// NewCaller trims and drops empty permission nodes.
func NewCaller(name string, perms []string) Caller {
	c := Caller{Label: name}
	for _, p := range perms {
		if p = strings.TrimSpace(p); p != "" {
			c.Perms = append(c.Perms, p)
		}
	}
	return c
}

func (c Caller) Name() string { return c.Label }

func (c Caller) HasPermission(node string) bool {
	if slices.Contains(c.Perms, node) || slices.Contains(c.Perms, "*") {
		return true
	}
	for _, p := range c.Perms {
		if prefix, ok := strings.CutSuffix(p, ".*"); ok && strings.HasPrefix(node, prefix+".") {
			return true
		}
	}
	return false
}
