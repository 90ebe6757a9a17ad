package dispatchers

import (
	"sort"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
)

// Overload is one executable definition attached to a node.
type Overload struct {
	Def      *domain.CommandDefinition
	Seq      int // registration order across the whole tree
	Required int // parameters that must consume input
	Arities  []resolvers.Arity
}

// DispatchNode is one path element of the command tree.
type DispatchNode struct {
	Name    string   // primary alias
	Aliases []string // every alias, primary first
	Path    []string // primary aliases from the root
	Parent  *DispatchNode

	// Children is keyed by the case-folded alias; several keys may point
	// at the same child.
	Children map[string]*DispatchNode
	order    []*DispatchNode

	// Overloads are kept sorted: most required parameters first, then
	// registration order.
	Overloads []*Overload
}

func newNode(parent *DispatchNode, aliases []string) *DispatchNode {
	node := &DispatchNode{
		Aliases:  append([]string(nil), aliases...),
		Parent:   parent,
		Children: make(map[string]*DispatchNode),
	}
	if len(aliases) > 0 {
		node.Name = aliases[0]
	}
	if parent != nil {
		node.Path = append(append([]string(nil), parent.Path...), node.Name)
	}
	return node
}

// Child returns the child matching alias, ignoring case.
func (n *DispatchNode) Child(alias string) (*DispatchNode, bool) {
	child, ok := n.Children[resolvers.Fold(alias)]
	return child, ok
}

// OrderedChildren returns children in registration order.
func (n *DispatchNode) OrderedChildren() []*DispatchNode {
	return append([]*DispatchNode(nil), n.order...)
}

// Executable reports whether the node has at least one overload.
func (n *DispatchNode) Executable() bool {
	return len(n.Overloads) > 0
}

func (n *DispatchNode) addOverload(o *Overload) {
	n.Overloads = append(n.Overloads, o)
	sort.SliceStable(n.Overloads, func(i, j int) bool {
		a, b := n.Overloads[i], n.Overloads[j]
		if a.Required != b.Required {
			return a.Required > b.Required
		}
		return a.Seq < b.Seq
	})
}

// visibleTo reports whether some overload in the subtree is neither
// hidden nor forbidden for caller.
func (n *DispatchNode) visibleTo(caller domain.Issuer, permitted func(domain.Issuer, *domain.CommandDefinition) bool) bool {
	for _, o := range n.Overloads {
		if !o.Def.Hidden && permitted(caller, o.Def) {
			return true
		}
	}
	for _, child := range n.order {
		if child.visibleTo(caller, permitted) {
			return true
		}
	}
	return false
}

// collectOverloads walks the subtree depth first in registration order.
func collectOverloads(node *DispatchNode, out *[]*Overload) {
	*out = append(*out, node.Overloads...)
	for _, child := range node.order {
		collectOverloads(child, out)
	}
}
