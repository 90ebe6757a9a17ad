package dispatchers

import (
	"slices"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Tree is the command trie. It is not safe for concurrent mutation;
// Manager guards it.
type Tree struct {
	root         *DispatchNode
	seq          int
	resolvers    *resolvers.Registry
	validator    *conditions.Validator
	replacements *Replacements
}

// NewTree creates an empty tree validating against the given registries.
func NewTree(res *resolvers.Registry, v *conditions.Validator, rep *Replacements) *Tree {
	if rep == nil {
		rep = NewReplacements()
	}
	return &Tree{
		root:         newNode(nil, nil),
		resolvers:    res,
		validator:    v,
		replacements: rep,
	}
}

// Root returns the root node.
func (t *Tree) Root() *DispatchNode {
	return t.root
}

// Register validates def and attaches a copy of it to the tree.
func (t *Tree) Register(def domain.CommandDefinition) error {
	d := t.replacements.Apply(def)

	if len(d.Path) == 0 {
		return usage.Configuration("command has an empty path")
	}
	if d.Handler == nil {
		return usage.Configuration("command %q has no handler", d.PrimaryPath())
	}
	for i := range d.Path {
		if len(d.Aliases(i)) == 0 {
			return usage.Configuration("command %q has an empty path element", strings.Join(d.Path, " "))
		}
	}

	arities, required, err := t.checkParams(&d)
	if err != nil {
		return err
	}
	if t.validator != nil {
		if err := t.validator.CheckDefinition(&d); err != nil {
			return err
		}
	}

	// undo reverts tree edits if the registration fails half way
	var undo []func()
	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	node := t.root
	for i := range d.Path {
		next, err := t.child(node, d.Aliases(i), &undo)
		if err != nil {
			rollback()
			return err
		}
		node = next
	}

	sig := t.signature(&d)
	for _, o := range node.Overloads {
		if slices.Equal(t.signature(o.Def), sig) {
			rollback()
			return usage.Configuration("command %q has two overloads with the same parameters (%s)", d.PrimaryPath(), strings.Join(sig, " "))
		}
	}

	t.seq++
	node.addOverload(&Overload{Def: &d, Seq: t.seq, Required: required, Arities: arities})
	return nil
}

func (t *Tree) checkParams(d *domain.CommandDefinition) ([]resolvers.Arity, int, error) {
	arities := make([]resolvers.Arity, len(d.Params))
	required := 0
	seenOptional := false
	names := make(map[string]bool, len(d.Params))

	for i, p := range d.Params {
		if p.Name == "" {
			return nil, 0, usage.Configuration("parameter %d of %q has no name", i, d.PrimaryPath())
		}
		if names[p.Name] {
			return nil, 0, usage.Configuration("parameter %q of %q is declared twice", p.Name, d.PrimaryPath())
		}
		names[p.Name] = true

		a, err := t.resolvers.Arity(p)
		if err != nil {
			return nil, 0, err
		}
		arities[i] = a

		if !a.ConsumesInput() {
			continue
		}
		if a.Kind == resolvers.ArityRest && i != lastInputParam(d.Params, t.resolvers) {
			return nil, 0, usage.Configuration("parameter %q of %q consumes the rest of the input but is not last", p.Name, d.PrimaryPath())
		}
		if p.Optional {
			seenOptional = true
			continue
		}
		if seenOptional {
			return nil, 0, usage.Configuration("required parameter %q of %q follows an optional one", p.Name, d.PrimaryPath())
		}
		required++
	}
	return arities, required, nil
}

func lastInputParam(params []domain.Parameter, reg *resolvers.Registry) int {
	for i := len(params) - 1; i >= 0; i-- {
		if reg.ConsumesInput(params[i]) {
			return i
		}
	}
	return -1
}

// signature identifies an overload by the types of its input parameters.
func (t *Tree) signature(d *domain.CommandDefinition) []string {
	var sig []string
	for _, p := range d.Params {
		if !t.resolvers.ConsumesInput(p) {
			continue
		}
		s := strings.ToLower(p.Type)
		if p.Optional {
			s = "[" + s + "]"
		}
		sig = append(sig, s)
	}
	return sig
}

// child finds or creates the child of node matching aliases. Aliases that
// point at two different existing children are a conflict.
func (t *Tree) child(node *DispatchNode, aliases []string, undo *[]func()) (*DispatchNode, error) {
	var found *DispatchNode
	for _, a := range aliases {
		c, ok := node.Child(a)
		if !ok {
			continue
		}
		if found != nil && found != c {
			return nil, usage.Configuration("aliases %q map to different commands", strings.Join(aliases, "|"))
		}
		found = c
	}

	if found != nil {
		for _, a := range aliases {
			key := resolvers.Fold(a)
			if _, ok := node.Children[key]; ok {
				continue
			}
			node.Children[key] = found
			found.Aliases = append(found.Aliases, a)
			n := len(found.Aliases) - 1
			*undo = append(*undo, func() {
				delete(node.Children, key)
				found.Aliases = found.Aliases[:n]
			})
		}
		return found, nil
	}

	c := newNode(node, aliases)
	keys := make([]string, 0, len(aliases))
	for _, a := range aliases {
		key := resolvers.Fold(a)
		node.Children[key] = c
		keys = append(keys, key)
	}
	node.order = append(node.order, c)
	*undo = append(*undo, func() {
		for _, key := range keys {
			delete(node.Children, key)
		}
		node.order = slices.DeleteFunc(node.order, func(n *DispatchNode) bool { return n == c })
	})
	return c, nil
}

// Lookup walks tokens greedily from the root, ignoring case, and returns
// the deepest node reached and how many tokens it consumed.
func (t *Tree) Lookup(toks []string) (*DispatchNode, int) {
	node := t.root
	consumed := 0
	for _, tok := range toks {
		child, ok := node.Child(tok)
		if !ok {
			break
		}
		node = child
		consumed++
	}
	return node, consumed
}

// Find returns the node at exactly path, or nil.
func (t *Tree) Find(path []string) *DispatchNode {
	node, consumed := t.Lookup(path)
	if consumed != len(path) {
		return nil
	}
	return node
}

// Overloads returns every overload in registration order.
func (t *Tree) Overloads() []*Overload {
	var out []*Overload
	collectOverloads(t.root, &out)
	slices.SortFunc(out, func(a, b *Overload) int { return a.Seq - b.Seq })
	return out
}
