package ast

import (
	"iter"

	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// Var is a var statement holding one or more declarations.
type Var struct {
	nodeBase
	list []*VariableDeclaration
}

func NewVar(ctx *source.Context) *Var {
	return &Var{nodeBase: nodeBase{ctx: ctx}}
}

func (n *Var) Accept(v Visitor)                     { v.VisitVar(n) }
func (n *Var) Count() int                           { return len(n.list) }
func (n *Var) At(i int) *VariableDeclaration        { return n.list[i] }
func (n *Var) Declarations() []*VariableDeclaration { return n.list }

func (n *Var) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, d := range n.list {
			if !yield(d) {
				return
			}
		}
	}
}

// Append adds a declaration; another Var is flattened into its declarations.
func (n *Var) Append(node Node) *Var {
	switch d := node.(type) {
	case *VariableDeclaration:
		if d == nil {
			return n
		}
		d.setParent(n)
		n.list = append(n.list, d)
		n.widen(d.Context())
	case *Var:
		if d == nil {
			return n
		}
		for _, item := range append([]*VariableDeclaration(nil), d.list...) {
			n.Append(item)
		}
	}
	return n
}

// RemoveAt drops the declaration at i.
func (n *Var) RemoveAt(i int) {
	detach(n, n.list[i])
	n.list = append(n.list[:i], n.list[i+1:]...)
}

func (n *Var) ReplaceChild(oldNode, newNode Node) bool {
	for i, d := range n.list {
		if !same(oldNode, d) {
			continue
		}
		if isNil(newNode) {
			n.RemoveAt(i)
			return true
		}
		repl, ok := newNode.(*VariableDeclaration)
		if !ok {
			return false
		}
		detach(n, d)
		n.list[i] = repl
		repl.setParent(n)
		return true
	}
	return false
}

func (n *Var) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Var)
	if !ok || len(o.list) != len(n.list) {
		return false
	}
	for i := range n.list {
		if !n.list[i].IsEquivalentTo(o.list[i]) {
			return false
		}
	}
	return true
}

// VariableDeclaration is `name` or `name = initializer` inside a Var.
type VariableDeclaration struct {
	nodeBase
	name        string
	field       *symbols.Field
	initializer Node

	NameContext   *source.Context
	AssignContext *source.Context
}

func NewVariableDeclaration(ctx *source.Context, name string, nameCtx *source.Context, init Node) *VariableDeclaration {
	n := &VariableDeclaration{nodeBase: nodeBase{ctx: ctx}, name: name, NameContext: nameCtx}
	n.SetInitializer(init)
	return n
}

func (n *VariableDeclaration) Name() string                      { return n.name }
func (n *VariableDeclaration) SetName(name string)               { n.name = name }
func (n *VariableDeclaration) VariableField() *symbols.Field     { return n.field }
func (n *VariableDeclaration) SetVariableField(f *symbols.Field) { n.field = f }
func (n *VariableDeclaration) Initializer() Node                 { return n.initializer }
func (n *VariableDeclaration) SetInitializer(init Node)          { setChild(n, &n.initializer, init) }
func (n *VariableDeclaration) Accept(v Visitor)                  { v.VisitVariableDeclaration(n) }
func (n *VariableDeclaration) Children() iter.Seq[Node]          { return enumerate(n.initializer) }

func (n *VariableDeclaration) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.initializer) {
		n.SetInitializer(newNode)
		return true
	}
	return false
}

func (n *VariableDeclaration) IsEquivalentTo(other Node) bool {
	o, ok := other.(*VariableDeclaration)
	if !ok {
		return false
	}
	if n.field != nil {
		if !n.field.IsSameField(o.field) {
			return false
		}
	} else if n.name != o.name {
		return false
	}
	return equivalent(n.initializer, o.initializer)
}
