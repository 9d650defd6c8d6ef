package ast

import (
	"iter"

	"jsmin/internal/source"
)

// ForIn is `for (variable in collection) body`.
type ForIn struct {
	nodeBase
	variable   Node
	collection Node
	body       *Block

	OperatorContext *source.Context
}

func NewForIn(ctx *source.Context, variable, collection, body Node) *ForIn {
	n := &ForIn{nodeBase: nodeBase{ctx: ctx}}
	n.SetVariable(variable)
	n.SetCollection(collection)
	n.SetBody(ForceToBlock(body))
	return n
}

func (n *ForIn) Variable() Node       { return n.variable }
func (n *ForIn) SetVariable(v Node)   { setChild(n, &n.variable, v) }
func (n *ForIn) Collection() Node     { return n.collection }
func (n *ForIn) SetCollection(c Node) { setChild(n, &n.collection, c) }
func (n *ForIn) Body() *Block         { return n.body }
func (n *ForIn) SetBody(b *Block)     { setChild(n, &n.body, b) }
func (n *ForIn) Accept(v Visitor)     { v.VisitForIn(n) }
func (n *ForIn) Children() iter.Seq[Node] {
	return enumerate(n.variable, n.collection, n.body)
}

// TerminatingContext falls back to the body's terminator.
func (n *ForIn) TerminatingContext() *source.Context {
	if n.terminator != nil {
		return n.terminator
	}
	if n.body != nil {
		return n.body.TerminatingContext()
	}
	return nil
}

func (n *ForIn) RequiresSeparator() bool { return bodyRequiresSeparator(n.body) }

func (n *ForIn) EncloseBlock(t EncloseBlockType) bool {
	return bodyEncloseBlock(n.body, t)
}

func (n *ForIn) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.variable):
		n.SetVariable(newNode)
	case same(oldNode, n.collection):
		n.SetCollection(newNode)
	case same(oldNode, n.body):
		n.SetBody(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *ForIn) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ForIn)
	return ok && equivalent(n.variable, o.variable) &&
		equivalent(n.collection, o.collection) && equivalent(n.body, o.body)
}
