package ast

import (
	"iter"
	"reflect"

	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// Node is implemented by every tree node.
type Node interface {
	Context() *source.Context
	SetContext(ctx *source.Context)
	Parent() Node

	// Children yields the non-nil direct children in source order.
	Children() iter.Seq[Node]
	Accept(v Visitor)
	// ReplaceChild swaps oldNode for newNode. A nil newNode removes the child
	// where the slot allows it. Reports whether oldNode was a child.
	ReplaceChild(oldNode, newNode Node) bool
	IsEquivalentTo(other Node) bool

	IsExpression() bool
	IsConstant() bool
	RequiresSeparator() bool
	TerminatingContext() *source.Context
	EncloseBlock(t EncloseBlockType) bool
	IsDebuggerStatement(patterns []string) bool

	setParent(p Node)
}

// EncloseBlockType selects which output ambiguity EncloseBlock checks for.
type EncloseBlockType uint8

const (
	// EncloseIfWithoutElse: the statement ends with an if that has no else.
	EncloseIfWithoutElse EncloseBlockType = iota
	// EncloseFunctionDeclaration: the statement is a function declaration.
	EncloseFunctionDeclaration
	// EncloseSingleDoWhile: the statement is a lone do-while.
	EncloseSingleDoWhile
)

// ScopeOwner is implemented by nodes that open a lexical scope.
type ScopeOwner interface {
	Node
	OwnedScope() *symbols.Scope
}

// nodeBase carries the state shared by all nodes.
type nodeBase struct {
	ctx        *source.Context
	parent     Node
	terminator *source.Context
}

func (b *nodeBase) Context() *source.Context       { return b.ctx }
func (b *nodeBase) SetContext(ctx *source.Context) { b.ctx = ctx }
func (b *nodeBase) Parent() Node                   { return b.parent }
func (b *nodeBase) setParent(p Node)               { b.parent = p }

// SetTerminatingContext records the context of the trailing ';'.
func (b *nodeBase) SetTerminatingContext(ctx *source.Context) { b.terminator = ctx }
func (b *nodeBase) TerminatingContext() *source.Context       { return b.terminator }

func (*nodeBase) Children() iter.Seq[Node]           { return func(func(Node) bool) {} }
func (*nodeBase) ReplaceChild(Node, Node) bool       { return false }
func (*nodeBase) IsEquivalentTo(Node) bool           { return false }
func (*nodeBase) IsExpression() bool                 { return false }
func (*nodeBase) IsConstant() bool                   { return false }
func (*nodeBase) RequiresSeparator() bool            { return true }
func (*nodeBase) EncloseBlock(EncloseBlockType) bool { return false }
func (*nodeBase) IsDebuggerStatement([]string) bool  { return false }

// exprBase marks expression nodes.
type exprBase struct{ nodeBase }

func (*exprBase) IsExpression() bool { return true }

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// setChild stores child in slot under owner: the previous occupant is
// detached only while it still points at owner, then child is attached.
func setChild[T Node](owner Node, slot *T, child T) {
	if old := *slot; !isNil(old) && old.Parent() == owner {
		old.setParent(nil)
	}
	if isNil(child) {
		var zero T
		*slot = zero
		return
	}
	*slot = child
	child.setParent(owner)
}

// slotValue converts n for a typed child slot: nil clears the slot and a
// node of any other type is refused.
func slotValue[T Node](n Node) (T, bool) {
	if isNil(n) {
		var zero T
		return zero, true
	}
	v, ok := n.(T)
	return v, ok
}

// detach clears n's parent if it still points at owner.
func detach(owner, n Node) {
	if !isNil(n) && n.Parent() == owner {
		n.setParent(nil)
	}
}

// enumerate yields the non-nil nodes in order.
func enumerate(nodes ...Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range nodes {
			if isNil(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// same compares node identity; nil never matches.
func same(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	return a == b
}

// equivalent compares two optional nodes structurally.
func equivalent(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.IsEquivalentTo(b)
}

// ForceToBlock wraps a non-block statement into a new Block.
func ForceToBlock(n Node) *Block {
	if isNil(n) {
		return nil
	}
	if b, ok := n.(*Block); ok {
		return b
	}
	b := NewBlock(n.Context().Clone())
	b.Append(n)
	return b
}

// EnclosingScope returns the scope of the nearest scope-owning ancestor of n.
func EnclosingScope(n Node) *symbols.Scope {
	for p := n.Parent(); !isNil(p); p = p.Parent() {
		if owner, ok := p.(ScopeOwner); ok {
			if scope := owner.OwnedScope(); scope != nil {
				return scope
			}
		}
	}
	return nil
}

// Root walks the parent chain to the top-most node.
func Root(n Node) Node {
	cur := n
	for !isNil(cur.Parent()) {
		cur = cur.Parent()
	}
	return cur
}

// IsAncestor reports whether anc is n or encloses n.
func IsAncestor(anc, n Node) bool {
	for cur := n; !isNil(cur); cur = cur.Parent() {
		if cur == anc {
			return true
		}
	}
	return false
}
