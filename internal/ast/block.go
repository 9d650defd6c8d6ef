package ast

import (
	"iter"
	"slices"

	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// Block is a statement list. It owns a block scope once bound.
type Block struct {
	nodeBase
	list []Node

	// Scope is the lexical scope opened by this block, if any.
	Scope *symbols.Scope
	// HasBraces records whether the source wrapped the statements in {}.
	HasBraces bool
}

func NewBlock(ctx *source.Context) *Block {
	return &Block{nodeBase: nodeBase{ctx: ctx}}
}

func (n *Block) Accept(v Visitor)           { v.VisitBlock(n) }
func (n *Block) OwnedScope() *symbols.Scope { return n.Scope }
func (n *Block) Count() int                 { return len(n.list) }
func (n *Block) At(i int) Node              { return n.list[i] }
func (n *Block) Statements() []Node         { return n.list }
func (n *Block) Children() iter.Seq[Node]   { return enumerate(n.list...) }
func (n *Block) EncloseBlock(t EncloseBlockType) bool {
	if len(n.list) == 1 {
		return n.list[0].EncloseBlock(t)
	}
	return false
}

// RequiresSeparator follows the last statement; an empty block needs none.
func (n *Block) RequiresSeparator() bool {
	if len(n.list) == 0 {
		return false
	}
	return n.list[len(n.list)-1].RequiresSeparator()
}

// Append adds a statement; NodeList and scope-less Block arguments are
// flattened into their elements.
func (n *Block) Append(node Node) *Block {
	if isNil(node) {
		return n
	}
	switch other := node.(type) {
	case *NodeList:
		for _, item := range slices.Clone(other.list) {
			n.Append(item)
		}
		return n
	case *Block:
		if other.Scope == nil {
			for _, item := range slices.Clone(other.list) {
				n.Append(item)
			}
			return n
		}
	}
	node.setParent(n)
	n.list = append(n.list, node)
	n.widen(node.Context())
	return n
}

// Insert adds a statement at pos; NodeList arguments are flattened.
func (n *Block) Insert(pos int, node Node) *Block {
	if isNil(node) {
		return n
	}
	if other, ok := node.(*NodeList); ok {
		for i, item := range slices.Clone(other.list) {
			n.Insert(pos+i, item)
		}
		return n
	}
	node.setParent(n)
	n.list = append(n.list, nil)
	copy(n.list[pos+1:], n.list[pos:])
	n.list[pos] = node
	n.widen(node.Context())
	return n
}

// Set replaces the statement at i; nil removes it and a NodeList is
// spliced in place.
func (n *Block) Set(i int, node Node) {
	detach(n, n.list[i])
	if isNil(node) {
		n.list = append(n.list[:i], n.list[i+1:]...)
		return
	}
	if other, ok := node.(*NodeList); ok {
		n.list = append(n.list[:i], n.list[i+1:]...)
		n.Insert(i, other)
		return
	}
	n.list[i] = node
	node.setParent(n)
}

func (n *Block) RemoveAt(i int) {
	detach(n, n.list[i])
	n.list = append(n.list[:i], n.list[i+1:]...)
}

func (n *Block) IndexOf(node Node) int {
	for i, item := range n.list {
		if item == node {
			return i
		}
	}
	return -1
}

func (n *Block) ReplaceChild(oldNode, newNode Node) bool {
	i := n.IndexOf(oldNode)
	if i < 0 {
		return false
	}
	n.Set(i, newNode)
	return true
}

func (n *Block) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Block)
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

// Program is the root of a parsed document.
type Program struct {
	nodeBase
	body *Block

	Document *source.Document
	Scope    *symbols.Scope
	Table    *symbols.Table
}

func NewProgram(doc *source.Document, body *Block) *Program {
	p := &Program{nodeBase: nodeBase{ctx: source.NewContext(doc)}, Document: doc}
	p.SetBody(body)
	return p
}

func (n *Program) Body() *Block               { return n.body }
func (n *Program) SetBody(b *Block)           { setChild(n, &n.body, b) }
func (n *Program) Accept(v Visitor)           { v.VisitProgram(n) }
func (n *Program) OwnedScope() *symbols.Scope { return n.Scope }
func (n *Program) Children() iter.Seq[Node]   { return enumerate(n.body) }
func (n *Program) RequiresSeparator() bool    { return false }

func (n *Program) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.body) {
		n.SetBody(ForceToBlock(newNode))
		return true
	}
	return false
}

func (n *Program) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Program)
	return ok && equivalent(n.body, o.body)
}

// EmptyStatement is a lone ';'.
type EmptyStatement struct{ nodeBase }

func NewEmptyStatement(ctx *source.Context) *EmptyStatement {
	return &EmptyStatement{nodeBase{ctx: ctx}}
}

func (n *EmptyStatement) Accept(v Visitor)        { v.VisitEmptyStatement(n) }
func (n *EmptyStatement) RequiresSeparator() bool { return false }
func (n *EmptyStatement) IsEquivalentTo(other Node) bool {
	_, ok := other.(*EmptyStatement)
	return ok
}

// ConditionalCompilationComment holds the statements of a /*@cc_on ... @*/
// comment.
type ConditionalCompilationComment struct {
	nodeBase
	statements *Block
}

func NewConditionalCompilationComment(ctx *source.Context) *ConditionalCompilationComment {
	n := &ConditionalCompilationComment{nodeBase: nodeBase{ctx: ctx}}
	n.SetStatements(NewBlock(nil))
	return n
}

func (n *ConditionalCompilationComment) Statements() *Block { return n.statements }
func (n *ConditionalCompilationComment) SetStatements(b *Block) {
	setChild(n, &n.statements, b)
}
func (n *ConditionalCompilationComment) Accept(v Visitor) {
	v.VisitConditionalCompilationComment(n)
}
func (n *ConditionalCompilationComment) Children() iter.Seq[Node] {
	return enumerate(n.statements)
}

// Append adds a statement and widens the comment's context.
func (n *ConditionalCompilationComment) Append(stmt Node) {
	if isNil(stmt) {
		return
	}
	n.widen(stmt.Context())
	n.statements.Append(stmt)
}

// RequiresSeparator follows the last contained statement.
func (n *ConditionalCompilationComment) RequiresSeparator() bool {
	if n.statements == nil || n.statements.Count() == 0 {
		return true
	}
	return n.statements.At(n.statements.Count() - 1).RequiresSeparator()
}

func (n *ConditionalCompilationComment) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.statements) {
		n.SetStatements(ForceToBlock(newNode))
		return true
	}
	return false
}
