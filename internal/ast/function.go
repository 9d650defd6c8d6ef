package ast

import (
	"iter"

	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// FunctionType distinguishes how a function object appears in the source.
type FunctionType uint8

const (
	FunctionDeclaration FunctionType = iota
	FunctionExpression
	FunctionGetter
	FunctionSetter
)

func (t FunctionType) String() string {
	switch t {
	case FunctionDeclaration:
		return "declaration"
	case FunctionExpression:
		return "expression"
	case FunctionGetter:
		return "getter"
	case FunctionSetter:
		return "setter"
	default:
		return "invalid"
	}
}

// FunctionObject is a function declaration or expression.
type FunctionObject struct {
	exprBase
	name       string
	field      *symbols.Field
	parameters *NodeList
	body       *Block

	NameContext  *source.Context
	FunctionType FunctionType
	// Scope is the function scope; parameters and vars are declared in it.
	Scope *symbols.Scope
}

func NewFunctionObject(ctx *source.Context, ft FunctionType, name string, params *NodeList, body *Block) *FunctionObject {
	n := &FunctionObject{exprBase: exprBase{nodeBase{ctx: ctx}}, name: name, FunctionType: ft}
	if params == nil {
		params = NewNodeList(nil)
	}
	n.SetParameters(params)
	n.SetBody(body)
	return n
}

func (n *FunctionObject) Name() string                      { return n.name }
func (n *FunctionObject) SetName(name string)               { n.name = name }
func (n *FunctionObject) VariableField() *symbols.Field     { return n.field }
func (n *FunctionObject) SetVariableField(f *symbols.Field) { n.field = f }
func (n *FunctionObject) Parameters() *NodeList             { return n.parameters }
func (n *FunctionObject) SetParameters(l *NodeList)         { setChild(n, &n.parameters, l) }
func (n *FunctionObject) Body() *Block                      { return n.body }
func (n *FunctionObject) SetBody(b *Block)                  { setChild(n, &n.body, b) }
func (n *FunctionObject) Accept(v Visitor)                  { v.VisitFunctionObject(n) }
func (n *FunctionObject) OwnedScope() *symbols.Scope        { return n.Scope }
func (n *FunctionObject) Children() iter.Seq[Node]          { return enumerate(n.parameters, n.body) }
func (n *FunctionObject) IsExpression() bool                { return n.FunctionType != FunctionDeclaration }
func (n *FunctionObject) RequiresSeparator() bool           { return n.FunctionType != FunctionDeclaration }

func (n *FunctionObject) EncloseBlock(t EncloseBlockType) bool {
	return t == EncloseFunctionDeclaration && n.FunctionType == FunctionDeclaration
}

// IsReferenced reports whether the function is used. Expressions are used
// where they appear; a declaration needs a reference from outside its own
// body, so plain recursion does not count.
func (n *FunctionObject) IsReferenced() bool {
	if n == nil {
		return false
	}
	if n.FunctionType != FunctionDeclaration || n.field == nil {
		return true
	}
	for _, ref := range n.field.References() {
		refNode, ok := ref.(Node)
		if !ok || !IsAncestor(n, refNode) {
			return true
		}
	}
	return false
}

func (n *FunctionObject) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.parameters) {
		l, ok := slotValue[*NodeList](newNode)
		if !ok {
			return false
		}
		n.SetParameters(l)
		return true
	}
	if same(oldNode, n.body) {
		n.SetBody(ForceToBlock(newNode))
		return true
	}
	return false
}

func (n *FunctionObject) IsEquivalentTo(other Node) bool {
	o, ok := other.(*FunctionObject)
	return ok && o == n
}

// ParameterDeclaration is a formal parameter or a catch binding.
type ParameterDeclaration struct {
	nodeBase
	name  string
	field *symbols.Field

	Position int
}

func NewParameterDeclaration(ctx *source.Context, name string, position int) *ParameterDeclaration {
	return &ParameterDeclaration{nodeBase: nodeBase{ctx: ctx}, name: name, Position: position}
}

func (n *ParameterDeclaration) Name() string                      { return n.name }
func (n *ParameterDeclaration) SetName(name string)               { n.name = name }
func (n *ParameterDeclaration) VariableField() *symbols.Field     { return n.field }
func (n *ParameterDeclaration) SetVariableField(f *symbols.Field) { n.field = f }
func (n *ParameterDeclaration) Accept(v Visitor)                  { v.VisitParameterDeclaration(n) }
func (n *ParameterDeclaration) RequiresSeparator() bool           { return false }

func (n *ParameterDeclaration) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ParameterDeclaration)
	if !ok {
		return false
	}
	if n.field != nil {
		return n.field.IsSameField(o.field)
	}
	return o.name == n.name
}
