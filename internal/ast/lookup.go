package ast

import (
	"strings"

	"jsmin/internal/source"
	"jsmin/internal/symbols"
	"jsmin/internal/token"
)

// ReferenceType is an informational classification of a lookup.
type ReferenceType uint8

const (
	RefVariable ReferenceType = iota
	RefFunction
	RefConstructor
)

func (r ReferenceType) String() string {
	switch r {
	case RefFunction:
		return "function"
	case RefConstructor:
		return "constructor"
	default:
		return "variable"
	}
}

// Lookup is an identifier use. Bind resolves it to a Field.
type Lookup struct {
	exprBase
	name  string
	field *symbols.Field

	RefType     ReferenceType
	IsGenerated bool
}

func NewLookup(ctx *source.Context, name string) *Lookup {
	return &Lookup{exprBase: exprBase{nodeBase{ctx: ctx}}, name: name}
}

func (n *Lookup) Accept(v Visitor) { v.VisitLookup(n) }

func (n *Lookup) Name() string        { return n.name }
func (n *Lookup) SetName(name string) { n.name = name }
func (n *Lookup) String() string      { return n.name }

// VariableField returns the resolved binding, nil before bind.
func (n *Lookup) VariableField() *symbols.Field { return n.field }

func (n *Lookup) SetVariableField(f *symbols.Field) { n.field = f }

// IsAssignment reports whether the lookup is written to: the left operand of
// an assignment, the operand of ++/--, or the target of a for-in.
func (n *Lookup) IsAssignment() bool {
	switch p := n.parent.(type) {
	case *BinaryOperator:
		return p.IsAssign() && same(p.operand1, n)
	case *UnaryOperator:
		return p.OperatorToken.IsUnaryUpdate()
	case *ForIn:
		return same(p.variable, n)
	}
	return false
}

// AssignmentValue returns the right operand of a plain '=' assignment to
// this lookup. Compound assignments yield nil.
func (n *Lookup) AssignmentValue() Node {
	if p, ok := n.parent.(*BinaryOperator); ok && p.OperatorToken == token.Assign && same(p.operand1, n) {
		return p.operand2
	}
	return nil
}

// IsDebuggerStatement matches the lookup against dotted debug patterns. The
// name must equal the first segment, and every further segment must equal
// the name of the next enclosing member access exactly.
func (n *Lookup) IsDebuggerStatement(patterns []string) bool {
	for _, pattern := range patterns {
		segments := strings.Split(pattern, ".")
		if segments[0] != n.name {
			continue
		}
		if matchesMemberChain(n.parent, segments[1:]) {
			return true
		}
	}
	return false
}

func matchesMemberChain(parent Node, segments []string) bool {
	for _, seg := range segments {
		m, ok := parent.(*Member)
		if !ok || m.Name != seg {
			return false
		}
		parent = m.parent
	}
	return true
}

// VariableScope is the nearest enclosing function or global scope.
func (n *Lookup) VariableScope() *symbols.Scope {
	scope := EnclosingScope(n)
	if scope == nil {
		return nil
	}
	return scope.VariableScope()
}

// IsEquivalentTo compares ultimate bindings when resolved, else names.
func (n *Lookup) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Lookup)
	if !ok {
		return false
	}
	if n.field != nil {
		return n.field.IsSameField(o.field)
	}
	return n.name == o.name
}
