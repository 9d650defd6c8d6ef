package ast

import (
	"iter"
	"math"
	"strconv"

	"jsmin/internal/source"
)

// PrimitiveType classifies a constant's value.
type PrimitiveType uint8

const (
	PrimitiveOther PrimitiveType = iota
	PrimitiveBoolean
	PrimitiveNull
	PrimitiveNumber
	PrimitiveString
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveNull:
		return "null"
	case PrimitiveNumber:
		return "number"
	case PrimitiveString:
		return "string"
	default:
		return "other"
	}
}

// ConstantWrapper is a literal boolean, null, number or string.
type ConstantWrapper struct {
	exprBase
	Value         any
	PrimitiveType PrimitiveType
	// MayHaveIssues is set by the front end when the literal text was
	// ambiguous (octal-looking numbers, unusual escapes).
	MayHaveIssues bool
}

func NewConstant(ctx *source.Context, value any, pt PrimitiveType) *ConstantWrapper {
	return &ConstantWrapper{exprBase: exprBase{nodeBase{ctx: ctx}}, Value: value, PrimitiveType: pt}
}

func NewNumber(ctx *source.Context, v float64) *ConstantWrapper {
	return NewConstant(ctx, v, PrimitiveNumber)
}

func NewString(ctx *source.Context, s string) *ConstantWrapper {
	return NewConstant(ctx, s, PrimitiveString)
}

func NewBoolean(ctx *source.Context, b bool) *ConstantWrapper {
	return NewConstant(ctx, b, PrimitiveBoolean)
}

func NewNull(ctx *source.Context) *ConstantWrapper {
	return NewConstant(ctx, nil, PrimitiveNull)
}

func (n *ConstantWrapper) Accept(v Visitor) { v.VisitConstantWrapper(n) }
func (n *ConstantWrapper) IsConstant() bool { return true }
func (n *ConstantWrapper) IsNumber() bool   { return n.PrimitiveType == PrimitiveNumber }
func (n *ConstantWrapper) IsString() bool   { return n.PrimitiveType == PrimitiveString }
func (n *ConstantWrapper) IsBoolean() bool  { return n.PrimitiveType == PrimitiveBoolean }
func (n *ConstantWrapper) IsNull() bool     { return n.PrimitiveType == PrimitiveNull }

// Number returns the numeric value; non-numbers yield NaN.
func (n *ConstantWrapper) Number() float64 {
	if f, ok := n.Value.(float64); ok {
		return f
	}
	return math.NaN()
}

// IsEquivalentTo compares primitive type and value.
func (n *ConstantWrapper) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ConstantWrapper)
	if !ok || o.PrimitiveType != n.PrimitiveType {
		return false
	}
	if n.PrimitiveType == PrimitiveNumber {
		a, b := n.Number(), o.Number()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	return n.Value == o.Value
}

func (n *ConstantWrapper) String() string {
	return constantText(n.Value, n.PrimitiveType)
}

func constantText(value any, pt PrimitiveType) string {
	switch pt {
	case PrimitiveNull:
		return "null"
	case PrimitiveBoolean:
		if b, _ := value.(bool); b {
			return "true"
		}
		return "false"
	case PrimitiveNumber:
		f, _ := value.(float64)
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		switch v := value.(type) {
		case string:
			return v
		case interface{ String() string }:
			return v.String()
		}
		return ""
	}
}

// ArrayLiteral is [e, e, ...].
type ArrayLiteral struct {
	exprBase
	elements *NodeList
}

func NewArrayLiteral(ctx *source.Context, elements *NodeList) *ArrayLiteral {
	n := &ArrayLiteral{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetElements(elements)
	return n
}

func (n *ArrayLiteral) Elements() *NodeList      { return n.elements }
func (n *ArrayLiteral) SetElements(l *NodeList)  { setChild(n, &n.elements, l) }
func (n *ArrayLiteral) Accept(v Visitor)         { v.VisitArrayLiteral(n) }
func (n *ArrayLiteral) Children() iter.Seq[Node] { return enumerate(n.elements) }
func (n *ArrayLiteral) IsConstant() bool         { return n.elements == nil || n.elements.IsConstant() }

func (n *ArrayLiteral) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.elements) {
		l, ok := slotValue[*NodeList](newNode)
		if !ok {
			return false
		}
		n.SetElements(l)
		return true
	}
	return false
}

func (n *ArrayLiteral) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ArrayLiteral)
	return ok && equivalent(n.elements, o.elements)
}

// ObjectLiteral is {k: v, ...}. Properties holds ObjectLiteralProperty nodes.
type ObjectLiteral struct {
	exprBase
	properties *NodeList
}

func NewObjectLiteral(ctx *source.Context, properties *NodeList) *ObjectLiteral {
	n := &ObjectLiteral{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetProperties(properties)
	return n
}

func (n *ObjectLiteral) Properties() *NodeList     { return n.properties }
func (n *ObjectLiteral) SetProperties(l *NodeList) { setChild(n, &n.properties, l) }
func (n *ObjectLiteral) Accept(v Visitor)          { v.VisitObjectLiteral(n) }
func (n *ObjectLiteral) Children() iter.Seq[Node]  { return enumerate(n.properties) }
func (n *ObjectLiteral) IsConstant() bool          { return n.properties == nil || n.properties.IsConstant() }

func (n *ObjectLiteral) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.properties) {
		l, ok := slotValue[*NodeList](newNode)
		if !ok {
			return false
		}
		n.SetProperties(l)
		return true
	}
	return false
}

func (n *ObjectLiteral) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ObjectLiteral)
	return ok && equivalent(n.properties, o.properties)
}

// ObjectLiteralProperty is one name: value pair.
type ObjectLiteralProperty struct {
	exprBase
	name  *ObjectLiteralField
	value Node
}

func NewObjectLiteralProperty(ctx *source.Context, name *ObjectLiteralField, value Node) *ObjectLiteralProperty {
	n := &ObjectLiteralProperty{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetName(name)
	n.SetValue(value)
	return n
}

func (n *ObjectLiteralProperty) Name() *ObjectLiteralField     { return n.name }
func (n *ObjectLiteralProperty) SetName(f *ObjectLiteralField) { setChild(n, &n.name, f) }
func (n *ObjectLiteralProperty) Value() Node                   { return n.value }
func (n *ObjectLiteralProperty) SetValue(v Node)               { setChild(n, &n.value, v) }
func (n *ObjectLiteralProperty) Accept(v Visitor)              { v.VisitObjectLiteralProperty(n) }
func (n *ObjectLiteralProperty) Children() iter.Seq[Node]      { return enumerate(n.name, n.value) }
func (n *ObjectLiteralProperty) IsConstant() bool {
	return !isNil(n.value) && n.value.IsConstant()
}

func (n *ObjectLiteralProperty) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.name) {
		f, ok := slotValue[*ObjectLiteralField](newNode)
		if !ok {
			return false
		}
		n.SetName(f)
		return true
	}
	if same(oldNode, n.value) {
		n.SetValue(newNode)
		return true
	}
	return false
}

func (n *ObjectLiteralProperty) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ObjectLiteralProperty)
	return ok && equivalent(n.name, o.name) && equivalent(n.value, o.value)
}

// ObjectLiteralField is a property key: a string, a number or an identifier.
type ObjectLiteralField struct {
	exprBase
	Value         any
	PrimitiveType PrimitiveType
	// IsIdentifier is set when the key was written as a bare identifier.
	IsIdentifier bool
}

func NewObjectLiteralField(ctx *source.Context, value any, pt PrimitiveType) *ObjectLiteralField {
	return &ObjectLiteralField{exprBase: exprBase{nodeBase{ctx: ctx}}, Value: value, PrimitiveType: pt}
}

func (n *ObjectLiteralField) Accept(v Visitor) { v.VisitObjectLiteralField(n) }
func (n *ObjectLiteralField) IsConstant() bool { return true }
func (n *ObjectLiteralField) String() string   { return constantText(n.Value, n.PrimitiveType) }

// Constant returns the key as a detached constant wrapper.
func (n *ObjectLiteralField) Constant() *ConstantWrapper {
	return NewConstant(n.ctx, n.Value, n.PrimitiveType)
}

func (n *ObjectLiteralField) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ObjectLiteralField)
	return ok && o.String() == n.String()
}

// RegExpLiteral is /pattern/flags.
type RegExpLiteral struct {
	exprBase
	Pattern string
	Flags   string
}

func NewRegExpLiteral(ctx *source.Context, pattern, flags string) *RegExpLiteral {
	return &RegExpLiteral{exprBase: exprBase{nodeBase{ctx: ctx}}, Pattern: pattern, Flags: flags}
}

func (n *RegExpLiteral) Accept(v Visitor) { v.VisitRegExpLiteral(n) }
func (n *RegExpLiteral) IsEquivalentTo(other Node) bool {
	o, ok := other.(*RegExpLiteral)
	return ok && o.Pattern == n.Pattern && o.Flags == n.Flags
}

// ThisLiteral is `this`.
type ThisLiteral struct{ exprBase }

func NewThisLiteral(ctx *source.Context) *ThisLiteral {
	return &ThisLiteral{exprBase{nodeBase{ctx: ctx}}}
}

func (n *ThisLiteral) Accept(v Visitor) { v.VisitThisLiteral(n) }
func (n *ThisLiteral) IsEquivalentTo(other Node) bool {
	_, ok := other.(*ThisLiteral)
	return ok
}

// CustomNode carries pre-rendered code that no pass looks into.
type CustomNode struct {
	exprBase
	Code string
}

func NewCustomNode(ctx *source.Context, code string) *CustomNode {
	return &CustomNode{exprBase: exprBase{nodeBase{ctx: ctx}}, Code: code}
}

func (n *CustomNode) Accept(v Visitor) { v.VisitCustomNode(n) }
func (n *CustomNode) ToCode() string   { return n.Code }
func (n *CustomNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*CustomNode)
	return ok && o.Code == n.Code
}
