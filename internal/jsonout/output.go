package jsonout

import (
	"io"
	"math"

	"jsmin/internal/ast"
	"jsmin/internal/symbols"
	"jsmin/internal/token"
)

// Options tunes number output.
type Options struct {
	// GlobalScope is consulted for NaN/Infinity shadowing when a literal has
	// no enclosing scope of its own. Nil disables the check.
	GlobalScope *symbols.Scope
}

// Apply writes node as JSON to w. The bool reports whether the output is
// valid JSON; the error is the first write failure of w.
func Apply(w io.Writer, node ast.Node) (bool, error) {
	return ApplyWithOptions(w, node, Options{})
}

// ApplyWithOptions is Apply with explicit options.
func ApplyWithOptions(w io.Writer, node ast.Node, opts Options) (bool, error) {
	if node == nil {
		return false, nil
	}
	v := &visitor{out: w, opts: opts, valid: true}
	node.Accept(v)
	return v.valid && v.err == nil, v.err
}

type visitor struct {
	out   io.Writer
	opts  Options
	valid bool
	err   error
}

var _ ast.Visitor = (*visitor)(nil)

func (v *visitor) write(s string) {
	if v.err != nil {
		return
	}
	_, v.err = io.WriteString(v.out, s)
}

func (v *visitor) invalid() { v.valid = false }

// single-statement wrappers

func (v *visitor) VisitProgram(n *ast.Program) {
	if body := n.Body(); body != nil {
		body.Accept(v)
	}
}

func (v *visitor) VisitBlock(n *ast.Block) {
	// exactly one statement carries the value; anything else emits nothing
	if stmts := n.Statements(); len(stmts) == 1 {
		stmts[0].Accept(v)
	}
}

func (v *visitor) VisitNodeList(n *ast.NodeList) {
	for i, item := range n.Items() {
		if i > 0 {
			v.write(",")
		}
		item.Accept(v)
	}
}

// representable nodes

func (v *visitor) VisitArrayLiteral(n *ast.ArrayLiteral) {
	v.write("[")
	if el := n.Elements(); el != nil {
		el.Accept(v)
	}
	v.write("]")
}

func (v *visitor) VisitObjectLiteral(n *ast.ObjectLiteral) {
	v.write("{")
	if props := n.Properties(); props != nil {
		props.Accept(v)
	}
	v.write("}")
}

func (v *visitor) VisitObjectLiteralProperty(n *ast.ObjectLiteralProperty) {
	if name := n.Name(); name != nil {
		name.Accept(v)
	}
	v.write(":")
	if value := n.Value(); value != nil {
		value.Accept(v)
	}
}

func (v *visitor) VisitObjectLiteralField(n *ast.ObjectLiteralField) {
	if n.PrimitiveType == ast.PrimitiveString {
		v.write(quote(constantString(n.Value)))
		return
	}
	// keys are strings in JSON; numbers and bare words get quoted
	v.write(`"`)
	v.constant(n.Constant(), n)
	v.write(`"`)
}

func (v *visitor) VisitConstantWrapper(n *ast.ConstantWrapper) {
	v.constant(n, n)
}

func (v *visitor) constant(c *ast.ConstantWrapper, at ast.Node) {
	switch c.PrimitiveType {
	case ast.PrimitiveBoolean:
		if b, _ := c.Value.(bool); b {
			v.write("true")
		} else {
			v.write("false")
		}
	case ast.PrimitiveNull:
		v.write("null")
	case ast.PrimitiveNumber:
		v.write(v.number(c.Number(), at))
	default:
		v.write(quote(constantString(c.Value)))
	}
}

func (v *visitor) VisitCustomNode(n *ast.CustomNode) {
	v.write(quote(n.ToCode()))
}

func (v *visitor) VisitUnaryOperator(n *ast.UnaryOperator) {
	if n.OperatorToken != token.Minus || n.IsPostfix {
		v.invalid()
		return
	}
	op := n.Operand()
	if !negatable(op) {
		v.invalid()
	}
	v.write("-")
	if op != nil {
		op.Accept(v)
	}
}

// negatable reports whether a leading minus on op still reads as a JSON
// number: only a non-negative numeric constant qualifies.
func negatable(op ast.Node) bool {
	c, ok := op.(*ast.ConstantWrapper)
	if !ok || c == nil || c.PrimitiveType != ast.PrimitiveNumber {
		return false
	}
	x := c.Number()
	return !math.IsNaN(x) && !math.Signbit(x)
}

func (v *visitor) VisitGroupingOperator(n *ast.GroupingOperator) {
	// not JSON, but the operand is still written for best-effort output
	v.invalid()
	if op := n.Operand(); op != nil {
		op.Accept(v)
	}
}

// everything else is not representable

func (v *visitor) VisitRegExpLiteral(*ast.RegExpLiteral)               { v.invalid() }
func (v *visitor) VisitThisLiteral(*ast.ThisLiteral)                   { v.invalid() }
func (v *visitor) VisitLookup(*ast.Lookup)                             { v.invalid() }
func (v *visitor) VisitMember(*ast.Member)                             { v.invalid() }
func (v *visitor) VisitCallNode(*ast.CallNode)                         { v.invalid() }
func (v *visitor) VisitBinaryOperator(*ast.BinaryOperator)             { v.invalid() }
func (v *visitor) VisitConditional(*ast.Conditional)                   { v.invalid() }
func (v *visitor) VisitFunctionObject(*ast.FunctionObject)             { v.invalid() }
func (v *visitor) VisitParameterDeclaration(*ast.ParameterDeclaration) { v.invalid() }
func (v *visitor) VisitVar(*ast.Var)                                   { v.invalid() }
func (v *visitor) VisitVariableDeclaration(*ast.VariableDeclaration)   { v.invalid() }
func (v *visitor) VisitReturnNode(*ast.ReturnNode)                     { v.invalid() }
func (v *visitor) VisitIfNode(*ast.IfNode)                             { v.invalid() }
func (v *visitor) VisitWhileNode(*ast.WhileNode)                       { v.invalid() }
func (v *visitor) VisitForNode(*ast.ForNode)                           { v.invalid() }
func (v *visitor) VisitForIn(*ast.ForIn)                               { v.invalid() }
func (v *visitor) VisitBreak(*ast.Break)                               { v.invalid() }
func (v *visitor) VisitContinueNode(*ast.ContinueNode)                 { v.invalid() }
func (v *visitor) VisitThrowNode(*ast.ThrowNode)                       { v.invalid() }
func (v *visitor) VisitTryNode(*ast.TryNode)                           { v.invalid() }
func (v *visitor) VisitWithNode(*ast.WithNode)                         { v.invalid() }
func (v *visitor) VisitDebuggerNode(*ast.DebuggerNode)                 { v.invalid() }
func (v *visitor) VisitEmptyStatement(*ast.EmptyStatement)             { v.invalid() }
func (v *visitor) VisitConditionalCompilationComment(*ast.ConditionalCompilationComment) {
	v.invalid()
}
