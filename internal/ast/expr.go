package ast

import (
	"iter"

	"jsmin/internal/source"
	"jsmin/internal/token"
)

// Member is root.name.
type Member struct {
	exprBase
	root Node

	Name        string
	NameContext *source.Context
}

func NewMember(ctx *source.Context, root Node, name string, nameCtx *source.Context) *Member {
	n := &Member{exprBase: exprBase{nodeBase{ctx: ctx}}, Name: name, NameContext: nameCtx}
	n.SetRoot(root)
	return n
}

func (n *Member) Root() Node               { return n.root }
func (n *Member) SetRoot(r Node)           { setChild(n, &n.root, r) }
func (n *Member) Accept(v Visitor)         { v.VisitMember(n) }
func (n *Member) Children() iter.Seq[Node] { return enumerate(n.root) }

func (n *Member) IsDebuggerStatement(patterns []string) bool {
	return !isNil(n.root) && n.root.IsDebuggerStatement(patterns)
}

func (n *Member) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.root) {
		n.SetRoot(newNode)
		return true
	}
	return false
}

func (n *Member) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Member)
	return ok && o.Name == n.Name && equivalent(n.root, o.root)
}

// CallNode is a call f(args), a construction new f(args), or a bracketed
// member access f[args].
type CallNode struct {
	exprBase
	function  Node
	arguments *NodeList

	IsConstructor bool
	InBrackets    bool
}

func NewCallNode(ctx *source.Context, function Node, args *NodeList) *CallNode {
	n := &CallNode{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetFunction(function)
	n.SetArguments(args)
	return n
}

func (n *CallNode) Function() Node           { return n.function }
func (n *CallNode) SetFunction(f Node)       { setChild(n, &n.function, f) }
func (n *CallNode) Arguments() *NodeList     { return n.arguments }
func (n *CallNode) SetArguments(l *NodeList) { setChild(n, &n.arguments, l) }
func (n *CallNode) Accept(v Visitor)         { v.VisitCallNode(n) }
func (n *CallNode) Children() iter.Seq[Node] { return enumerate(n.function, n.arguments) }

func (n *CallNode) IsDebuggerStatement(patterns []string) bool {
	return !isNil(n.function) && n.function.IsDebuggerStatement(patterns)
}

func (n *CallNode) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.function) {
		n.SetFunction(newNode)
		return true
	}
	if same(oldNode, n.arguments) {
		l, ok := slotValue[*NodeList](newNode)
		if !ok {
			return false
		}
		n.SetArguments(l)
		return true
	}
	return false
}

func (n *CallNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*CallNode)
	return ok && o.IsConstructor == n.IsConstructor && o.InBrackets == n.InBrackets &&
		equivalent(n.function, o.function) && equivalent(n.arguments, o.arguments)
}

// UnaryOperator is a prefix or postfix operator applied to one operand.
type UnaryOperator struct {
	exprBase
	operand Node

	OperatorToken   token.Kind
	OperatorContext *source.Context
	IsPostfix       bool
}

func NewUnaryOperator(ctx *source.Context, op token.Kind, operand Node, postfix bool) *UnaryOperator {
	n := &UnaryOperator{exprBase: exprBase{nodeBase{ctx: ctx}}, OperatorToken: op, IsPostfix: postfix}
	n.SetOperand(operand)
	return n
}

func (n *UnaryOperator) Operand() Node            { return n.operand }
func (n *UnaryOperator) SetOperand(o Node)        { setChild(n, &n.operand, o) }
func (n *UnaryOperator) Accept(v Visitor)         { v.VisitUnaryOperator(n) }
func (n *UnaryOperator) Children() iter.Seq[Node] { return enumerate(n.operand) }

// IsConstant holds for sign and logical operators over a constant operand.
func (n *UnaryOperator) IsConstant() bool {
	switch n.OperatorToken {
	case token.Minus, token.Plus, token.LogicalNot, token.BitwiseNot:
		return !isNil(n.operand) && n.operand.IsConstant()
	}
	return false
}

func (n *UnaryOperator) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.operand) {
		n.SetOperand(newNode)
		return true
	}
	return false
}

func (n *UnaryOperator) IsEquivalentTo(other Node) bool {
	o, ok := other.(*UnaryOperator)
	return ok && o.OperatorToken == n.OperatorToken && o.IsPostfix == n.IsPostfix &&
		equivalent(n.operand, o.operand)
}

// BinaryOperator is operand1 op operand2, assignments and comma included.
type BinaryOperator struct {
	exprBase
	operand1 Node
	operand2 Node

	OperatorToken   token.Kind
	OperatorContext *source.Context
}

func NewBinaryOperator(ctx *source.Context, op token.Kind, left, right Node) *BinaryOperator {
	n := &BinaryOperator{exprBase: exprBase{nodeBase{ctx: ctx}}, OperatorToken: op}
	n.SetOperand1(left)
	n.SetOperand2(right)
	return n
}

func (n *BinaryOperator) Operand1() Node           { return n.operand1 }
func (n *BinaryOperator) SetOperand1(o Node)       { setChild(n, &n.operand1, o) }
func (n *BinaryOperator) Operand2() Node           { return n.operand2 }
func (n *BinaryOperator) SetOperand2(o Node)       { setChild(n, &n.operand2, o) }
func (n *BinaryOperator) Accept(v Visitor)         { v.VisitBinaryOperator(n) }
func (n *BinaryOperator) Children() iter.Seq[Node] { return enumerate(n.operand1, n.operand2) }

// IsAssign reports whether the operator is = or a compound assignment.
func (n *BinaryOperator) IsAssign() bool { return n.OperatorToken.IsAssign() }

func (n *BinaryOperator) IsConstant() bool {
	return !n.IsAssign() && !isNil(n.operand1) && !isNil(n.operand2) &&
		n.operand1.IsConstant() && n.operand2.IsConstant()
}

func (n *BinaryOperator) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.operand1) {
		n.SetOperand1(newNode)
		return true
	}
	if same(oldNode, n.operand2) {
		n.SetOperand2(newNode)
		return true
	}
	return false
}

func (n *BinaryOperator) IsEquivalentTo(other Node) bool {
	o, ok := other.(*BinaryOperator)
	return ok && o.OperatorToken == n.OperatorToken &&
		equivalent(n.operand1, o.operand1) && equivalent(n.operand2, o.operand2)
}

// GroupingOperator is a parenthesized expression.
type GroupingOperator struct {
	exprBase
	operand Node
}

func NewGroupingOperator(ctx *source.Context, operand Node) *GroupingOperator {
	n := &GroupingOperator{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetOperand(operand)
	return n
}

func (n *GroupingOperator) Operand() Node            { return n.operand }
func (n *GroupingOperator) SetOperand(o Node)        { setChild(n, &n.operand, o) }
func (n *GroupingOperator) Accept(v Visitor)         { v.VisitGroupingOperator(n) }
func (n *GroupingOperator) Children() iter.Seq[Node] { return enumerate(n.operand) }
func (n *GroupingOperator) IsConstant() bool         { return !isNil(n.operand) && n.operand.IsConstant() }

func (n *GroupingOperator) IsDebuggerStatement(patterns []string) bool {
	return !isNil(n.operand) && n.operand.IsDebuggerStatement(patterns)
}

func (n *GroupingOperator) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.operand) {
		n.SetOperand(newNode)
		return true
	}
	return false
}

func (n *GroupingOperator) IsEquivalentTo(other Node) bool {
	o, ok := other.(*GroupingOperator)
	return ok && equivalent(n.operand, o.operand)
}

// Conditional is condition ? a : b.
type Conditional struct {
	exprBase
	condition Node
	trueExpr  Node
	falseExpr Node
}

func NewConditional(ctx *source.Context, cond, whenTrue, whenFalse Node) *Conditional {
	n := &Conditional{exprBase: exprBase{nodeBase{ctx: ctx}}}
	n.SetCondition(cond)
	n.SetTrueExpression(whenTrue)
	n.SetFalseExpression(whenFalse)
	return n
}

func (n *Conditional) Condition() Node           { return n.condition }
func (n *Conditional) SetCondition(c Node)       { setChild(n, &n.condition, c) }
func (n *Conditional) TrueExpression() Node      { return n.trueExpr }
func (n *Conditional) SetTrueExpression(e Node)  { setChild(n, &n.trueExpr, e) }
func (n *Conditional) FalseExpression() Node     { return n.falseExpr }
func (n *Conditional) SetFalseExpression(e Node) { setChild(n, &n.falseExpr, e) }
func (n *Conditional) Accept(v Visitor)          { v.VisitConditional(n) }
func (n *Conditional) Children() iter.Seq[Node] {
	return enumerate(n.condition, n.trueExpr, n.falseExpr)
}

func (n *Conditional) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.condition):
		n.SetCondition(newNode)
	case same(oldNode, n.trueExpr):
		n.SetTrueExpression(newNode)
	case same(oldNode, n.falseExpr):
		n.SetFalseExpression(newNode)
	default:
		return false
	}
	return true
}

func (n *Conditional) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Conditional)
	return ok && equivalent(n.condition, o.condition) &&
		equivalent(n.trueExpr, o.trueExpr) && equivalent(n.falseExpr, o.falseExpr)
}
