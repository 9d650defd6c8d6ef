package ast

import (
	"iter"

	"jsmin/internal/source"
)

// bodyRequiresSeparator is the shared rule for statements ending in a body.
func bodyRequiresSeparator(body *Block) bool {
	if body == nil || body.Count() == 0 {
		return false
	}
	return body.RequiresSeparator()
}

func bodyEncloseBlock(body *Block, t EncloseBlockType) bool {
	return body != nil && body.EncloseBlock(t)
}

// ReturnNode is `return operand`.
type ReturnNode struct {
	nodeBase
	operand Node
}

func NewReturnNode(ctx *source.Context, operand Node) *ReturnNode {
	n := &ReturnNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetOperand(operand)
	return n
}

func (n *ReturnNode) Operand() Node            { return n.operand }
func (n *ReturnNode) SetOperand(o Node)        { setChild(n, &n.operand, o) }
func (n *ReturnNode) Accept(v Visitor)         { v.VisitReturnNode(n) }
func (n *ReturnNode) Children() iter.Seq[Node] { return enumerate(n.operand) }

func (n *ReturnNode) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.operand) {
		n.SetOperand(newNode)
		return true
	}
	return false
}

func (n *ReturnNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ReturnNode)
	return ok && equivalent(n.operand, o.operand)
}

// IfNode is `if (condition) trueBlock else falseBlock`.
type IfNode struct {
	nodeBase
	condition  Node
	trueBlock  *Block
	falseBlock *Block

	ElseContext *source.Context
}

func NewIfNode(ctx *source.Context, cond Node, whenTrue, whenFalse Node) *IfNode {
	n := &IfNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetCondition(cond)
	n.SetTrueBlock(ForceToBlock(whenTrue))
	n.SetFalseBlock(ForceToBlock(whenFalse))
	return n
}

func (n *IfNode) Condition() Node          { return n.condition }
func (n *IfNode) SetCondition(c Node)      { setChild(n, &n.condition, c) }
func (n *IfNode) TrueBlock() *Block        { return n.trueBlock }
func (n *IfNode) SetTrueBlock(b *Block)    { setChild(n, &n.trueBlock, b) }
func (n *IfNode) FalseBlock() *Block       { return n.falseBlock }
func (n *IfNode) SetFalseBlock(b *Block)   { setChild(n, &n.falseBlock, b) }
func (n *IfNode) Accept(v Visitor)         { v.VisitIfNode(n) }
func (n *IfNode) Children() iter.Seq[Node] { return enumerate(n.condition, n.trueBlock, n.falseBlock) }

func (n *IfNode) RequiresSeparator() bool {
	if n.falseBlock != nil {
		return bodyRequiresSeparator(n.falseBlock)
	}
	return bodyRequiresSeparator(n.trueBlock)
}

func (n *IfNode) EncloseBlock(t EncloseBlockType) bool {
	if t == EncloseIfWithoutElse {
		if n.falseBlock == nil {
			return true
		}
		return n.falseBlock.EncloseBlock(t)
	}
	if n.falseBlock != nil {
		return n.falseBlock.EncloseBlock(t)
	}
	return bodyEncloseBlock(n.trueBlock, t)
}

func (n *IfNode) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.condition):
		n.SetCondition(newNode)
	case same(oldNode, n.trueBlock):
		n.SetTrueBlock(ForceToBlock(newNode))
	case same(oldNode, n.falseBlock):
		n.SetFalseBlock(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *IfNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*IfNode)
	return ok && equivalent(n.condition, o.condition) &&
		equivalent(n.trueBlock, o.trueBlock) && equivalent(n.falseBlock, o.falseBlock)
}

// WhileNode is a while loop, or a do-while loop when IsDoWhile is set.
type WhileNode struct {
	nodeBase
	condition Node
	body      *Block

	IsDoWhile bool
}

func NewWhileNode(ctx *source.Context, cond Node, body Node, doWhile bool) *WhileNode {
	n := &WhileNode{nodeBase: nodeBase{ctx: ctx}, IsDoWhile: doWhile}
	n.SetCondition(cond)
	n.SetBody(ForceToBlock(body))
	return n
}

func (n *WhileNode) Condition() Node     { return n.condition }
func (n *WhileNode) SetCondition(c Node) { setChild(n, &n.condition, c) }
func (n *WhileNode) Body() *Block        { return n.body }
func (n *WhileNode) SetBody(b *Block)    { setChild(n, &n.body, b) }
func (n *WhileNode) Accept(v Visitor)    { v.VisitWhileNode(n) }
func (n *WhileNode) Children() iter.Seq[Node] {
	if n.IsDoWhile {
		return enumerate(n.body, n.condition)
	}
	return enumerate(n.condition, n.body)
}

func (n *WhileNode) RequiresSeparator() bool {
	if n.IsDoWhile {
		return true
	}
	return bodyRequiresSeparator(n.body)
}

func (n *WhileNode) EncloseBlock(t EncloseBlockType) bool {
	if n.IsDoWhile {
		return t == EncloseSingleDoWhile
	}
	return bodyEncloseBlock(n.body, t)
}

func (n *WhileNode) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.condition):
		n.SetCondition(newNode)
	case same(oldNode, n.body):
		n.SetBody(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *WhileNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*WhileNode)
	return ok && o.IsDoWhile == n.IsDoWhile &&
		equivalent(n.condition, o.condition) && equivalent(n.body, o.body)
}

// ForNode is `for (initializer; condition; incrementer) body`.
type ForNode struct {
	nodeBase
	initializer Node
	condition   Node
	incrementer Node
	body        *Block
}

func NewForNode(ctx *source.Context, init, cond, incr, body Node) *ForNode {
	n := &ForNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetInitializer(init)
	n.SetCondition(cond)
	n.SetIncrementer(incr)
	n.SetBody(ForceToBlock(body))
	return n
}

func (n *ForNode) Initializer() Node       { return n.initializer }
func (n *ForNode) SetInitializer(i Node)   { setChild(n, &n.initializer, i) }
func (n *ForNode) Condition() Node         { return n.condition }
func (n *ForNode) SetCondition(c Node)     { setChild(n, &n.condition, c) }
func (n *ForNode) Incrementer() Node       { return n.incrementer }
func (n *ForNode) SetIncrementer(i Node)   { setChild(n, &n.incrementer, i) }
func (n *ForNode) Body() *Block            { return n.body }
func (n *ForNode) SetBody(b *Block)        { setChild(n, &n.body, b) }
func (n *ForNode) Accept(v Visitor)        { v.VisitForNode(n) }
func (n *ForNode) RequiresSeparator() bool { return bodyRequiresSeparator(n.body) }
func (n *ForNode) EncloseBlock(t EncloseBlockType) bool {
	return bodyEncloseBlock(n.body, t)
}
func (n *ForNode) Children() iter.Seq[Node] {
	return enumerate(n.initializer, n.condition, n.incrementer, n.body)
}

func (n *ForNode) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.initializer):
		n.SetInitializer(newNode)
	case same(oldNode, n.condition):
		n.SetCondition(newNode)
	case same(oldNode, n.incrementer):
		n.SetIncrementer(newNode)
	case same(oldNode, n.body):
		n.SetBody(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *ForNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ForNode)
	return ok && equivalent(n.initializer, o.initializer) && equivalent(n.condition, o.condition) &&
		equivalent(n.incrementer, o.incrementer) && equivalent(n.body, o.body)
}

// Break is `break label`.
type Break struct {
	nodeBase
	Label string
}

func NewBreak(ctx *source.Context, label string) *Break {
	return &Break{nodeBase: nodeBase{ctx: ctx}, Label: label}
}

func (n *Break) Accept(v Visitor) { v.VisitBreak(n) }
func (n *Break) IsEquivalentTo(other Node) bool {
	o, ok := other.(*Break)
	return ok && o.Label == n.Label
}

// ContinueNode is `continue label`.
type ContinueNode struct {
	nodeBase
	Label string
}

func NewContinueNode(ctx *source.Context, label string) *ContinueNode {
	return &ContinueNode{nodeBase: nodeBase{ctx: ctx}, Label: label}
}

func (n *ContinueNode) Accept(v Visitor) { v.VisitContinueNode(n) }
func (n *ContinueNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ContinueNode)
	return ok && o.Label == n.Label
}

// ThrowNode is `throw operand`.
type ThrowNode struct {
	nodeBase
	operand Node
}

func NewThrowNode(ctx *source.Context, operand Node) *ThrowNode {
	n := &ThrowNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetOperand(operand)
	return n
}

func (n *ThrowNode) Operand() Node            { return n.operand }
func (n *ThrowNode) SetOperand(o Node)        { setChild(n, &n.operand, o) }
func (n *ThrowNode) Accept(v Visitor)         { v.VisitThrowNode(n) }
func (n *ThrowNode) Children() iter.Seq[Node] { return enumerate(n.operand) }

func (n *ThrowNode) ReplaceChild(oldNode, newNode Node) bool {
	if same(oldNode, n.operand) {
		n.SetOperand(newNode)
		return true
	}
	return false
}

func (n *ThrowNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*ThrowNode)
	return ok && equivalent(n.operand, o.operand)
}

// TryNode is try/catch/finally. The catch block owns the catch scope.
type TryNode struct {
	nodeBase
	tryBlock       *Block
	catchParameter *ParameterDeclaration
	catchBlock     *Block
	finallyBlock   *Block
}

func NewTryNode(ctx *source.Context, tryBlock *Block, catchParam *ParameterDeclaration, catchBlock, finallyBlock *Block) *TryNode {
	n := &TryNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetTryBlock(tryBlock)
	n.SetCatchParameter(catchParam)
	n.SetCatchBlock(catchBlock)
	n.SetFinallyBlock(finallyBlock)
	return n
}

func (n *TryNode) TryBlock() *Block                          { return n.tryBlock }
func (n *TryNode) SetTryBlock(b *Block)                      { setChild(n, &n.tryBlock, b) }
func (n *TryNode) CatchParameter() *ParameterDeclaration     { return n.catchParameter }
func (n *TryNode) SetCatchParameter(p *ParameterDeclaration) { setChild(n, &n.catchParameter, p) }
func (n *TryNode) CatchBlock() *Block                        { return n.catchBlock }
func (n *TryNode) SetCatchBlock(b *Block)                    { setChild(n, &n.catchBlock, b) }
func (n *TryNode) FinallyBlock() *Block                      { return n.finallyBlock }
func (n *TryNode) SetFinallyBlock(b *Block)                  { setChild(n, &n.finallyBlock, b) }
func (n *TryNode) Accept(v Visitor)                          { v.VisitTryNode(n) }
func (n *TryNode) RequiresSeparator() bool                   { return false }
func (n *TryNode) Children() iter.Seq[Node] {
	return enumerate(n.tryBlock, n.catchParameter, n.catchBlock, n.finallyBlock)
}

func (n *TryNode) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.tryBlock):
		n.SetTryBlock(ForceToBlock(newNode))
	case same(oldNode, n.catchParameter):
		p, ok := slotValue[*ParameterDeclaration](newNode)
		if !ok {
			return false
		}
		n.SetCatchParameter(p)
	case same(oldNode, n.catchBlock):
		n.SetCatchBlock(ForceToBlock(newNode))
	case same(oldNode, n.finallyBlock):
		n.SetFinallyBlock(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *TryNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*TryNode)
	return ok && equivalent(n.tryBlock, o.tryBlock) && equivalent(n.catchParameter, o.catchParameter) &&
		equivalent(n.catchBlock, o.catchBlock) && equivalent(n.finallyBlock, o.finallyBlock)
}

// WithNode is `with (object) body`. The body owns the with scope.
type WithNode struct {
	nodeBase
	withObject Node
	body       *Block
}

func NewWithNode(ctx *source.Context, object Node, body Node) *WithNode {
	n := &WithNode{nodeBase: nodeBase{ctx: ctx}}
	n.SetWithObject(object)
	n.SetBody(ForceToBlock(body))
	return n
}

func (n *WithNode) WithObject() Node         { return n.withObject }
func (n *WithNode) SetWithObject(o Node)     { setChild(n, &n.withObject, o) }
func (n *WithNode) Body() *Block             { return n.body }
func (n *WithNode) SetBody(b *Block)         { setChild(n, &n.body, b) }
func (n *WithNode) Accept(v Visitor)         { v.VisitWithNode(n) }
func (n *WithNode) Children() iter.Seq[Node] { return enumerate(n.withObject, n.body) }
func (n *WithNode) RequiresSeparator() bool  { return bodyRequiresSeparator(n.body) }
func (n *WithNode) EncloseBlock(t EncloseBlockType) bool {
	return bodyEncloseBlock(n.body, t)
}

func (n *WithNode) ReplaceChild(oldNode, newNode Node) bool {
	switch {
	case same(oldNode, n.withObject):
		n.SetWithObject(newNode)
	case same(oldNode, n.body):
		n.SetBody(ForceToBlock(newNode))
	default:
		return false
	}
	return true
}

func (n *WithNode) IsEquivalentTo(other Node) bool {
	o, ok := other.(*WithNode)
	return ok && equivalent(n.withObject, o.withObject) && equivalent(n.body, o.body)
}

// DebuggerNode is the `debugger` statement.
type DebuggerNode struct{ nodeBase }

func NewDebuggerNode(ctx *source.Context) *DebuggerNode {
	return &DebuggerNode{nodeBase{ctx: ctx}}
}

func (n *DebuggerNode) Accept(v Visitor) { v.VisitDebuggerNode(n) }
func (n *DebuggerNode) IsEquivalentTo(other Node) bool {
	_, ok := other.(*DebuggerNode)
	return ok
}
