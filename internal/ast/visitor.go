package ast

// Visitor has one method per node kind. Implementations must handle every
// kind; there is no default.
type Visitor interface {
	VisitProgram(n *Program)
	VisitBlock(n *Block)
	VisitNodeList(n *NodeList)
	VisitConstantWrapper(n *ConstantWrapper)
	VisitArrayLiteral(n *ArrayLiteral)
	VisitObjectLiteral(n *ObjectLiteral)
	VisitObjectLiteralProperty(n *ObjectLiteralProperty)
	VisitObjectLiteralField(n *ObjectLiteralField)
	VisitRegExpLiteral(n *RegExpLiteral)
	VisitThisLiteral(n *ThisLiteral)
	VisitCustomNode(n *CustomNode)
	VisitLookup(n *Lookup)
	VisitMember(n *Member)
	VisitCallNode(n *CallNode)
	VisitUnaryOperator(n *UnaryOperator)
	VisitBinaryOperator(n *BinaryOperator)
	VisitGroupingOperator(n *GroupingOperator)
	VisitConditional(n *Conditional)
	VisitFunctionObject(n *FunctionObject)
	VisitParameterDeclaration(n *ParameterDeclaration)
	VisitVar(n *Var)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitReturnNode(n *ReturnNode)
	VisitIfNode(n *IfNode)
	VisitWhileNode(n *WhileNode)
	VisitForNode(n *ForNode)
	VisitForIn(n *ForIn)
	VisitBreak(n *Break)
	VisitContinueNode(n *ContinueNode)
	VisitThrowNode(n *ThrowNode)
	VisitTryNode(n *TryNode)
	VisitWithNode(n *WithNode)
	VisitDebuggerNode(n *DebuggerNode)
	VisitEmptyStatement(n *EmptyStatement)
	VisitConditionalCompilationComment(n *ConditionalCompilationComment)
}
