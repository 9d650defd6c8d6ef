package jsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/token"
)

func (b *builder) program(root *sitter.Node) *ast.Program {
	body := ast.NewBlock(b.ctx(root, token.None))
	b.statements(root, body)
	return ast.NewProgram(b.doc, body)
}

func (b *builder) statements(parent *sitter.Node, into *ast.Block) {
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		c := parent.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "comment":
			if cc := b.conditionalComment(c); cc != nil {
				into.Append(cc)
			}
			continue
		case "hash_bang_line", "html_comment":
			continue
		}
		if stmt := b.statement(c); stmt != nil {
			into.Append(stmt)
		}
	}
}

// conditionalComment turns /*@ ... @*/ into a container node; other comments
// are dropped.
func (b *builder) conditionalComment(n *sitter.Node) ast.Node {
	text := b.text(n)
	if !strings.HasPrefix(text, "/*@") || !strings.HasSuffix(text, "@*/") || len(text) < 6 {
		return nil
	}
	start, end := b.offsets(n)
	cc := ast.NewConditionalCompilationComment(b.ctx(n, token.ConditionalCommentStart))
	inner := b.doc.ContextAt(start+3, end-3, token.None)
	cc.Append(ast.NewCustomNode(inner, text[3:len(text)-3]))
	return cc
}

func (b *builder) block(n *sitter.Node) *ast.Block {
	if n == nil {
		return nil
	}
	if n.Type() != "statement_block" {
		return ast.ForceToBlock(b.statement(n))
	}
	bl := ast.NewBlock(b.ctx(n, token.LeftCurly))
	bl.HasBraces = true
	b.statements(n, bl)
	return bl
}

func (b *builder) statement(n *sitter.Node) ast.Node {
	ctx := b.ctx(n, token.None)
	switch n.Type() {
	case "expression_statement":
		return b.expr(firstNamed(n))

	case "variable_declaration":
		return b.varDecl(n)

	case "lexical_declaration":
		b.report(n, diag.UnsupportedSyntax, "let and const are treated as var")
		return b.varDecl(n)

	case "function_declaration":
		return b.function(n, ast.FunctionDeclaration)

	case "statement_block":
		return b.block(n)

	case "empty_statement":
		return ast.NewEmptyStatement(ctx)

	case "return_statement":
		return ast.NewReturnNode(ctx, b.expr(firstNamed(n)))

	case "throw_statement":
		return ast.NewThrowNode(ctx, b.expr(firstNamed(n)))

	case "if_statement":
		var alt ast.Node
		elseClause := n.ChildByFieldName("alternative")
		if elseClause != nil {
			alt = b.statement(firstNamed(elseClause))
		}
		node := ast.NewIfNode(ctx, b.cond(n.ChildByFieldName("condition")),
			b.statement(n.ChildByFieldName("consequence")), alt)
		if elseClause != nil {
			if kw := tokenChild(elseClause, "else"); kw != nil {
				node.ElseContext = b.ctx(kw, token.Else)
			}
		}
		return node

	case "while_statement":
		return ast.NewWhileNode(ctx, b.cond(n.ChildByFieldName("condition")),
			b.statement(n.ChildByFieldName("body")), false)

	case "do_statement":
		return ast.NewWhileNode(ctx, b.cond(n.ChildByFieldName("condition")),
			b.statement(n.ChildByFieldName("body")), true)

	case "for_statement":
		return ast.NewForNode(ctx,
			b.forClause(n.ChildByFieldName("initializer")),
			b.forClause(n.ChildByFieldName("condition")),
			b.forClause(n.ChildByFieldName("increment")),
			b.statement(n.ChildByFieldName("body")))

	case "for_in_statement":
		return b.forIn(n)

	case "break_statement":
		return ast.NewBreak(ctx, b.label(n))

	case "continue_statement":
		return ast.NewContinueNode(ctx, b.label(n))

	case "try_statement":
		return b.try(n)

	case "with_statement":
		return ast.NewWithNode(ctx, b.cond(n.ChildByFieldName("object")),
			b.statement(n.ChildByFieldName("body")))

	case "debugger_statement":
		return ast.NewDebuggerNode(ctx)

	case "ERROR":
		// already reported
		return nil
	}
	return b.unsupported(n)
}

// cond unwraps the parentheses of a statement header.
func (b *builder) cond(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "parenthesized_expression" {
		return b.expr(firstNamed(n))
	}
	return b.expr(n)
}

func (b *builder) forClause(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "empty_statement", ";":
		return nil
	case "expression_statement":
		return b.expr(firstNamed(n))
	case "variable_declaration":
		return b.varDecl(n)
	case "lexical_declaration":
		b.report(n, diag.UnsupportedSyntax, "let and const are treated as var")
		return b.varDecl(n)
	}
	return b.expr(n)
}

func (b *builder) label(n *sitter.Node) string {
	if l := n.ChildByFieldName("label"); l != nil {
		return b.text(l)
	}
	return ""
}

func (b *builder) varDecl(n *sitter.Node) ast.Node {
	v := ast.NewVar(b.ctx(n, token.Var))
	for _, d := range named(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			return b.unsupported(n)
		}
		value := d.ChildByFieldName("value")
		decl := ast.NewVariableDeclaration(b.ctx(d, token.None), b.text(name),
			b.ctx(name, token.Identifier), b.expr(value))
		if eq := tokenChild(d, "="); eq != nil {
			decl.AssignContext = b.ctx(eq, token.Assign)
		}
		v.Append(decl)
	}
	return v
}

func (b *builder) forIn(n *sitter.Node) ast.Node {
	op := n.ChildByFieldName("operator")
	if op == nil || op.Type() != "in" || tokenChild(n, "await") != nil {
		return b.unsupported(n)
	}
	left := n.ChildByFieldName("left")
	if left == nil {
		return b.unsupported(n)
	}

	var variable ast.Node
	if kind := n.ChildByFieldName("kind"); kind != nil {
		if kind.Type() != "var" {
			b.report(kind, diag.UnsupportedSyntax, "let and const are treated as var")
		}
		if left.Type() != "identifier" {
			return b.unsupported(n)
		}
		v := ast.NewVar(b.ctx(kind, token.Var))
		v.Append(ast.NewVariableDeclaration(b.ctx(left, token.Identifier), b.text(left),
			b.ctx(left, token.Identifier), nil))
		variable = v
	} else {
		variable = b.expr(left)
	}

	node := ast.NewForIn(b.ctx(n, token.For), variable, b.expr(n.ChildByFieldName("right")),
		b.statement(n.ChildByFieldName("body")))
	node.OperatorContext = b.ctx(op, token.In)
	return node
}

func (b *builder) try(n *sitter.Node) ast.Node {
	body := b.block(n.ChildByFieldName("body"))

	var param *ast.ParameterDeclaration
	var catchBlock, finallyBlock *ast.Block
	if handler := n.ChildByFieldName("handler"); handler != nil {
		if p := handler.ChildByFieldName("parameter"); p != nil {
			if p.Type() != "identifier" {
				return b.unsupported(n)
			}
			param = ast.NewParameterDeclaration(b.ctx(p, token.Identifier), b.text(p), 0)
		}
		catchBlock = b.block(handler.ChildByFieldName("body"))
		if catchBlock == nil {
			catchBlock = ast.NewBlock(b.ctx(handler, token.Catch))
		}
	}
	if fin := n.ChildByFieldName("finalizer"); fin != nil {
		finallyBlock = b.block(fin.ChildByFieldName("body"))
	}
	if catchBlock == nil && finallyBlock == nil {
		b.report(n, diag.NoCatchOrFinally, "")
	}
	return ast.NewTryNode(b.ctx(n, token.Try), body, param, catchBlock, finallyBlock)
}

func (b *builder) function(n *sitter.Node, ft ast.FunctionType) ast.Node {
	if tokenChild(n, "async") != nil || tokenChild(n, "*") != nil {
		return b.unsupported(n)
	}
	paramsNode := n.ChildByFieldName("parameters")
	params := ast.NewNodeList(nil)
	if paramsNode != nil {
		for i, p := range named(paramsNode) {
			if p.Type() != "identifier" {
				return b.unsupported(n)
			}
			params.Append(ast.NewParameterDeclaration(b.ctx(p, token.Identifier), b.text(p), i))
		}
	}

	var name string
	nameNode := n.ChildByFieldName("name")
	if nameNode != nil {
		name = b.text(nameNode)
	}
	fn := ast.NewFunctionObject(b.ctx(n, token.Function), ft, name, params,
		b.block(n.ChildByFieldName("body")))
	if nameNode != nil {
		fn.NameContext = b.ctx(nameNode, token.Identifier)
	}
	return fn
}
