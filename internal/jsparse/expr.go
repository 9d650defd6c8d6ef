package jsparse

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/token"
)

func (b *builder) expr(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	ctx := b.ctx(n, token.None)
	switch n.Type() {
	case "identifier", "undefined":
		return ast.NewLookup(b.ctx(n, token.Identifier), b.text(n))

	case "this":
		return ast.NewThisLiteral(b.ctx(n, token.This))

	case "true":
		return ast.NewBoolean(b.ctx(n, token.True), true)

	case "false":
		return ast.NewBoolean(b.ctx(n, token.False), false)

	case "null":
		return ast.NewNull(b.ctx(n, token.Null))

	case "number":
		return b.number(n)

	case "string":
		return b.string(n)

	case "regex":
		var pattern, flags string
		if p := n.ChildByFieldName("pattern"); p != nil {
			pattern = b.text(p)
		}
		if f := n.ChildByFieldName("flags"); f != nil {
			flags = b.text(f)
		}
		return ast.NewRegExpLiteral(b.ctx(n, token.RegularExpression), pattern, flags)

	case "array":
		list := ast.NewNodeList(nil)
		for _, el := range named(n) {
			if el.Type() == "spread_element" {
				return b.unsupported(n)
			}
			list.Append(b.expr(el))
		}
		return ast.NewArrayLiteral(ctx, list)

	case "object":
		return b.object(n)

	case "member_expression":
		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() != "property_identifier" || tokenChild(n, "?.") != nil {
			return b.unsupported(n)
		}
		return ast.NewMember(ctx, b.expr(n.ChildByFieldName("object")), b.text(prop),
			b.ctx(prop, token.Identifier))

	case "subscript_expression":
		if tokenChild(n, "?.") != nil {
			return b.unsupported(n)
		}
		args := ast.NewNodeList(nil)
		args.Append(b.expr(n.ChildByFieldName("index")))
		call := ast.NewCallNode(ctx, b.expr(n.ChildByFieldName("object")), args)
		call.InBrackets = true
		return call

	case "call_expression":
		argsNode := n.ChildByFieldName("arguments")
		if argsNode == nil || argsNode.Type() != "arguments" || tokenChild(n, "?.") != nil {
			return b.unsupported(n)
		}
		args, ok := b.arguments(argsNode)
		if !ok {
			return b.unsupported(n)
		}
		return ast.NewCallNode(ctx, b.expr(n.ChildByFieldName("function")), args)

	case "new_expression":
		var args *ast.NodeList
		if argsNode := n.ChildByFieldName("arguments"); argsNode != nil {
			var ok bool
			if args, ok = b.arguments(argsNode); !ok {
				return b.unsupported(n)
			}
		}
		call := ast.NewCallNode(ctx, b.expr(n.ChildByFieldName("constructor")), args)
		call.IsConstructor = true
		return call

	case "assignment_expression":
		left := n.ChildByFieldName("left")
		if left == nil || isPattern(left) {
			return b.unsupported(n)
		}
		node := ast.NewBinaryOperator(ctx, token.Assign, b.expr(left), b.expr(n.ChildByFieldName("right")))
		if eq := tokenChild(n, "="); eq != nil {
			node.OperatorContext = b.ctx(eq, token.Assign)
		}
		return node

	case "augmented_assignment_expression", "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			return b.unsupported(n)
		}
		kind, ok := token.LookupOperator(op.Type())
		if !ok {
			return b.unsupported(n)
		}
		node := ast.NewBinaryOperator(ctx, kind, b.expr(n.ChildByFieldName("left")),
			b.expr(n.ChildByFieldName("right")))
		node.OperatorContext = b.ctx(op, kind)
		return node

	case "unary_expression", "update_expression":
		op := n.ChildByFieldName("operator")
		arg := n.ChildByFieldName("argument")
		if op == nil {
			return b.unsupported(n)
		}
		kind, ok := token.LookupOperator(op.Type())
		if !ok {
			return b.unsupported(n)
		}
		postfix := arg != nil && arg.StartByte() < op.StartByte()
		node := ast.NewUnaryOperator(ctx, kind, b.expr(arg), postfix)
		node.OperatorContext = b.ctx(op, kind)
		return node

	case "parenthesized_expression":
		return ast.NewGroupingOperator(ctx, b.expr(firstNamed(n)))

	case "ternary_expression":
		return ast.NewConditional(ctx, b.expr(n.ChildByFieldName("condition")),
			b.expr(n.ChildByFieldName("consequence")), b.expr(n.ChildByFieldName("alternative")))

	case "sequence_expression":
		var acc ast.Node
		for _, part := range named(n) {
			next := b.expr(part)
			if next == nil {
				continue
			}
			if acc == nil {
				acc = next
				continue
			}
			acc = ast.NewBinaryOperator(acc.Context().CombineWith(next.Context()), token.Comma, acc, next)
		}
		return acc

	case "function_expression", "function":
		return b.function(n, ast.FunctionExpression)

	case "ERROR":
		return nil
	}
	return b.unsupported(n)
}

func isPattern(n *sitter.Node) bool {
	switch n.Type() {
	case "object_pattern", "array_pattern":
		return true
	}
	return false
}

func (b *builder) arguments(n *sitter.Node) (*ast.NodeList, bool) {
	list := ast.NewNodeList(b.ctx(n, token.LeftParenthesis))
	for _, a := range named(n) {
		if a.Type() == "spread_element" {
			return nil, false
		}
		list.Append(b.expr(a))
	}
	return list, true
}

func (b *builder) object(n *sitter.Node) ast.Node {
	props := ast.NewNodeList(nil)
	for _, p := range named(n) {
		switch p.Type() {
		case "pair":
			key := b.propertyKey(p.ChildByFieldName("key"))
			if key == nil {
				return b.unsupported(n)
			}
			props.Append(ast.NewObjectLiteralProperty(b.ctx(p, token.None), key, b.expr(p.ChildByFieldName("value"))))
		case "shorthand_property_identifier":
			key := ast.NewObjectLiteralField(b.ctx(p, token.Identifier), b.text(p), ast.PrimitiveString)
			key.IsIdentifier = true
			props.Append(ast.NewObjectLiteralProperty(b.ctx(p, token.None), key,
				ast.NewLookup(b.ctx(p, token.Identifier), b.text(p))))
		default:
			return b.unsupported(n)
		}
	}
	return ast.NewObjectLiteral(b.ctx(n, token.LeftCurly), props)
}

func (b *builder) propertyKey(n *sitter.Node) *ast.ObjectLiteralField {
	if n == nil {
		return nil
	}
	ctx := b.ctx(n, token.None)
	switch n.Type() {
	case "property_identifier":
		f := ast.NewObjectLiteralField(ctx, b.text(n), ast.PrimitiveString)
		f.IsIdentifier = true
		return f
	case "string":
		s, _, err := unquote(b.text(n))
		if err != nil {
			return nil
		}
		return ast.NewObjectLiteralField(ctx, s, ast.PrimitiveString)
	case "number":
		v, _, err := parseNumber(b.text(n))
		if err != nil {
			return nil
		}
		return ast.NewObjectLiteralField(ctx, v, ast.PrimitiveNumber)
	}
	return nil
}

func (b *builder) number(n *sitter.Node) ast.Node {
	text := b.text(n)
	v, legacy, err := parseNumber(text)
	if errors.Is(err, errBigInt) {
		return b.unsupported(n)
	}
	if err != nil {
		b.report(n, diag.BadNumericLiteral, fmt.Sprintf("bad numeric literal %q", text))
		return ast.NewCustomNode(b.ctx(n, token.NumericLiteral), text)
	}
	c := ast.NewNumber(b.ctx(n, token.NumericLiteral), v)
	c.MayHaveIssues = legacy
	return c
}

func (b *builder) string(n *sitter.Node) ast.Node {
	text := b.text(n)
	s, odd, err := unquote(text)
	if err != nil {
		b.report(n, diag.SyntaxError, fmt.Sprintf("malformed string literal %s", shorten(text)))
		return ast.NewCustomNode(b.ctx(n, token.StringLiteral), text)
	}
	c := ast.NewString(b.ctx(n, token.StringLiteral), s)
	c.MayHaveIssues = odd
	return c
}
