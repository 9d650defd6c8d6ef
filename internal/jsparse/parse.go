package jsparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/source"
	"jsmin/internal/token"
)

// Parse builds the program tree for doc. Syntax problems are reported to the
// document as diagnostics; the returned error covers only parser failures
// and cancellation.
func Parse(ctx context.Context, doc *source.Document) (*ast.Program, error) {
	if doc == nil {
		return nil, fmt.Errorf("jsparse: nil document")
	}
	return parse(ctx, doc, []byte(doc.Source), 0)
}

// ParseValue parses doc as a single expression, the way a JSON text is read:
// a leading '{' starts an object literal rather than a block. The program
// body holds that one expression.
func ParseValue(ctx context.Context, doc *source.Document) (*ast.Program, error) {
	if doc == nil {
		return nil, fmt.Errorf("jsparse: nil document")
	}
	wrapped := make([]byte, 0, len(doc.Source)+3)
	wrapped = append(wrapped, '(')
	wrapped = append(wrapped, doc.Source...)
	wrapped = append(wrapped, '\n', ')')

	prog, err := parse(ctx, doc, wrapped, 1)
	if err != nil {
		return nil, err
	}
	body := prog.Body()
	if body.Count() == 1 {
		if g, ok := body.At(0).(*ast.GroupingOperator); ok && g.Operand() != nil {
			body.Set(0, g.Operand())
		}
	}
	return prog, nil
}

func parse(ctx context.Context, doc *source.Document, src []byte, shift int) (*ast.Program, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("jsparse: %s: %w", doc.Path, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("jsparse: %s: %w", doc.Path, err)
	}

	b := &builder{doc: doc, src: src, shift: shift}
	root := tree.RootNode()
	if root.HasError() {
		b.reportSyntaxErrors(root)
	}
	return b.program(root), nil
}

type builder struct {
	doc *source.Document
	src []byte
	// shift is the number of bytes prepended to the document text in src
	shift int
}

func (b *builder) ctx(n *sitter.Node, tok token.Kind) *source.Context {
	start, end := b.offsets(n)
	return b.doc.ContextAt(start, end, tok)
}

// offsets maps n back onto the document, clamping bytes that belong to the
// ParseValue wrapper.
func (b *builder) offsets(n *sitter.Node) (start, end int) {
	limit := b.doc.Len()
	start = min(max(int(n.StartByte())-b.shift, 0), limit)
	end = min(max(int(n.EndByte())-b.shift, start), limit)
	return start, end
}

func (b *builder) text(n *sitter.Node) string { return n.Content(b.src) }

func (b *builder) report(n *sitter.Node, code diag.Code, msg string) {
	b.ctx(n, token.None).HandleErrorMessage(code, false, msg)
}

// unsupported keeps n verbatim.
func (b *builder) unsupported(n *sitter.Node) ast.Node {
	b.report(n, diag.UnsupportedSyntax, fmt.Sprintf("%s is not supported and is kept verbatim", readable(n.Type())))
	return ast.NewCustomNode(b.ctx(n, token.None), b.text(n))
}

func (b *builder) reportSyntaxErrors(n *sitter.Node) {
	switch {
	case n.IsMissing():
		b.report(n, diag.SyntaxError, fmt.Sprintf("missing %q", n.Type()))
		return
	case n.IsError():
		b.report(n, diag.SyntaxError, fmt.Sprintf("unexpected %q", shorten(b.text(n))))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && (c.HasError() || c.IsMissing()) {
			b.reportSyntaxErrors(c)
		}
	}
}

func readable(nodeType string) string {
	out := []byte(nodeType)
	for i, c := range out {
		if c == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}

func shorten(s string) string {
	const limit = 24
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// named returns the named children of n without comments.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := named(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// tokenChild finds the anonymous child spelled typ.
func tokenChild(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && !c.IsNamed() && c.Type() == typ {
			return c
		}
	}
	return nil
}
