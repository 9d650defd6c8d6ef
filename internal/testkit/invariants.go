// Package testkit holds checks shared by tests of packages that build trees.
package testkit

import (
	"fmt"

	"jsmin/internal/ast"
	"jsmin/internal/source"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a tree
// built for doc:
// 1) every context belongs to doc and lies within its bounds
// 2) every context's start line matches the document's line index
// 3) every child points back at the node that yields it
func CheckTreeInvariants(root ast.Node, doc *source.Document) error {
	if root == nil || doc == nil {
		return fmt.Errorf("nil tree or document")
	}
	var firstErr error
	fail := func(format string, args ...any) {
		if firstErr == nil {
			firstErr = fmt.Errorf(format, args...)
		}
	}

	ast.Inspect(root, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if ctx := n.Context(); ctx != nil {
			checkContext(n, ctx, doc, fail)
		}
		for child := range n.Children() {
			if p := child.Parent(); p != n {
				fail("%T: child %T has parent %T", n, child, p)
				return false
			}
		}
		return true
	})
	return firstErr
}

func checkContext(n ast.Node, ctx *source.Context, doc *source.Document, fail func(string, ...any)) {
	if ctx.Document != doc {
		fail("%T: context belongs to another document", n)
		return
	}
	if ctx.StartPosition < 0 || ctx.EndPosition < ctx.StartPosition || ctx.EndPosition > doc.Len() {
		fail("%T: context [%d,%d) outside document of length %d", n, ctx.StartPosition, ctx.EndPosition, doc.Len())
		return
	}
	if want := int(doc.LineCol(ctx.StartPosition).Line); ctx.StartLineNumber != want {
		fail("%T: start line %d, document says %d", n, ctx.StartLineNumber, want)
	}
}
