// Package rewrite holds tree transformations that run between binding and
// output.
package rewrite

import (
	"jsmin/internal/ast"
	"jsmin/internal/diag"
)

// DefaultDebugLookups are the namespaces whose calls count as debug-only.
var DefaultDebugLookups = []string{"Debug", "$Debug", "WAssert", "Msn.Debug", "Web.Debug"}

// StripDebug removes debugger statements and statements rooted at one of the
// debug lookups from every block under root. References held by removed
// lookups are released from their fields. It returns the number of
// statements removed.
func StripDebug(root ast.Node, lookups []string) int {
	removed := 0
	ast.Walk(root, func(n ast.Node) bool {
		block, ok := n.(*ast.Block)
		if !ok {
			return true
		}
		for i := block.Count() - 1; i >= 0; i-- {
			stmt := block.At(i)
			if !isDebugStatement(stmt, lookups) {
				continue
			}
			release(stmt)
			block.RemoveAt(i)
			removed++
			if ctx := stmt.Context(); ctx != nil {
				ctx.HandleError(diag.DebugStatementRemoved, false)
			}
		}
		return true
	}, nil)
	return removed
}

func isDebugStatement(stmt ast.Node, lookups []string) bool {
	if _, ok := stmt.(*ast.DebuggerNode); ok {
		return true
	}
	return len(lookups) > 0 && stmt.IsDebuggerStatement(lookups)
}

// release drops the references the lookups under n contributed, at every
// level of their alias chains.
func release(n ast.Node) {
	ast.Inspect(n, func(node ast.Node) bool {
		l, ok := node.(*ast.Lookup)
		if !ok {
			return true
		}
		for f := l.VariableField(); f != nil; f = f.OuterField() {
			f.RemoveReference(l)
		}
		return true
	})
}
