package bind

import (
	"fmt"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/symbols"
)

// reportUnreferenced flags locals and function declarations nothing uses.
// Globals are left alone since other scripts may use them.
func (b *binder) reportUnreferenced() {
	for _, scope := range b.table.Scopes.Data() {
		if scope.Kind != symbols.ScopeFunction && scope.Kind != symbols.ScopeBlock {
			continue
		}
		for _, f := range scope.Fields() {
			b.reportField(f)
		}
	}
}

func (b *binder) reportField(f *symbols.Field) {
	if fn, ok := f.Value.(*ast.FunctionObject); ok && f.IsFunction {
		// aliases created by closures carry the same value; only the
		// declaring field reports
		if fn.VariableField() == f && fn.FunctionType == ast.FunctionDeclaration && !fn.IsReferenced() {
			b.report(f.OriginalContext, diag.FunctionNotReferenced,
				fmt.Sprintf("function %q is declared but never referenced", f.Name()))
		}
		return
	}
	if f.Type == symbols.FieldLocal && f.OuterField() == nil && f.IsDeclared() && f.RefCount() == 0 {
		b.report(f.OriginalContext, diag.VariableNotReferenced,
			fmt.Sprintf("variable %q is declared but never referenced", f.Name()))
	}
}
