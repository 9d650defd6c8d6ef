package bind

import (
	"fmt"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/symbols"
)

// resolve is the reference walk: it binds every Lookup to a field.
func (b *binder) resolve(n ast.Node, scope *symbols.Scope) {
	if !b.enter(n) {
		b.leave()
		return
	}
	defer b.leave()

	switch node := n.(type) {
	case *ast.FunctionObject:
		if node.Scope != nil {
			scope = node.Scope
		}

	case *ast.Block:
		if node.Scope != nil {
			scope = node.Scope
		}

	case *ast.Lookup:
		b.resolveLookup(node, scope)
		return

	case *ast.CallNode:
		if callee, ok := node.Function().(*ast.Lookup); ok {
			if node.IsConstructor {
				callee.RefType = ast.RefConstructor
			} else if !node.InBrackets {
				callee.RefType = ast.RefFunction
			}
		}
		b.resolveChildren(node, scope)
		b.checkEval(node, scope)
		return

	case *ast.ObjectLiteral:
		b.checkDuplicateKeys(node)
	}

	b.resolveChildren(n, scope)
}

func (b *binder) resolveChildren(n ast.Node, scope *symbols.Scope) {
	for child := range n.Children() {
		b.resolve(child, scope)
	}
}

// resolveLookup binds l to the nearest visible field. Every function or with
// scope crossed on the way out gets an alias of the found field, innermost
// alias last, and l references the innermost one.
func (b *binder) resolveLookup(l *ast.Lookup, scope *symbols.Scope) {
	name := l.Name()
	b.checkNormalized(name, l.Context())

	found, where := scope.Resolve(name)
	if found == nil {
		found, where = b.undefinedGlobal(l, scope.Global())
	} else if found.Type == symbols.FieldUndefinedGlobal {
		b.reportUndeclared(l)
	}

	var crossed []*symbols.Scope
	for cur := scope; cur != nil && cur != where; cur = cur.Parent {
		if cur.Kind == symbols.ScopeFunction || cur.Kind == symbols.ScopeWith {
			crossed = append(crossed, cur)
		}
	}

	field := found
	for i := len(crossed) - 1; i >= 0; i-- {
		s := crossed[i]
		ft := field.Type
		if s.Kind == symbols.ScopeWith {
			ft = symbols.FieldWithField
		}
		field = b.resolver.DeclareAlias(s, ft, field, l.Context())
	}

	l.SetVariableField(field)
	field.AddReference(l)
}

func (b *binder) undefinedGlobal(l *ast.Lookup, global *symbols.Scope) (*symbols.Field, *symbols.Scope) {
	f := b.table.NewField(symbols.FieldUndefinedGlobal, l.Name(), 0, nil)
	f.OriginalContext = l.Context()
	global.Declare(f)
	b.result.Undefined = append(b.result.Undefined, f)
	b.reportUndeclared(l)
	return f, global
}

func (b *binder) reportUndeclared(l *ast.Lookup) {
	code := diag.UndeclaredVariable
	if l.RefType != ast.RefVariable {
		code = diag.UndeclaredFunction
	}
	b.report(l.Context(), code, fmt.Sprintf("%s: %s", code.Title(), l.Name()))
}

// checkEval marks the scope chain unknown for a direct call of the host eval.
func (b *binder) checkEval(call *ast.CallNode, scope *symbols.Scope) {
	callee, ok := call.Function().(*ast.Lookup)
	if !ok || callee.Name() != "eval" || call.IsConstructor || call.InBrackets {
		return
	}
	if f := callee.VariableField(); f == nil || f.Ultimate().Type != symbols.FieldPredefined {
		return
	}
	scope.MarkUnknown()
	b.report(call.Context(), diag.EvalPreventsCrunch, "")
}

func (b *binder) checkDuplicateKeys(obj *ast.ObjectLiteral) {
	props := obj.Properties()
	if props == nil {
		return
	}
	seen := make(map[string]struct{}, props.Count())
	for _, item := range props.Items() {
		prop, ok := item.(*ast.ObjectLiteralProperty)
		if !ok || prop.Name() == nil {
			continue
		}
		key := prop.Name().String()
		if _, dup := seen[key]; dup {
			b.report(prop.Name().Context(), diag.ObjectLiteralKeyDuplicate,
				fmt.Sprintf("duplicate key %q in object literal", key))
			continue
		}
		seen[key] = struct{}{}
	}
}
