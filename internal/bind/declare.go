package bind

import (
	"fmt"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// declare is the hoisting walk: it opens scopes and creates every declared field.
func (b *binder) declare(n ast.Node, scope *symbols.Scope) {
	if !b.enter(n) {
		b.leave()
		return
	}
	defer b.leave()

	switch node := n.(type) {
	case *ast.Program:
		b.declareChildren(node, scope)

	case *ast.FunctionObject:
		b.declareFunction(node, scope)

	case *ast.Block:
		if node.Scope == nil && needsBlockScope(node) {
			node.Scope = b.table.Scopes.New(symbols.ScopeBlock, scope, node)
		}
		if node.Scope != nil {
			scope = node.Scope
		}
		b.declareChildren(node, scope)

	case *ast.VariableDeclaration:
		b.declareVar(node, scope.VariableScope())
		b.declareChildren(node, scope)

	case *ast.TryNode:
		b.declareTry(node, scope)

	case *ast.WithNode:
		if obj := node.WithObject(); obj != nil {
			b.declare(obj, scope)
		}
		body := node.Body()
		if body == nil {
			body = ast.NewBlock(nil)
			node.SetBody(body)
		}
		body.Scope = b.table.Scopes.New(symbols.ScopeWith, scope, body)
		b.report(node.Context(), diag.WithNotRecommended, "")
		b.declareChildren(body, body.Scope)

	default:
		b.declareChildren(n, scope)
	}
}

func (b *binder) declareChildren(n ast.Node, scope *symbols.Scope) {
	for child := range n.Children() {
		b.declare(child, scope)
	}
}

// needsBlockScope reports whether a nested block directly declares a function.
func needsBlockScope(block *ast.Block) bool {
	switch block.Parent().(type) {
	case *ast.Program, *ast.FunctionObject, nil:
		return false
	}
	for _, stmt := range block.Statements() {
		if fn, ok := stmt.(*ast.FunctionObject); ok && fn.FunctionType == ast.FunctionDeclaration {
			return true
		}
	}
	return false
}

func (b *binder) rootFieldType(varScope *symbols.Scope) symbols.FieldType {
	if varScope.Kind == symbols.ScopeGlobal {
		return symbols.FieldGlobal
	}
	return symbols.FieldLocal
}

func nameContext(nameCtx, fallback *source.Context) *source.Context {
	if nameCtx != nil {
		return nameCtx
	}
	return fallback
}

func (b *binder) declareFunction(fn *ast.FunctionObject, scope *symbols.Scope) {
	if fn.FunctionType == ast.FunctionDeclaration && fn.Name() != "" {
		b.declareFunctionName(fn, scope)
	}

	fnScope := b.table.Scopes.New(symbols.ScopeFunction, scope, fn)
	fn.Scope = fnScope
	if body := fn.Body(); body != nil {
		fnScope.UseStrict = fnScope.UseStrict || hasUseStrict(body)
	}

	if params := fn.Parameters(); params != nil {
		for _, item := range params.Items() {
			param, ok := item.(*ast.ParameterDeclaration)
			if !ok {
				continue
			}
			b.checkNormalized(param.Name(), param.Context())
			f, fresh := b.resolver.Declare(fnScope, symbols.FieldArgument, param.Name(), param.Context())
			if !fresh {
				b.report(param.Context(), diag.DuplicateName,
					fmt.Sprintf("duplicate parameter name %q", param.Name()))
			}
			f.AddDeclaration(param)
			param.SetVariableField(f)
		}
	}

	if fn.FunctionType != ast.FunctionDeclaration && fn.Name() != "" {
		// named function expression: the name is visible only inside, and
		// a parameter with the same name wins
		if f, fresh := b.resolver.Declare(fnScope, symbols.FieldLocal, fn.Name(), nameContext(fn.NameContext, fn.Context())); fresh {
			f.Value = fn
			f.IsFunction = true
			f.SetIsDeclared(true)
			f.AddDeclaration(fn)
			fn.SetVariableField(f)
		}
	}

	if existing := fnScope.Lookup("arguments"); existing != nil {
		b.report(existing.OriginalContext, diag.ArgumentsShadowed, "")
	} else {
		b.resolver.Declare(fnScope, symbols.FieldArguments, "arguments", nil)
	}

	if body := fn.Body(); body != nil {
		b.declareChildren(body, fnScope)
	}
}

func hasUseStrict(body *ast.Block) bool {
	for _, stmt := range body.Statements() {
		cw, ok := stmt.(*ast.ConstantWrapper)
		if !ok || !cw.IsString() {
			return false
		}
		if cw.String() == "use strict" {
			return true
		}
	}
	return false
}

// declareFunctionName binds a function declaration's name. Declarations
// nested in blocks get a block-local field aliasing a ghost in the variable
// scope.
func (b *binder) declareFunctionName(fn *ast.FunctionObject, scope *symbols.Scope) {
	name := fn.Name()
	ctx := nameContext(fn.NameContext, fn.Context())
	b.checkNormalized(name, ctx)
	varScope := scope.VariableScope()

	var f *symbols.Field
	if scope == varScope {
		f = varScope.Lookup(name)
		if f == nil {
			f, _ = b.resolver.Declare(varScope, b.rootFieldType(varScope), name, ctx)
		} else {
			if prev, ok := f.Value.(*ast.FunctionObject); ok && prev != fn && prev.FunctionType == ast.FunctionDeclaration {
				b.report(ctx, diag.DuplicateName, fmt.Sprintf("function %q is declared more than once", name))
			}
			b.concretize(f, varScope)
		}
	} else {
		ghost := varScope.Lookup(name)
		if ghost == nil {
			ghost = b.table.NewField(symbols.FieldGhostFunction, name, 0, nil)
			ghost.OriginalContext = ctx
			if varScope.Kind == symbols.ScopeGlobal {
				ghost.SetCanCrunch(false)
			}
			varScope.Declare(ghost)
		}
		f = scope.Lookup(name)
		if f == nil {
			f = b.resolver.DeclareAlias(scope, symbols.FieldLocal, ghost, ctx)
		}
	}

	f.Value = fn
	f.IsFunction = true
	f.SetIsDeclared(true)
	f.AddDeclaration(fn)
	fn.SetVariableField(f)
}

func (b *binder) declareVar(decl *ast.VariableDeclaration, varScope *symbols.Scope) {
	name := decl.Name()
	ctx := nameContext(decl.NameContext, decl.Context())
	b.checkNormalized(name, ctx)

	f := varScope.Lookup(name)
	if f == nil {
		f, _ = b.resolver.Declare(varScope, b.rootFieldType(varScope), name, ctx)
	} else {
		b.concretize(f, varScope)
	}
	f.SetIsDeclared(true)
	f.AddDeclaration(decl)
	decl.SetVariableField(f)
}

// concretize turns a ghost placeholder into a real binding once a var or
// function declaration for the same name shows up in the variable scope.
func (b *binder) concretize(f *symbols.Field, varScope *symbols.Scope) {
	if !f.IsPlaceholder || f.OuterField() != nil {
		return
	}
	f.IsPlaceholder = false
	f.Type = b.rootFieldType(varScope)
	f.SetCanCrunch(f.Type == symbols.FieldLocal && varScope.IsKnownAtCompileTime())
}

func (b *binder) declareTry(node *ast.TryNode, scope *symbols.Scope) {
	if tb := node.TryBlock(); tb != nil {
		b.declare(tb, scope)
	}

	if param := node.CatchParameter(); param != nil {
		catchBlock := node.CatchBlock()
		if catchBlock == nil {
			catchBlock = ast.NewBlock(nil)
			node.SetCatchBlock(catchBlock)
		}
		catchScope := b.table.Scopes.New(symbols.ScopeCatch, scope, catchBlock)
		catchBlock.Scope = catchScope
		b.declareCatchParameter(param, catchScope)
		b.declareChildren(catchBlock, catchScope)
	} else if cb := node.CatchBlock(); cb != nil {
		b.declare(cb, scope)
	}

	if fb := node.FinallyBlock(); fb != nil {
		b.declare(fb, scope)
	}
}

// declareCatchParameter binds the catch identifier as an alias of the field
// with the same name in the variable scope, creating a ghost when none exists.
func (b *binder) declareCatchParameter(param *ast.ParameterDeclaration, catchScope *symbols.Scope) {
	name := param.Name()
	b.checkNormalized(name, param.Context())
	varScope := catchScope.VariableScope()

	target := varScope.Lookup(name)
	if target == nil {
		target = b.table.NewField(symbols.FieldGhostCatch, name, 0, nil)
		target.OriginalContext = param.Context()
		if varScope.Kind == symbols.ScopeGlobal {
			target.SetCanCrunch(false)
		}
		varScope.Declare(target)
	} else if !target.IsPlaceholder {
		target.IsAmbiguous = true
		b.report(param.Context(), diag.AmbiguousCatchVariable,
			fmt.Sprintf("catch variable %q also names a binding of the enclosing scope", name))
	}

	f := b.resolver.DeclareAlias(catchScope, symbols.FieldCatchError, target, param.Context())
	f.AddDeclaration(param)
	param.SetVariableField(f)
}
