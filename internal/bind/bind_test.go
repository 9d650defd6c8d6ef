package bind

import (
	"strings"
	"testing"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/source"
	"jsmin/internal/symbols"
	"jsmin/internal/token"
)

type fixture struct {
	doc   *source.Document
	codes []diag.Code
	msgs  []string
}

func newFixture(src string) *fixture {
	f := &fixture{doc: source.NewDocument("t.js", src)}
	f.doc.SetReporter(diag.ReporterFunc(func(d diag.Diagnostic) {
		f.codes = append(f.codes, d.Code)
		f.msgs = append(f.msgs, d.Message)
	}))
	return f
}

// at returns the context of the n-th (0-based) occurrence of text.
func (f *fixture) at(text string, n int) *source.Context {
	off := 0
	for i := 0; ; i++ {
		idx := strings.Index(f.doc.Source[off:], text)
		if idx < 0 {
			panic("fixture: text not found: " + text)
		}
		if i == n {
			start := off + idx
			return f.doc.ContextAt(start, start+len(text), token.Identifier)
		}
		off += idx + len(text)
	}
}

func (f *fixture) lookup(name string, n int) *ast.Lookup {
	return ast.NewLookup(f.at(name, n), name)
}

func (f *fixture) count(code diag.Code) int {
	c := 0
	for _, got := range f.codes {
		if got == code {
			c++
		}
	}
	return c
}

func program(doc *source.Document, stmts ...ast.Node) *ast.Program {
	body := ast.NewBlock(nil)
	for _, s := range stmts {
		body.Append(s)
	}
	return ast.NewProgram(doc, body)
}

func varStmt(f *fixture, name string, n int, init ast.Node) *ast.Var {
	v := ast.NewVar(nil)
	v.Append(ast.NewVariableDeclaration(f.at(name, n), name, f.at(name, n), init))
	return v
}

func block(stmts ...ast.Node) *ast.Block {
	b := ast.NewBlock(nil)
	for _, s := range stmts {
		b.Append(s)
	}
	return b
}

func TestClosureReferencesGetAliases(t *testing.T) {
	fx := newFixture("var x; function f(){ return x; }")
	inner := fx.lookup("x", 1)
	fn := ast.NewFunctionObject(fx.at("function", 0), ast.FunctionDeclaration, "f", nil,
		block(ast.NewReturnNode(nil, inner)))
	prog := program(fx.doc, varStmt(fx, "x", 0, nil), fn)

	res := Bind(prog, Options{})

	global := res.Global.Lookup("x")
	if global == nil || global.Type != symbols.FieldGlobal {
		t.Fatalf("global x: got %v", global)
	}
	alias := inner.VariableField()
	if alias == nil || alias.OuterField() != global {
		t.Fatalf("inner reference should bind to an alias of the global field, got %v", alias)
	}
	if fn.Scope.Lookup("x") != alias {
		t.Fatalf("alias should be declared in the function scope")
	}
	if alias.RefCount() != 1 || global.RefCount() != 1 {
		t.Fatalf("refcounts: alias=%d global=%d, want 1 and 1", alias.RefCount(), global.RefCount())
	}
	if !alias.IsOuterReference() {
		t.Fatalf("alias should be an outer reference")
	}
	if len(fx.codes) != 0 {
		t.Fatalf("unexpected diagnostics %v", fx.msgs)
	}
}

func TestNestedFunctionsAliasChain(t *testing.T) {
	fx := newFixture("function a(){ var val; function b(){ function c(){ val; } } }")
	ref := fx.lookup("val", 1)
	c := ast.NewFunctionObject(fx.at("function c", 0), ast.FunctionDeclaration, "c", nil, block(ref))
	bFn := ast.NewFunctionObject(fx.at("function b", 0), ast.FunctionDeclaration, "b", nil, block(c))
	a := ast.NewFunctionObject(fx.at("function a", 0), ast.FunctionDeclaration, "a", nil,
		block(varStmt(fx, "val", 0, nil), bFn))
	prog := program(fx.doc, a)

	Bind(prog, Options{})

	local := a.Scope.Lookup("val")
	if local == nil || local.Type != symbols.FieldLocal {
		t.Fatalf("local val: got %v", local)
	}
	inB := bFn.Scope.Lookup("val")
	inC := c.Scope.Lookup("val")
	if inB == nil || inC == nil {
		t.Fatalf("every crossed function scope needs an alias (b=%v c=%v)", inB, inC)
	}
	if inC.OuterField() != inB || inB.OuterField() != local {
		t.Fatalf("alias chain should run c -> b -> a")
	}
	if ref.VariableField() != inC {
		t.Fatalf("reference should bind to the innermost alias")
	}
	if local.RefCount() != 1 || inB.RefCount() != 1 || inC.RefCount() != 1 {
		t.Fatalf("each link should count the reference once")
	}
}

func TestUndeclaredNamesReportedOnce(t *testing.T) {
	fx := newFixture("foo; foo; bar();")
	first := fx.lookup("foo", 0)
	second := fx.lookup("foo", 1)
	callee := fx.lookup("bar", 0)
	prog := program(fx.doc, first, second, ast.NewCallNode(fx.at("bar()", 0), callee, nil))

	res := Bind(prog, Options{})

	if got := fx.count(diag.UndeclaredVariable); got != 1 {
		t.Fatalf("UndeclaredVariable reported %d times, want 1", got)
	}
	if got := fx.count(diag.UndeclaredFunction); got != 1 {
		t.Fatalf("UndeclaredFunction reported %d times, want 1", got)
	}
	if len(res.Undefined) != 2 {
		t.Fatalf("undefined fields: got %d, want 2", len(res.Undefined))
	}
	if first.VariableField() != second.VariableField() {
		t.Fatalf("both references should share the undefined global")
	}
	if f := first.VariableField(); f.Type != symbols.FieldUndefinedGlobal || f.CanCrunch() {
		t.Fatalf("undefined global should not be crunchable: %v", f)
	}
}

func TestKnownGlobalsSuppressUndeclared(t *testing.T) {
	fx := newFixture("jQuery; window;")
	prog := program(fx.doc, fx.lookup("jQuery", 0), fx.lookup("window", 0))

	Bind(prog, Options{KnownGlobals: []string{"jQuery"}})

	if len(fx.codes) != 0 {
		t.Fatalf("unexpected diagnostics %v", fx.msgs)
	}
}

func TestCatchParameterGhost(t *testing.T) {
	tests := []struct {
		name          string
		inFunction    bool
		wantCrunch    bool
		wantGhostType symbols.FieldType
	}{
		{"global", false, false, symbols.FieldGhostCatch},
		{"function", true, true, symbols.FieldGhostCatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture("try { } catch (e) { e; }")
			param := ast.NewParameterDeclaration(fx.at("e", 0), "e", 0)
			ref := fx.lookup("e", 1)
			try := ast.NewTryNode(fx.at("try", 0), block(), param, block(ref), nil)

			var prog *ast.Program
			var fn *ast.FunctionObject
			if tt.inFunction {
				fn = ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(try))
				prog = program(fx.doc, fn)
			} else {
				prog = program(fx.doc, try)
			}
			res := Bind(prog, Options{})

			varScope := res.Global
			if fn != nil {
				varScope = fn.Scope
			}
			ghost := varScope.Lookup("e")
			if ghost == nil || ghost.Type != tt.wantGhostType {
				t.Fatalf("ghost: got %v", ghost)
			}
			if ghost.CanCrunch() != tt.wantCrunch {
				t.Fatalf("ghost CanCrunch = %v, want %v", ghost.CanCrunch(), tt.wantCrunch)
			}
			f := param.VariableField()
			if f == nil || f.Type != symbols.FieldCatchError || f.OuterField() != ghost {
				t.Fatalf("catch parameter should alias the ghost, got %v", f)
			}
			if ref.VariableField() != f {
				t.Fatalf("reference inside catch should bind to the catch field")
			}
		})
	}
}

func TestCatchParameterShadowingLocalIsAmbiguous(t *testing.T) {
	fx := newFixture("var e; try { } catch (e) { }")
	param := ast.NewParameterDeclaration(fx.at("e", 1), "e", 0)
	try := ast.NewTryNode(fx.at("try", 0), block(), param, block(), nil)
	fn := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(varStmt(fx, "e", 0, nil), try))
	prog := program(fx.doc, fn)

	Bind(prog, Options{})

	local := fn.Scope.Lookup("e")
	if !local.IsAmbiguous {
		t.Fatalf("local e should be flagged ambiguous")
	}
	if fx.count(diag.AmbiguousCatchVariable) != 1 {
		t.Fatalf("expected one AmbiguousCatchVariable, got %v", fx.codes)
	}
	if param.VariableField().OuterField() != local {
		t.Fatalf("catch field should alias the existing local")
	}
}

func TestBlockNestedFunctionDeclaration(t *testing.T) {
	fx := newFixture("if (c) { function g(){} } g();")
	g := ast.NewFunctionObject(fx.at("function g", 0), ast.FunctionDeclaration, "g", nil, block())
	inner := block(g)
	ifNode := ast.NewIfNode(nil, ast.NewBoolean(nil, true), inner, nil)
	call := fx.lookup("g", 1)
	outer := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil,
		block(ifNode, ast.NewCallNode(nil, call, nil)))
	prog := program(fx.doc, outer)

	Bind(prog, Options{})

	if inner.Scope == nil || inner.Scope.Kind != symbols.ScopeBlock {
		t.Fatalf("block declaring a function should get a block scope")
	}
	local := inner.Scope.Lookup("g")
	ghost := outer.Scope.Lookup("g")
	if local == nil || ghost == nil {
		t.Fatalf("want block field and ghost (local=%v ghost=%v)", local, ghost)
	}
	if ghost.Type != symbols.FieldGhostFunction || local.OuterField() != ghost {
		t.Fatalf("block field should alias a ghost function: %v -> %v", local, ghost)
	}
	if call.VariableField() != ghost {
		t.Fatalf("call outside the block should bind to the ghost")
	}
	if g.VariableField() != local {
		t.Fatalf("function should own the block field")
	}
}

func TestVarAfterGhostConcretizes(t *testing.T) {
	fx := newFixture("try { } catch (e) { } var e;")
	param := ast.NewParameterDeclaration(fx.at("e", 0), "e", 0)
	try := ast.NewTryNode(nil, block(), param, block(), nil)
	fn := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(try, varStmt(fx, "e", 1, nil)))
	prog := program(fx.doc, fn)

	Bind(prog, Options{})

	f := fn.Scope.Lookup("e")
	if f.IsPlaceholder || f.Type != symbols.FieldLocal || !f.CanCrunch() {
		t.Fatalf("ghost should become a crunchable local: %v", f)
	}
}

func TestEvalMarksScopesUnknown(t *testing.T) {
	fx := newFixture("function f(){ eval(s); }")
	evalRef := fx.lookup("eval", 0)
	call := ast.NewCallNode(fx.at("eval(s)", 0), evalRef, ast.NewNodeList(nil))
	call.Arguments().Append(ast.NewString(nil, "s"))
	fn := ast.NewFunctionObject(fx.at("function", 0), ast.FunctionDeclaration, "f", nil, block(call))
	prog := program(fx.doc, fn)

	res := Bind(prog, Options{})

	if fn.Scope.IsKnownAtCompileTime() {
		t.Fatalf("function scope should be unknown after eval")
	}
	if res.Global.IsKnownAtCompileTime() {
		t.Fatalf("unknown should propagate to the global scope")
	}
	if fx.count(diag.EvalPreventsCrunch) != 1 {
		t.Fatalf("expected EvalPreventsCrunch, got %v", fx.codes)
	}
	if evalRef.RefType != ast.RefFunction {
		t.Fatalf("callee should be marked as a function reference")
	}
}

func TestShadowedEvalIsOrdinaryCall(t *testing.T) {
	fx := newFixture("var eval; eval();")
	callee := fx.lookup("eval", 1)
	fn := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil,
		block(varStmt(fx, "eval", 0, nil), ast.NewCallNode(nil, callee, nil)))
	prog := program(fx.doc, fn)

	Bind(prog, Options{})

	if !fn.Scope.IsKnownAtCompileTime() {
		t.Fatalf("a local named eval must not poison the scope")
	}
}

func TestWithScopeAliases(t *testing.T) {
	fx := newFixture("var aa; with (o) { aa; }")
	ref := fx.lookup("aa", 1)
	body := block(ref)
	with := ast.NewWithNode(fx.at("with", 0), fx.lookup("o", 0), body)
	fn := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(varStmt(fx, "aa", 0, nil), with))
	prog := program(fx.doc, fn)

	Bind(prog, Options{KnownGlobals: []string{"o"}})

	if body.Scope == nil || body.Scope.Kind != symbols.ScopeWith {
		t.Fatalf("with body should own a with scope")
	}
	f := ref.VariableField()
	if f == nil || f.Type != symbols.FieldWithField || f.OuterField() != fn.Scope.Lookup("aa") {
		t.Fatalf("reference in with should bind to a with-field alias, got %v", f)
	}
	if fx.count(diag.WithNotRecommended) != 1 {
		t.Fatalf("expected WithNotRecommended, got %v", fx.codes)
	}
}

func TestDuplicateParameterAndArguments(t *testing.T) {
	fx := newFixture("function f(a, a, arguments){}")
	params := ast.NewNodeList(nil)
	params.Append(ast.NewParameterDeclaration(fx.at("a", 0), "a", 0))
	params.Append(ast.NewParameterDeclaration(fx.at("a", 1), "a", 1))
	params.Append(ast.NewParameterDeclaration(fx.at("arguments", 0), "arguments", 2))
	fn := ast.NewFunctionObject(fx.at("function", 0), ast.FunctionDeclaration, "f", params, block())
	prog := program(fx.doc, fn)

	Bind(prog, Options{})

	if fx.count(diag.DuplicateName) != 1 {
		t.Fatalf("expected one DuplicateName, got %v", fx.codes)
	}
	if fx.count(diag.ArgumentsShadowed) != 1 {
		t.Fatalf("expected ArgumentsShadowed, got %v", fx.codes)
	}
	if f := fn.Scope.Lookup("arguments"); f.Type != symbols.FieldArgument {
		t.Fatalf("the parameter should own the arguments name, got %v", f)
	}
}

func TestNamedFunctionExpressionScope(t *testing.T) {
	fx := newFixture("var h = function fact(n){ fact; };")
	ref := fx.lookup("fact", 1)
	expr := ast.NewFunctionObject(fx.at("function", 0), ast.FunctionExpression, "fact", nil, block(ref))
	prog := program(fx.doc, varStmt(fx, "h", 0, expr))

	res := Bind(prog, Options{})

	if res.Global.Lookup("fact") != nil {
		t.Fatalf("expression name must not leak into the enclosing scope")
	}
	if ref.VariableField() == nil || ref.VariableField() != expr.VariableField() {
		t.Fatalf("self reference should bind to the expression's own field")
	}
}

func TestReportUnreferenced(t *testing.T) {
	fx := newFixture("function o(){ var used, unused; function helper(){} used; }")
	v := ast.NewVar(nil)
	v.Append(ast.NewVariableDeclaration(nil, "used", fx.at("used", 0), nil))
	v.Append(ast.NewVariableDeclaration(nil, "unused", fx.at("unused", 0), nil))
	helper := ast.NewFunctionObject(fx.at("function helper", 0), ast.FunctionDeclaration, "helper", nil, block())
	helper.NameContext = fx.at("helper", 0)
	o := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(v, helper, fx.lookup("used", 2)))
	prog := program(fx.doc, o)

	Bind(prog, Options{ReportUnreferenced: true})

	if got := fx.count(diag.VariableNotReferenced); got != 1 {
		t.Fatalf("VariableNotReferenced = %d, want 1 (%v)", got, fx.msgs)
	}
	if got := fx.count(diag.FunctionNotReferenced); got != 1 {
		t.Fatalf("FunctionNotReferenced = %d, want 1 (%v)", got, fx.msgs)
	}
}

func TestDepthLimit(t *testing.T) {
	fx := newFixture("x")
	var node ast.Node = fx.lookup("x", 0)
	for range 20 {
		node = ast.NewGroupingOperator(nil, node)
	}
	prog := program(fx.doc, node)

	res := Bind(prog, Options{MaxDepth: 8})

	if !res.TooDeep {
		t.Fatalf("expected TooDeep")
	}
	if fx.count(diag.NestingTooDeep) != 1 {
		t.Fatalf("NestingTooDeep should be reported once, got %v", fx.codes)
	}
}

func TestIdentifierNormalization(t *testing.T) {
	decomposed := "e\u0301"
	fx := newFixture("var " + decomposed + ";")
	prog := program(fx.doc, varStmt(fx, decomposed, 0, nil))

	Bind(prog, Options{})

	if fx.count(diag.IdentifierNotNormalized) != 1 {
		t.Fatalf("expected IdentifierNotNormalized, got %v", fx.codes)
	}
}

func TestTableValidatesAfterBind(t *testing.T) {
	fx := newFixture("var x; function f(){ x; }")
	fn := ast.NewFunctionObject(fx.at("function", 0), ast.FunctionDeclaration, "f", nil, block(fx.lookup("x", 1)))
	prog := program(fx.doc, varStmt(fx, "x", 0, nil), fn)

	res := Bind(prog, Options{})

	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
