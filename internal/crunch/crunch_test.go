package crunch

import (
	"regexp"
	"strings"
	"testing"

	"jsmin/internal/ast"
	"jsmin/internal/bind"
	"jsmin/internal/symbols"
)

func block(stmts ...ast.Node) *ast.Block {
	b := ast.NewBlock(nil)
	for _, s := range stmts {
		b.Append(s)
	}
	return b
}

func vars(names ...string) *ast.Var {
	v := ast.NewVar(nil)
	for _, name := range names {
		v.Append(ast.NewVariableDeclaration(nil, name, nil, nil))
	}
	return v
}

func ref(name string) *ast.Lookup { return ast.NewLookup(nil, name) }

func fn(stmts ...ast.Node) *ast.FunctionObject {
	return ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, block(stmts...))
}

func bindProgram(t *testing.T, stmts ...ast.Node) *bind.Result {
	t.Helper()
	prog := ast.NewProgram(nil, block(stmts...))
	return bind.Bind(prog, bind.Options{})
}

func crunched(t *testing.T, scope *symbols.Scope, name string) string {
	t.Helper()
	f := scope.Lookup(name)
	if f == nil {
		t.Fatalf("no field %q in %s scope", name, scope.Kind)
	}
	return f.CrunchedName()
}

func TestMostReferencedGetsShortestName(t *testing.T) {
	f := fn(vars("rare", "hot"), ref("hot"), ref("hot"), ref("rare"))
	res := bindProgram(t, f)

	rep := Run(res.Table, Options{})

	if got := crunched(t, f.Scope, "hot"); got != "a" {
		t.Fatalf("hot: got %q, want a", got)
	}
	if got := crunched(t, f.Scope, "rare"); got != "b" {
		t.Fatalf("rare: got %q, want b", got)
	}
	if rep.Renamed != 2 {
		t.Fatalf("renamed %d, want 2", rep.Renamed)
	}
	if f.Scope.Lookup("arguments").CrunchedName() != "" {
		t.Fatalf("arguments must keep its name")
	}
}

func TestCapturedOuterNameIsAvoided(t *testing.T) {
	inner := fn(vars("y"), ref("x"), ref("y"))
	outer := fn(vars("x"), inner)
	res := bindProgram(t, outer)

	Run(res.Table, Options{})

	x := crunched(t, outer.Scope, "x")
	y := crunched(t, inner.Scope, "y")
	if x == "" || y == "" || x == y {
		t.Fatalf("captured x=%q and inner y=%q must differ", x, y)
	}
	if alias := inner.Scope.Lookup("x"); alias.CrunchedName() != x {
		t.Fatalf("alias should read the outer crunched name")
	}
}

func TestUncapturedOuterNameIsReused(t *testing.T) {
	inner := fn(vars("y"), ref("y"))
	outer := fn(vars("x"), ref("x"), inner)
	res := bindProgram(t, outer)

	Run(res.Table, Options{})

	if x, y := crunched(t, outer.Scope, "x"), crunched(t, inner.Scope, "y"); x != "a" || y != "a" {
		t.Fatalf("independent scopes should both start at a, got x=%q y=%q", x, y)
	}
}

func TestGlobalsKeepNamesAndBlockShortNames(t *testing.T) {
	// the undeclared global "a" is referenced inside, so the local cannot be a
	f := fn(vars("loc"), ref("a"), ref("loc"))
	res := bindProgram(t, vars("g"), f)

	Run(res.Table, Options{})

	if got := res.Global.Lookup("g").CrunchedName(); got != "" {
		t.Fatalf("global renamed to %q", got)
	}
	if got := crunched(t, f.Scope, "loc"); got != "b" {
		t.Fatalf("loc: got %q, want b", got)
	}
}

func TestEvalScopeIsLeftAlone(t *testing.T) {
	call := ast.NewCallNode(nil, ref("eval"), nil)
	f := fn(vars("keep"), ref("keep"), call)
	res := bindProgram(t, f)

	rep := Run(res.Table, Options{})

	if got := crunched(t, f.Scope, "keep"); got != "" {
		t.Fatalf("keep renamed to %q despite eval", got)
	}
	if rep.Renamed != 0 {
		t.Fatalf("renamed %d, want 0", rep.Renamed)
	}
	if e, ok := rep.Lookup(uint32(f.Scope.ID), "keep"); !ok || e.Crunched != "" {
		t.Fatalf("report entry: %+v ok=%v", e, ok)
	}
}

func TestReservedOption(t *testing.T) {
	f := fn(vars("v"), ref("v"))
	res := bindProgram(t, f)

	Run(res.Table, Options{Reserved: []string{"a", "b"}})

	if got := crunched(t, f.Scope, "v"); got != "c" {
		t.Fatalf("v: got %q, want c", got)
	}
}

func TestNameAtIsUniqueAndValid(t *testing.T) {
	ident := regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	seen := make(map[string]int)
	for i := range 10000 {
		name := nameAt(i)
		if !ident.MatchString(name) {
			t.Fatalf("nameAt(%d) = %q is not an identifier", i, name)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("nameAt(%d) = %q repeats nameAt(%d)", i, name, prev)
		}
		seen[name] = i
	}
	if nameAt(0) != "a" || nameAt(54) != "aa" {
		t.Fatalf("unexpected start of sequence: %q %q", nameAt(0), nameAt(54))
	}
}

func TestGeneratorSkipsKeywords(t *testing.T) {
	g := generator{}
	avoid := map[string]struct{}{}
	for range 3000 {
		name := g.take(avoid)
		if IsReserved(name) {
			t.Fatalf("generator produced keyword %q", name)
		}
		avoid[name] = struct{}{}
	}
}

func TestWriteTable(t *testing.T) {
	f := fn(vars("counter"), ref("counter"))
	res := bindProgram(t, f)
	rep := Run(res.Table, Options{})

	var b strings.Builder
	if err := rep.WriteTable(&b); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := b.String()
	for _, want := range []string{"SCOPE", "counter", "renamed 1 of 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
