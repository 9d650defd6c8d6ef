package symbols

import "testing"

func TestScopeDeclareAndResolve(t *testing.T) {
	table := NewTable(Hints{})
	global := table.Global(nil)
	fn := table.Scopes.New(ScopeFunction, global, nil)
	block := table.Scopes.New(ScopeBlock, fn, nil)

	g := table.NewField(FieldGlobal, "g", 0, nil)
	if _, ok := global.Declare(g); !ok {
		t.Fatalf("declare g")
	}
	dup := table.NewField(FieldGlobal, "g", 0, nil)
	if existing, ok := global.Declare(dup); ok || existing != g {
		t.Fatalf("duplicate must return the existing field")
	}

	found, where := block.Resolve("g")
	if found != g || where != global {
		t.Fatalf("Resolve walked to %v in %v", found, where)
	}
	if block.Lookup("g") != nil {
		t.Fatalf("Lookup is local only")
	}
	if block.VariableScope() != fn {
		t.Fatalf("VariableScope must skip block scopes")
	}
	if fn.VariableScope() != fn {
		t.Fatalf("function scope is its own variable scope")
	}
	if block.Global() != global {
		t.Fatalf("Global must return the root")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestMarkUnknownPropagates(t *testing.T) {
	table := NewTable(Hints{})
	global := table.Global(nil)
	outer := table.Scopes.New(ScopeFunction, global, nil)
	inner := table.Scopes.New(ScopeFunction, outer, nil)
	sibling := table.Scopes.New(ScopeFunction, global, nil)

	local := table.NewField(FieldLocal, "a", 0, nil)
	outer.Declare(local)

	inner.MarkUnknown()

	if inner.IsKnownAtCompileTime() || outer.IsKnownAtCompileTime() || global.IsKnownAtCompileTime() {
		t.Fatalf("eval must make the chain unknown")
	}
	if !sibling.IsKnownAtCompileTime() {
		t.Fatalf("sibling scope is unaffected")
	}
	if local.CanCrunch() {
		t.Fatalf("fields of unknown scopes must not be crunched")
	}
}

func TestResolverEnterLeave(t *testing.T) {
	table := NewTable(Hints{})
	res := NewResolver(table, nil, ResolverOptions{Prelude: []string{"window"}})

	if f, _ := res.Lookup("window"); f == nil || f.Type != FieldPredefined {
		t.Fatalf("prelude not installed")
	}

	scope := res.Enter(ScopeFunction, nil)
	if _, ok := res.Declare(scope, FieldArgument, "p", nil); !ok {
		t.Fatalf("declare returned false")
	}
	if _, ok := res.Declare(scope, FieldLocal, "p", nil); ok {
		t.Fatalf("redeclare must report existing")
	}
	if f, where := res.Lookup("p"); f == nil || where != scope {
		t.Fatalf("lookup p failed")
	}
	res.Leave(scope)

	if f, _ := res.Lookup("p"); f != nil {
		t.Fatalf("p must not be visible after leave")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDefaultPreludeUsedWhenNil(t *testing.T) {
	table := NewTable(Hints{})
	res := NewResolver(table, nil, ResolverOptions{})
	if f, _ := res.Lookup("Math"); f == nil {
		t.Fatalf("default prelude missing Math")
	}
}
