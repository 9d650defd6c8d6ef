package jsparse

import (
	"context"
	"strings"
	"testing"

	"jsmin/internal/ast"
	"jsmin/internal/bind"
	"jsmin/internal/diag"
	"jsmin/internal/jsonout"
	"jsmin/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()
	doc := source.NewDocument("t.js", src)
	var got []diag.Diagnostic
	doc.SetReporter(diag.ReporterFunc(func(d diag.Diagnostic) { got = append(got, d) }))
	prog, err := Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog, got
}

func TestParseStatements(t *testing.T) {
	prog, diags := parseSource(t, `var a = 1, b;
function f(x, y) { return x + y; }
if (a) { b = f(a, 2); } else b = 0;
for (var k in o) { delete o[k]; }
try { g(); } catch (e) { } finally { }
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	stmts := prog.Body().Statements()
	if len(stmts) != 5 {
		t.Fatalf("got %d statements, want 5", len(stmts))
	}

	v, ok := stmts[0].(*ast.Var)
	if !ok || v.Count() != 2 {
		t.Fatalf("statement 0: %T", stmts[0])
	}
	fn, ok := stmts[1].(*ast.FunctionObject)
	if !ok || fn.Name() != "f" || fn.Parameters().Count() != 2 || fn.FunctionType != ast.FunctionDeclaration {
		t.Fatalf("statement 1: %T", stmts[1])
	}
	ifNode, ok := stmts[2].(*ast.IfNode)
	if !ok || ifNode.FalseBlock() == nil || ifNode.ElseContext == nil {
		t.Fatalf("statement 2: %T", stmts[2])
	}
	forIn, ok := stmts[3].(*ast.ForIn)
	if !ok {
		t.Fatalf("statement 3: %T", stmts[3])
	}
	if _, ok := forIn.Variable().(*ast.Var); !ok {
		t.Fatalf("for-in target should be a var declaration, got %T", forIn.Variable())
	}
	try, ok := stmts[4].(*ast.TryNode)
	if !ok || try.CatchParameter() == nil || try.CatchParameter().Name() != "e" || try.FinallyBlock() == nil {
		t.Fatalf("statement 4: %T", stmts[4])
	}
}

func TestParseContextsPointAtSource(t *testing.T) {
	src := "foo.bar(baz);"
	prog, _ := parseSource(t, src)

	call, ok := prog.Body().Statements()[0].(*ast.CallNode)
	if !ok {
		t.Fatalf("want call, got %T", prog.Body().Statements()[0])
	}
	if got := call.Context().Code(); got != "foo.bar(baz)" {
		t.Fatalf("call context %q", got)
	}
	member := call.Function().(*ast.Member)
	if member.Name != "bar" || member.NameContext.Code() != "bar" {
		t.Fatalf("member name %q at %q", member.Name, member.NameContext.Code())
	}
	arg := call.Arguments().At(0).(*ast.Lookup)
	if arg.Name() != "baz" || arg.Context().StartColumn() != 8 {
		t.Fatalf("argument %q at column %d", arg.Name(), arg.Context().StartColumn())
	}
}

func TestParseThenBind(t *testing.T) {
	prog, _ := parseSource(t, "var n = 0; function inc() { n++; return n; }")
	res := bind.Bind(prog, bind.Options{})

	n := res.Global.Lookup("n")
	if n == nil || n.RefCount() != 2 {
		t.Fatalf("global n: %v", n)
	}
	fn := prog.Body().Statements()[1].(*ast.FunctionObject)
	if alias := fn.Scope.Lookup("n"); alias == nil || alias.OuterField() != n {
		t.Fatalf("inc should capture n through an alias")
	}
}

func TestParseJSONValue(t *testing.T) {
	prog, diags := parseSource(t, `({"a": [1, -2.50, true, null], 'b': "x\ty"})`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	grouping := prog.Body().Statements()[0].(*ast.GroupingOperator)

	var b strings.Builder
	ok, err := jsonout.Apply(&b, grouping.Operand())
	if err != nil || !ok {
		t.Fatalf("Apply: ok=%v err=%v", ok, err)
	}
	if want := `{"a":[1,-2.5,true,null],"b":"x\ty"}`; b.String() != want {
		t.Fatalf("got %s, want %s", b.String(), want)
	}
}

func TestParseUnsupportedAndErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"arrow function", "var f = (a) => a;", diag.UnsupportedSyntax},
		{"class", "class A {}", diag.UnsupportedSyntax},
		{"let", "let x = 1;", diag.UnsupportedSyntax},
		{"syntax error", "var = ;", diag.SyntaxError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseSource(t, tt.src)
			for _, d := range diags {
				if d.Code == tt.code {
					return
				}
			}
			t.Fatalf("want %v among %v", tt.code, diags)
		})
	}
}

func TestParseConditionalCompilationComment(t *testing.T) {
	prog, _ := parseSource(t, "/*@cc_on @if (@_win32) x(); @end @*/ y();")
	stmts := prog.Body().Statements()
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	cc, ok := stmts[0].(*ast.ConditionalCompilationComment)
	if !ok {
		t.Fatalf("want conditional comment, got %T", stmts[0])
	}
	if cc.Statements().Count() != 1 {
		t.Fatalf("conditional comment should hold its body")
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := source.NewDocument("t.js", "var a;")
	if _, err := Parse(ctx, doc); err == nil {
		t.Fatalf("want error for canceled context")
	}
}

func TestParseValue(t *testing.T) {
	src := `{"items": [1e3, 0.5, "é"], "ok": false}`
	doc := source.NewDocument("v.json", src)
	var got []diag.Diagnostic
	doc.SetReporter(diag.ReporterFunc(func(d diag.Diagnostic) { got = append(got, d) }))

	prog, err := ParseValue(context.Background(), doc)
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unexpected diagnostics: %v", got)
	}
	obj, ok := prog.Body().At(0).(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ObjectLiteral", prog.Body().At(0))
	}
	if ctx := obj.Context(); ctx.StartPosition != 0 || ctx.EndPosition != len(src) {
		t.Errorf("object context [%d,%d), want [0,%d)", ctx.StartPosition, ctx.EndPosition, len(src))
	}

	var b strings.Builder
	valid, err := jsonout.Apply(&b, prog)
	if err != nil || !valid {
		t.Fatalf("Apply: valid=%v err=%v", valid, err)
	}
	if want := `{"items":[1e3,.5,"é"],"ok":false}`; b.String() != want {
		t.Errorf("got %s, want %s", b.String(), want)
	}
}

func TestParseValueReportsInDocumentCoordinates(t *testing.T) {
	doc := source.NewDocument("bad.json", `{"a": }`)
	var got []diag.Diagnostic
	doc.SetReporter(diag.ReporterFunc(func(d diag.Diagnostic) { got = append(got, d) }))
	if _, err := ParseValue(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("expected a syntax error")
	}
	for _, d := range got {
		if d.Primary.End > doc.Len() {
			t.Errorf("diagnostic %v points past the document", d)
		}
	}
}

func TestParseValueNegation(t *testing.T) {
	tests := []struct {
		src   string
		want  string
		valid bool
	}{
		{"[-1, -0.5]", "[-1,-.5]", true},
		{"[- -1]", "[--1]", false},
		{"-true", "-true", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := ParseValue(context.Background(), source.NewDocument("v.json", tt.src))
			if err != nil {
				t.Fatalf("ParseValue: %v", err)
			}
			var b strings.Builder
			valid, err := jsonout.Apply(&b, prog)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if b.String() != tt.want || valid != tt.valid {
				t.Fatalf("got %s valid=%v, want %s valid=%v", b.String(), valid, tt.want, tt.valid)
			}
		})
	}
}
