package rewrite

import (
	"testing"

	"jsmin/internal/ast"
	"jsmin/internal/bind"
	"jsmin/internal/diag"
	"jsmin/internal/source"
	"jsmin/internal/token"
)

func call(ctx *source.Context, callee ast.Node) *ast.CallNode {
	return ast.NewCallNode(ctx, callee, ast.NewNodeList(nil))
}

func TestStripDebug(t *testing.T) {
	src := "var x; Debug.assert(x); debugger; Debugger.log(x); x;"
	doc := source.NewDocument("t.js", src)
	var codes []diag.Code
	doc.SetReporter(diag.ReporterFunc(func(d diag.Diagnostic) { codes = append(codes, d.Code) }))

	assertArg := ast.NewLookup(nil, "x")
	debugCall := call(doc.ContextAt(7, 23, token.Identifier),
		ast.NewMember(nil, ast.NewLookup(nil, "Debug"), "assert", nil))
	debugCall.Arguments().Append(assertArg)
	debuggerStmt := ast.NewDebuggerNode(doc.ContextAt(24, 33, token.Debugger))
	// prefix only, must stay
	lookalike := call(nil, ast.NewMember(nil, ast.NewLookup(nil, "Debugger"), "log", nil))
	kept := ast.NewLookup(nil, "x")

	v := ast.NewVar(nil)
	v.Append(ast.NewVariableDeclaration(nil, "x", nil, nil))
	inner := ast.NewBlock(nil)
	inner.Append(v)
	inner.Append(debugCall)
	inner.Append(debuggerStmt)
	inner.Append(lookalike)
	inner.Append(kept)
	fn := ast.NewFunctionObject(nil, ast.FunctionExpression, "", nil, inner)
	body := ast.NewBlock(nil)
	body.Append(fn)
	prog := ast.NewProgram(doc, body)
	bind.Bind(prog, bind.Options{KnownGlobals: []string{"Debug", "Debugger"}})
	codes = nil

	x := fn.Scope.Lookup("x")
	if x == nil || x.RefCount() != 2 {
		t.Fatalf("before strip: want 2 references to x, got %v", x)
	}

	removed := StripDebug(prog, DefaultDebugLookups)

	if removed != 2 {
		t.Fatalf("removed %d statements, want 2", removed)
	}
	if inner.Count() != 3 || inner.At(1) != lookalike || inner.At(2) != kept {
		t.Fatalf("unexpected remaining statements: %d", inner.Count())
	}
	if debugCall.Parent() != nil || debuggerStmt.Parent() != nil {
		t.Fatalf("removed statements must be detached")
	}
	if x.RefCount() != 1 {
		t.Fatalf("after strip: want 1 reference to x, got %d", x.RefCount())
	}
	if len(codes) != 2 || codes[0] != diag.DebugStatementRemoved {
		t.Fatalf("diagnostics: %v", codes)
	}
}

func TestStripDebugWithoutLookupsOnlyRemovesDebugger(t *testing.T) {
	block := ast.NewBlock(nil)
	block.Append(call(nil, ast.NewLookup(nil, "Debug")))
	block.Append(ast.NewDebuggerNode(nil))
	prog := ast.NewProgram(nil, block)

	if n := StripDebug(prog, nil); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if block.Count() != 1 {
		t.Fatalf("call should remain")
	}
}
