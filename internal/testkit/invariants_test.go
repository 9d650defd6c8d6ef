package testkit

import (
	"context"
	"strings"
	"testing"

	"jsmin/internal/ast"
	"jsmin/internal/jsparse"
	"jsmin/internal/source"
)

func TestParsedTreesHoldInvariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"statements", "var a = 1;\nfunction f(x) {\n  return x + a;\n}\nf(2);\n"},
		{"control flow", "for (var i in o) { if (i) { continue; } else break; }\nwhile (false) {}\n"},
		{"try", "try { throw 1; } catch (e) { log(e); } finally { done(); }\n"},
		{"conditional comment", "/*@cc_on @if (@_win32) x(); @end @*/ y();"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := source.NewVirtualDocument("t.js", tc.src)
			prog, err := jsparse.Parse(context.Background(), doc)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := CheckTreeInvariants(prog, doc); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCheckTreeInvariantsDetectsForeignContext(t *testing.T) {
	doc := source.NewVirtualDocument("a.js", "x;")
	other := source.NewVirtualDocument("b.js", "y;")
	prog := ast.NewProgram(doc, ast.NewBlock(source.NewContext(doc)))
	prog.Body().Append(ast.NewLookup(source.NewContext(other), "y"))

	err := CheckTreeInvariants(prog, doc)
	if err == nil || !strings.Contains(err.Error(), "another document") {
		t.Fatalf("err = %v", err)
	}
}
