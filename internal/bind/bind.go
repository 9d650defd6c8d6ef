package bind

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"jsmin/internal/ast"
	"jsmin/internal/diag"
	"jsmin/internal/source"
	"jsmin/internal/symbols"
)

// DefaultMaxDepth bounds the nesting the binder descends into.
const DefaultMaxDepth = 512

// Options configures a binding run.
type Options struct {
	// KnownGlobals are installed next to the default host globals.
	KnownGlobals []string
	// MaxDepth limits tree nesting; zero means DefaultMaxDepth.
	MaxDepth int
	// ReportUnreferenced enables the unused variable/function diagnostics.
	ReportUnreferenced bool
}

// Result is the outcome of binding one program.
type Result struct {
	Table  *symbols.Table
	Global *symbols.Scope
	// Undefined lists the fields created for names nobody declared.
	Undefined []*symbols.Field
	// TooDeep is set when part of the tree was skipped by the depth limit.
	TooDeep bool
}

type binder struct {
	prog     *ast.Program
	doc      *source.Document
	table    *symbols.Table
	resolver *symbols.Resolver
	opts     Options
	result   *Result

	depth         int
	depthReported bool
}

// Bind runs the scope pass over prog and stores scopes and fields on the
// tree. Diagnostics go to the program document's reporter.
func Bind(prog *ast.Program, opts Options) *Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	table := symbols.NewTable(symbols.Hints{})
	b := &binder{
		prog:  prog,
		doc:   prog.Document,
		table: table,
		opts:  opts,
	}
	b.resolver = symbols.NewResolver(table, prog, symbols.ResolverOptions{
		Reporter: b.reporter(),
		Prelude:  symbols.MergePrelude(opts.KnownGlobals),
	})
	global := b.resolver.CurrentScope()
	prog.Scope = global
	prog.Table = table
	b.result = &Result{Table: table, Global: global}

	b.declare(prog, global)
	b.depth = 0
	b.resolve(prog, global)
	if opts.ReportUnreferenced {
		b.reportUnreferenced()
	}
	return b.result
}

func (b *binder) reporter() diag.Reporter {
	if b.doc == nil {
		return diag.NopReporter{}
	}
	return b.doc.Reporter()
}

// enter bumps the nesting depth; false means the subtree must be skipped.
func (b *binder) enter(n ast.Node) bool {
	b.depth++
	if b.depth <= b.opts.MaxDepth {
		return true
	}
	b.result.TooDeep = true
	if !b.depthReported {
		b.depthReported = true
		b.report(n.Context(), diag.NestingTooDeep,
			fmt.Sprintf("nesting exceeds %d levels; the remaining subtree is not analyzed", b.opts.MaxDepth))
	}
	return false
}

func (b *binder) leave() { b.depth-- }

// report sends a diagnostic for ctx, falling back to the program start when
// the node carries no context.
func (b *binder) report(ctx *source.Context, code diag.Code, msg string) {
	if ctx == nil {
		if b.doc == nil {
			return
		}
		ctx = source.NewContext(b.doc).FlattenToStart()
	}
	ctx.HandleErrorMessage(code, false, msg)
}

func (b *binder) checkNormalized(name string, ctx *source.Context) {
	if !norm.NFC.IsNormalString(name) {
		b.report(ctx, diag.IdentifierNotNormalized,
			fmt.Sprintf("identifier %q is not in Unicode normalization form C", name))
	}
}
