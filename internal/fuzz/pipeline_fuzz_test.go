package fuzztests

import (
	"context"
	"io"
	"testing"
	"time"

	"jsmin/internal/bind"
	"jsmin/internal/diag"
	"jsmin/internal/jsonout"
	"jsmin/internal/jsparse"
	"jsmin/internal/rewrite"
	"jsmin/internal/source"
	"jsmin/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input. If the pipeline
// takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func newDoc(input []byte) (*source.Document, *diag.Bag) {
	doc := source.NewVirtualDocument("fuzz.js", string(input))
	bag := diag.NewBag(128)
	doc.SetReporter(diag.BagReporter{Bag: bag})
	return doc, bag
}

// FuzzParseBind feeds arbitrary bytes through parse, bind and the debug
// rewrite and checks the tree invariants after parsing.
func FuzzParseBind(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		doc, _ := newDoc(input)

		prog, err := jsparse.Parse(context.Background(), doc)
		if err != nil {
			return
		}
		if err := testkit.CheckTreeInvariants(prog, doc); err != nil {
			t.Fatalf("invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		bind.Bind(prog, bind.Options{MaxDepth: bind.DefaultMaxDepth})
		rewrite.StripDebug(prog, rewrite.DefaultDebugLookups)
	})
}

// FuzzParseValueJSON checks that the JSON emitter never fails on parsed
// values.
func FuzzParseValueJSON(f *testing.F) {
	addJSONSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		doc, _ := newDoc(input)

		prog, err := jsparse.ParseValue(context.Background(), doc)
		if err != nil {
			return
		}
		if _, err := jsonout.Apply(io.Discard, prog); err != nil {
			t.Fatalf("Apply on io.Discard: %v", err)
		}
	})
}

// FuzzPipelineNoHang tests that the pipeline doesn't hang on any input.
func FuzzPipelineNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// конструкции с глубокой вложенностью и обрывами
	f.Add([]byte("function f() { { { { } } } }"))
	f.Add([]byte("for (var i = 0 i < 10 i++) {}"))
	f.Add([]byte("((((((((((((((((x))))))))))))))))"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			doc, _ := newDoc(input)
			prog, err := jsparse.Parse(ctx, doc)
			if err != nil {
				return
			}
			bind.Bind(prog, bind.Options{MaxDepth: bind.DefaultMaxDepth})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
