package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

// languageSeeds cover the constructs the binder treats specially.
var languageSeeds = []string{
	"",
	"var a = 1;\nfunction f(x) { return x + a; }\nf(2);\n",
	"function outer() { var x; function inner() { return x; } return inner; }\n",
	"try { risky(); } catch (e) { var e = 2; log(e); }\n",
	"if (ok) { function late() {} } late();\n",
	"with (obj) { prop = 1; }\n",
	"function g() { eval('x'); var y; }\n",
	"var f = function named() { return named; };\n",
	"function dup(a, a) { return arguments[0]; }\n",
	"Debug.write('x'); debugger; $Debug.fail();\n",
	"/*@cc_on @if (@_win32) x(); @end @*/ y();\n",
	"for (var k in o) { if (k) continue; else break; }\n",
	"label: while (true) { break label; }\n",
	"switch (x) { case 1: y(); break; default: z(); }\n",
	"var s = 'a\\u00e9\\n', n = 0x1F + 1e21 + .5, r = /re+/g;\n",
	"{ { { { } } } }\n",
	"var = ;\n",
	"function (\n",
}

// jsonSeeds are inputs for the JSON value harness.
var jsonSeeds = []string{
	`{"a": [1, 2.50, null], "b": "x"}`,
	`-1000`,
	`[1, foo]`,
	`{"k": "é\"\\", "n": 1e-7, "t": true}`,
	`"unterminated`,
	`{`,
	`[NaN, Infinity, -Infinity]`,
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addJSONSeeds(f *testing.F) {
	for _, s := range jsonSeeds {
		f.Add([]byte(s))
	}
}

// addTestdataSeeds adds every *.js file under the repository testdata tree,
// if one exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".js") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
