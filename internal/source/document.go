package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"

	"jsmin/internal/diag"
	"jsmin/internal/token"
)

// Document is one parse+analyze+emit unit: the source text, its identity and
// the per-unit diagnostic state. A Document is not safe for concurrent use.
type Document struct {
	Path        string
	Source      string
	Flags       FileFlags
	IsGenerated bool

	lines    lineIndex
	reported map[string]struct{}
	reporter diag.Reporter
}

// NewDocument wraps in-memory source text.
func NewDocument(path, src string) *Document {
	return &Document{
		Path:   normalizePath(path),
		Source: src,
		lines:  buildLineIndex(src),
	}
}

// NewVirtualDocument wraps text that did not come from disk (tests, stdin).
func NewVirtualDocument(name, src string) *Document {
	doc := NewDocument(name, src)
	doc.Flags |= FileVirtual
	return doc
}

// LoadDocument reads a file from disk, normalizes CRLF/BOM and wraps it.
func LoadDocument(path string) (*Document, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	doc := NewDocument(path, string(content))
	if hadBOM {
		doc.Flags |= FileHadBOM
	}
	if hadCRLF {
		doc.Flags |= FileNormalizedCRLF
	}
	return doc, nil
}

// SetReporter installs the sink every diagnostic of this document goes to.
func (d *Document) SetReporter(r diag.Reporter) {
	d.reporter = r
}

// Reporter returns the installed sink, never nil.
func (d *Document) Reporter() diag.Reporter {
	if d.reporter == nil {
		return diag.NopReporter{}
	}
	return d.reporter
}

// HasAlreadySeenErrorFor records text as reported and reports whether it had
// been recorded before.
func (d *Document) HasAlreadySeenErrorFor(text string) bool {
	if d.reported == nil {
		d.reported = make(map[string]struct{})
	} else if _, ok := d.reported[text]; ok {
		return true
	}
	d.reported[text] = struct{}{}
	return false
}

// HandleError forwards a finished diagnostic to the reporter.
func (d *Document) HandleError(dg diag.Diagnostic) {
	if dg.Primary.File == "" {
		dg.Primary.File = d.Path
	}
	d.Reporter().Report(dg)
}

// Len returns the source length in bytes.
func (d *Document) Len() int {
	return len(d.Source)
}

// LineCol converts a byte offset into a 1-based line/column pair.
func (d *Document) LineCol(off int) LineCol {
	return d.lines.toLineCol(d.offset(off))
}

// ContextAt builds a context covering [start,end) with line information
// resolved from the document's line index.
func (d *Document) ContextAt(start, end int, tok token.Kind) *Context {
	if start < 0 || end < start || end > len(d.Source) {
		panic(fmt.Errorf("context range [%d,%d) outside document of length %d", start, end, len(d.Source)))
	}
	startLine := d.lines.lineOf(d.offset(start))
	endLine := d.lines.lineOf(d.offset(end))
	return &Context{
		Document:          d,
		StartLineNumber:   startLine + 1,
		StartLinePosition: int(d.lines.lineStart(startLine)),
		StartPosition:     start,
		EndLineNumber:     endLine + 1,
		EndLinePosition:   int(d.lines.lineStart(endLine)),
		EndPosition:       end,
		SourceOffsetStart: start,
		SourceOffsetEnd:   end,
		Token:             tok,
	}
}

// GetLine возвращает строку с заданным номером (1-based) из документа.
// Если строка не существует, возвращает пустую строку.
func (d *Document) GetLine(lineNum int) string {
	if lineNum <= 0 || lineNum > len(d.lines)+1 {
		return ""
	}
	start := int(d.lines.lineStart(lineNum - 1))
	end := len(d.Source)
	if lineNum-1 < len(d.lines) {
		end = int(d.lines[lineNum-1])
	}
	if start > end {
		return ""
	}
	return d.Source[start:end]
}

func (d *Document) offset(off int) uint32 {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
