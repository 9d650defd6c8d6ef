package source

import (
	"jsmin/internal/diag"
	"jsmin/internal/token"
)

// Context is a half-open source range [StartPosition, EndPosition) plus the
// document it belongs to. Line positions are the absolute offsets of the
// first byte of the start/end lines; columns are derived from them.
type Context struct {
	Document *Document

	StartLineNumber   int
	StartLinePosition int
	StartPosition     int
	EndLineNumber     int
	EndLinePosition   int
	EndPosition       int
	SourceOffsetStart int
	SourceOffsetEnd   int

	OutputLine   int
	OutputColumn int

	Token token.Kind
}

// NewContext returns a context spanning the whole document.
func NewContext(doc *Document) *Context {
	if doc == nil {
		panic("source.NewContext: nil document")
	}
	return &Context{
		Document:        doc,
		StartLineNumber: 1,
		EndLineNumber:   1,
		EndPosition:     len(doc.Source),
		Token:           token.None,
	}
}

// NewContextRange returns a context with explicit coordinates.
func NewContextRange(doc *Document, startLine, startLinePos, startPos, endLine, endLinePos, endPos int, tok token.Kind) *Context {
	ctx := NewContext(doc)
	ctx.StartLineNumber = startLine
	ctx.StartLinePosition = startLinePos
	ctx.StartPosition = startPos
	ctx.EndLineNumber = endLine
	ctx.EndLinePosition = endLinePos
	ctx.EndPosition = endPos
	ctx.Token = tok
	return ctx
}

// Clone returns an independent copy.
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	clone := *c
	clone.OutputLine = 0
	clone.OutputColumn = 0
	return &clone
}

// FlattenToStart collapses the range to a zero-width point at its start.
func (c *Context) FlattenToStart() *Context {
	clone := c.Clone()
	clone.EndLineNumber = clone.StartLineNumber
	clone.EndLinePosition = clone.StartLinePosition
	clone.EndPosition = clone.StartPosition
	return clone
}

// FlattenToEnd collapses the range to a zero-width point at its end.
func (c *Context) FlattenToEnd() *Context {
	clone := c.Clone()
	clone.StartLineNumber = clone.EndLineNumber
	clone.StartLinePosition = clone.EndLinePosition
	clone.StartPosition = clone.EndPosition
	return clone
}

// CombineWith returns a new context from c's start to other's end. The
// document and token come from c.
func (c *Context) CombineWith(other *Context) *Context {
	if other == nil {
		return c.Clone()
	}
	return &Context{
		Document:          c.Document,
		StartLineNumber:   c.StartLineNumber,
		StartLinePosition: c.StartLinePosition,
		StartPosition:     c.StartPosition,
		EndLineNumber:     other.EndLineNumber,
		EndLinePosition:   other.EndLinePosition,
		EndPosition:       other.EndPosition,
		SourceOffsetStart: c.SourceOffsetStart,
		SourceOffsetEnd:   other.SourceOffsetEnd,
		Token:             c.Token,
	}
}

// UpdateWith widens c in place so it also covers other, and returns c.
func (c *Context) UpdateWith(other *Context) *Context {
	if other == nil {
		return c
	}
	if other.StartPosition < c.StartPosition {
		c.StartPosition = other.StartPosition
		c.StartLineNumber = other.StartLineNumber
		c.StartLinePosition = other.StartLinePosition
		c.SourceOffsetStart = other.SourceOffsetStart
	}
	if other.EndPosition > c.EndPosition {
		c.EndPosition = other.EndPosition
		c.EndLineNumber = other.EndLineNumber
		c.EndLinePosition = other.EndLinePosition
		c.SourceOffsetEnd = other.SourceOffsetEnd
	}
	return c
}

// StartColumn is the 0-based column of the start position.
func (c *Context) StartColumn() int {
	return c.StartPosition - c.StartLinePosition
}

// EndColumn is the 0-based column of the end position.
func (c *Context) EndColumn() int {
	return c.EndPosition - c.EndLinePosition
}

// IsBefore reports whether c starts before other. Every context is before nil.
func (c *Context) IsBefore(other *Context) bool {
	return other == nil ||
		c.StartLineNumber < other.StartLineNumber ||
		(c.StartLineNumber == other.StartLineNumber && c.StartColumn() < other.StartColumn())
}

// HasCode reports whether the range maps onto real, non-empty source text.
func (c *Context) HasCode() bool {
	_, ok := c.code()
	return ok
}

// Code returns the covered source text, or "" for generated documents and
// invalid ranges.
func (c *Context) Code() string {
	text, _ := c.code()
	return text
}

func (c *Context) code() (string, bool) {
	if c == nil || c.Document == nil || c.Document.IsGenerated {
		return "", false
	}
	if c.StartPosition < 0 || c.EndPosition <= c.StartPosition || c.EndPosition > len(c.Document.Source) {
		return "", false
	}
	return c.Document.Source[c.StartPosition:c.EndPosition], true
}

func (c *Context) String() string {
	return c.Code()
}

// Location converts the context into a diagnostic location with 1-based columns.
func (c *Context) Location() diag.Location {
	if c == nil {
		return diag.Location{}
	}
	loc := diag.Location{
		StartLine:   c.StartLineNumber,
		StartColumn: c.StartColumn() + 1,
		EndLine:     c.EndLineNumber,
		EndColumn:   c.EndColumn() + 1,
		Start:       c.StartPosition,
		End:         c.EndPosition,
	}
	if c.Document != nil {
		loc.File = c.Document.Path
	}
	return loc
}

// HandleError reports code at this context with the code's default message.
func (c *Context) HandleError(code diag.Code, forceToError bool) {
	c.HandleErrorMessage(code, forceToError, "")
}

// HandleErrorMessage reports code at this context. Undeclared-symbol codes are
// reported once per distinct source text within the document. The error flag
// is forced when forceToError is set; otherwise it follows the code's level.
func (c *Context) HandleErrorMessage(code diag.Code, forceToError bool, msg string) {
	if c == nil || c.Document == nil {
		return
	}
	text, hasText := c.code()
	if code.IsUndeclared() && hasText && c.Document.HasAlreadySeenErrorFor(text) {
		return
	}
	if msg == "" {
		msg = code.Title()
		if hasText && code.IsUndeclared() {
			msg += ": " + text
		}
	}

	level := code.DefaultLevel()
	isError := level.IsError()
	if forceToError {
		isError = true
	}
	c.Document.HandleError(diag.NewWithLevel(code, level, isError, c.Location(), msg))
}
