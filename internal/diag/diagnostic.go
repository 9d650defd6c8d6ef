package diag

import (
	"fmt"
	"strings"
)

// Location pins a diagnostic to a source range. Lines and columns are 1-based;
// Start/End are absolute byte offsets, half-open.
type Location struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Start       int
	End         int
}

type Note struct {
	Location Location
	Msg      string
}

type Diagnostic struct {
	Severity Severity
	Level    Level
	IsError  bool
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}

// New builds a diagnostic with the code's default level.
func New(code Code, primary Location, msg string) Diagnostic {
	level := code.DefaultLevel()
	return NewWithLevel(code, level, level.IsError(), primary, msg)
}

// NewWithLevel builds a diagnostic with an explicit level and error flag.
func NewWithLevel(code Code, level Level, isError bool, primary Location, msg string) Diagnostic {
	if msg == "" {
		msg = code.Title()
	}
	return Diagnostic{
		Severity: SeverityOf(level, isError),
		Level:    level,
		IsError:  isError,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	}
}

func (d Diagnostic) WithNote(loc Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Location: loc, Msg: msg})
	return d
}

// String renders the classic build-tool form:
//
//	file(line,col-endcol): error JS1135: message
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Primary.File)

	loc := d.Primary
	if loc.StartLine > 0 {
		fmt.Fprintf(&sb, "(%d", loc.StartLine)
		switch {
		case loc.EndLine > loc.StartLine:
			if loc.StartColumn > 0 && loc.EndColumn > 0 {
				fmt.Fprintf(&sb, ",%d,%d,%d", loc.StartColumn, loc.EndLine, loc.EndColumn)
			} else {
				fmt.Fprintf(&sb, "-%d", loc.EndLine)
			}
		case loc.StartColumn > 0:
			fmt.Fprintf(&sb, ",%d", loc.StartColumn)
			if loc.EndColumn > loc.StartColumn {
				fmt.Fprintf(&sb, "-%d", loc.EndColumn)
			}
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(':')
	if d.IsError {
		sb.WriteString(" error ")
	} else {
		sb.WriteString(" warning ")
	}
	sb.WriteString(d.Code.ID())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}
