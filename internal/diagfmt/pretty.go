package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsmin/internal/diag"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Location, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, src Sources, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for _, d := range bag.Items() {
		var sb strings.Builder
		loc := d.Primary
		sb.WriteString(pal.path.Sprint(locationPrefix(loc, opts.PathMode, opts.BaseDir)))
		sb.WriteString(": ")
		sb.WriteString(pal.severity(d.Severity).Sprint(d.Severity.String()))
		sb.WriteByte(' ')
		sb.WriteString(pal.code.Sprint(d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')

		if src != nil && loc.StartLine > 0 {
			writeSnippet(&sb, src, loc, int(opts.Context), tab, pal)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				sb.WriteString("  ")
				sb.WriteString(pal.note.Sprint("note"))
				sb.WriteString(": ")
				if n.Location.StartLine > 0 {
					sb.WriteString(locationPrefix(n.Location, opts.PathMode, opts.BaseDir))
					sb.WriteString(": ")
				}
				sb.WriteString(n.Msg)
				sb.WriteByte('\n')
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func locationPrefix(loc diag.Location, mode PathMode, base string) string {
	path := formatPath(loc.File, mode, base)
	if loc.StartLine <= 0 {
		return path
	}
	if loc.StartColumn <= 0 {
		return fmt.Sprintf("%s:%d", path, loc.StartLine)
	}
	return fmt.Sprintf("%s:%d:%d", path, loc.StartLine, loc.StartColumn)
}

func writeSnippet(sb *strings.Builder, src Sources, loc diag.Location, context, tab int, pal palette) {
	first := max(loc.StartLine-context, 1)
	last := loc.StartLine + context
	gutter := len(strconv.Itoa(last))

	for n := first; n <= last; n++ {
		text, ok := src.Line(loc.File, n)
		if !ok {
			if n < loc.StartLine {
				continue
			}
			break
		}
		sb.WriteString(pal.gutter.Sprintf("%*d | ", gutter+1, n))
		sb.WriteString(expandTabs(text, tab))
		sb.WriteByte('\n')
		if n != loc.StartLine {
			continue
		}
		start := max(loc.StartColumn-1, 0)
		end := len(text)
		if loc.EndLine == loc.StartLine && loc.EndColumn > loc.StartColumn {
			end = loc.EndColumn - 1
		}
		pad, width := visualSpan(text, start, end, tab)
		sb.WriteString(pal.gutter.Sprintf("%*s | ", gutter+1, ""))
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(pal.caret.Sprint("^" + strings.Repeat("~", max(width-1, 0))))
		sb.WriteByte('\n')
	}
}

// visualSpan maps the byte range [start,end) of line to terminal cells:
// the padding before it and its width. Tabs stop every tab cells and wide
// runes take two cells.
func visualSpan(line string, start, end, tab int) (pad, width int) {
	start = min(start, len(line))
	end = max(min(end, len(line)), start)
	col := 0
	for i, r := range line {
		if i == start {
			pad = col
		}
		if i >= end {
			break
		}
		col += cellWidth(r, col, tab)
	}
	if start == len(line) {
		pad = col
	}
	width = col - pad
	if end <= start || width < 1 {
		width = 1
	}
	return pad, width
}

func cellWidth(r rune, col, tab int) int {
	if r == '\t' {
		return tab - col%tab
	}
	return max(runewidth.RuneWidth(r), 0)
}

func expandTabs(line string, tab int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		w := cellWidth(r, col, tab)
		if r == '\t' {
			sb.WriteString(strings.Repeat(" ", w))
		} else {
			sb.WriteRune(r)
		}
		col += w
	}
	return sb.String()
}

// Summary renders "2 errors, 1 warning" for the bag; empty when the bag is.
func Summary(bag *diag.Bag) string {
	if bag == nil {
		return ""
	}
	errs, warns, infos := bag.Counts()
	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	if infos > 0 {
		parts = append(parts, plural(infos, "message"))
	}
	if n := bag.Dropped(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d more not shown", n))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
