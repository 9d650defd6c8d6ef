package diagfmt

import "jsmin/internal/source"

// Sources gives the formatters access to the text diagnostics point into.
type Sources interface {
	// Line returns the 1-based line of file, without its newline.
	Line(file string, line int) (string, bool)
}

// Documents is a Sources backed by loaded documents keyed by Document.Path.
type Documents map[string]*source.Document

// Add registers doc under its path.
func (d Documents) Add(doc *source.Document) {
	if doc != nil {
		d[doc.Path] = doc
	}
}

func (d Documents) Line(file string, line int) (string, bool) {
	doc, ok := d[file]
	if !ok || line <= 0 {
		return "", false
	}
	if line > int(doc.LineCol(doc.Len()).Line) {
		return "", false
	}
	return doc.GetLine(line), true
}
