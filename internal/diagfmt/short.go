package diagfmt

import (
	"io"

	"jsmin/internal/diag"
)

// Short writes one build-tool line per diagnostic:
//
//	src/app.js(3,5-8): warning JS1135: undefined variable: foo
func Short(w io.Writer, bag *diag.Bag, mode PathMode, baseDir string) error {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		d.Primary.File = formatPath(d.Primary.File, mode, baseDir)
		if _, err := io.WriteString(w, d.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
