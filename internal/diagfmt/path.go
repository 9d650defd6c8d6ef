package diagfmt

import (
	"path/filepath"

	"jsmin/internal/source"
)

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<input>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative, PathModeAuto:
		if base == "" {
			if mode == PathModeAuto {
				return path
			}
			base = "."
		}
		if rel, err := source.RelativePath(path, base); err == nil {
			return rel
		}
	}
	return path
}
