package diagfmt

import (
	"fmt"
	"path/filepath"

	"onion/internal/source"
)

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<builtin>"
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
			return path
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return path
		}
		rel = filepath.ToSlash(rel)
		if mode == PathModeAuto && len(rel) >= len(path) {
			return path
		}
		return rel
	}
	return path
}

// location renders "path:start-end"; spans are byte offsets into the
// declaration file.
func location(span source.Span, fs *source.FileSet, mode PathMode, base string) string {
	path := formatPath(fs.Path(span.File), mode, base)
	if span.Empty() {
		return path
	}
	return fmt.Sprintf("%s:%d-%d", path, span.Start, span.End)
}
