package diagfmt

import (
	"os"
	"path/filepath"

	"bajzel/internal/diag"
	"bajzel/internal/source"
)

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return f.Path
			}
			baseDir = wd
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}

// located reports whether sp can be resolved against fs.
func located(fs *source.FileSet, code diag.Code, sp source.Span) bool {
	return fs != nil && code.HasSource() && int(sp.File) < fs.Len()
}
