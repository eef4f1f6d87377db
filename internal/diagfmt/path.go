package diagfmt

import (
	"path/filepath"
	"strings"
)

// autoPathLimit is the length above which PathModeAuto prints only the basename.
const autoPathLimit = 40

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		base := baseDir
		if base == "" {
			return path
		}
		if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		if filepath.IsAbs(path) && len(path) > autoPathLimit {
			return filepath.Base(path)
		}
		return path
	}
}
