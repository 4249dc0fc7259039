package preview

import (
	"path/filepath"
	"strings"
)

// NormalizePath cleans up a path as printed by the tool so it can be
// resolved against a project root: backslashes become forward slashes and
// VCS-style a/ b/ prefixes and a leading ./ are stripped.
func NormalizePath(raw string) string {
	p := strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
	if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		p = p[2:]
	}
	p = strings.TrimPrefix(p, "./")
	return p
}

// ResolvePath normalizes raw and anchors it at root unless it is already
// absolute. Root may be empty, in which case the normalized path is
// returned as-is.
func ResolvePath(root, raw string) string {
	p := NormalizePath(raw)
	if filepath.IsAbs(p) || root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
