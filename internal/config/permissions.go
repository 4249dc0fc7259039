package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckReadPermission validates that the watcher may read the file a preview
// names. Previews are untrusted pane text, so paths are checked against the
// workspace config before any file access.
func (c *Config) CheckReadPermission(path string) error {
	// Resolve path relative to workspace root (not current working directory)
	var absPath string
	if filepath.IsAbs(path) {
		absPath = filepath.Clean(path)
	} else {
		absPath = filepath.Clean(filepath.Join(c.Workspace.Root, path))
	}

	// Check denied paths first (highest priority)
	for _, denied := range c.Workspace.DeniedPaths {
		deniedAbs, _ := filepath.Abs(expandPath(denied))
		if strings.HasPrefix(absPath, deniedAbs) {
			return fmt.Errorf("path %q is in denied_paths", path)
		}
	}

	// Check if within workspace root
	workspaceAbs, _ := filepath.Abs(c.Workspace.Root)
	if strings.HasPrefix(absPath, workspaceAbs) {
		return nil
	}

	for _, allowed := range c.Workspace.AllowedReadPaths {
		allowedAbs, _ := filepath.Abs(expandPath(allowed))
		if strings.HasPrefix(absPath, allowedAbs) {
			return nil
		}
	}

	if c.Workspace.AllowOutsideWorkspace {
		return nil
	}
	return fmt.Errorf("path %q is outside the workspace", path)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
