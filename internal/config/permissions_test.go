package config

import (
	"strings"
	"testing"
)

func permConfig() *Config {
	cfg := &Config{}
	cfg.Workspace.Root = "/work"
	return cfg
}

func TestCheckReadPermission_InsideWorkspace(t *testing.T) {
	cfg := permConfig()

	for _, path := range []string{"/work/src/main.go", "src/main.go", "/work"} {
		if err := cfg.CheckReadPermission(path); err != nil {
			t.Errorf("CheckReadPermission(%q) = %v, want nil", path, err)
		}
	}
}

func TestCheckReadPermission_OutsideWorkspace(t *testing.T) {
	cfg := permConfig()

	tests := []struct {
		name string
		path string
	}{
		{"absolute outside root", "/etc/passwd"},
		{"relative escaping root", "../other/secret.txt"},
		{"clean traversal inside header path", "src/../../other/secret.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.CheckReadPermission(tt.path)
			if err == nil {
				t.Fatalf("CheckReadPermission(%q) = nil, want error", tt.path)
			}
			if !strings.Contains(err.Error(), "outside the workspace") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckReadPermission_AllowOutsideWorkspace(t *testing.T) {
	cfg := permConfig()
	cfg.Workspace.AllowOutsideWorkspace = true

	if err := cfg.CheckReadPermission("/etc/hosts"); err != nil {
		t.Errorf("CheckReadPermission with allow_outside_workspace = %v, want nil", err)
	}
}

func TestCheckReadPermission_AllowedReadPaths(t *testing.T) {
	cfg := permConfig()
	cfg.Workspace.AllowedReadPaths = []string{"/shared/docs"}

	if err := cfg.CheckReadPermission("/shared/docs/guide.md"); err != nil {
		t.Errorf("allowed read path rejected: %v", err)
	}
	if err := cfg.CheckReadPermission("/shared/other/guide.md"); err == nil {
		t.Error("path outside allowed read paths should be rejected")
	}
}

func TestCheckReadPermission_DeniedPaths(t *testing.T) {
	cfg := permConfig()
	cfg.Workspace.DeniedPaths = []string{"/work/.secrets"}

	if err := cfg.CheckReadPermission("/work/.secrets/token"); err == nil {
		t.Fatal("denied path should be rejected even inside the workspace")
	}
	if err := cfg.CheckReadPermission("/work/src/main.go"); err != nil {
		t.Errorf("sibling of denied path rejected: %v", err)
	}
}
