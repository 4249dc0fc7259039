package preview

import (
	"path/filepath"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain relative path", input: "src/main.go", want: "src/main.go"},
		{name: "a prefix stripped", input: "a/src/main.go", want: "src/main.go"},
		{name: "b prefix stripped", input: "b/src/main.go", want: "src/main.go"},
		{name: "dot slash stripped", input: "./src/main.go", want: "src/main.go"},
		{name: "backslashes converted", input: "src\\win\\main.go", want: "src/win/main.go"},
		{name: "surrounding whitespace trimmed", input: "  src/main.go  ", want: "src/main.go"},
		{name: "abc dir not mistaken for prefix", input: "api/handler.go", want: "api/handler.go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	root := filepath.Join("/", "work", "proj")

	t.Run("relative joins root", func(t *testing.T) {
		got := ResolvePath(root, "a/src/main.go")
		want := filepath.Join(root, "src", "main.go")
		if got != want {
			t.Errorf("ResolvePath() = %q, want %q", got, want)
		}
	})

	t.Run("absolute path kept", func(t *testing.T) {
		abs := filepath.Join("/", "tmp", "x.go")
		if got := ResolvePath(root, abs); got != abs {
			t.Errorf("ResolvePath() = %q, want %q", got, abs)
		}
	})

	t.Run("empty root returns normalized path", func(t *testing.T) {
		if got := ResolvePath("", "./x/y.go"); got != filepath.Join("x", "y.go") {
			t.Errorf("ResolvePath() = %q", got)
		}
	})
}
