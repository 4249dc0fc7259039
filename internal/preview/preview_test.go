package preview

import (
	"reflect"
	"testing"
)

const sampleBlock = `Would you like to make the following edits?

  src/main.rs (+1 -1)

      18      fn main() {
      19 -        println!("Hello");
      19 +        println!("World");
      20      }

1. Yes, proceed
2. No`

func TestParse_NoMarker(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "plain shell output", input: "$ ls\nmain.go\n$ cargo build\n   Compiling foo v0.1.0"},
		{name: "similar but wrong phrase", input: "Would you like to make some edits?\n  a.go (+1 -0)\n   1 + x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != nil {
				t.Errorf("Parse() = %+v, want nil", got)
			}
		})
	}
}

func TestParse_Basic(t *testing.T) {
	block := Parse(sampleBlock)
	if block == nil {
		t.Fatal("Parse() returned nil for valid block")
	}
	if block.FilePath != "src/main.rs" {
		t.Errorf("FilePath = %q, want %q", block.FilePath, "src/main.rs")
	}
	if block.DeclaredAdds != 1 || block.DeclaredDels != 1 {
		t.Errorf("declared counts = (+%d -%d), want (+1 -1)", block.DeclaredAdds, block.DeclaredDels)
	}

	want := []LineEdit{
		{LineNumber: 18, Kind: Context, Text: "      fn main() {"},
		{LineNumber: 19, Kind: Delete, Text: "         println!(\"Hello\");"},
		{LineNumber: 19, Kind: Add, Text: "         println!(\"World\");"},
		{LineNumber: 20, Kind: Context, Text: "      }"},
	}
	if !reflect.DeepEqual(block.Edits, want) {
		t.Errorf("Edits = %#v, want %#v", block.Edits, want)
	}
}

func TestParse_Reconstruction(t *testing.T) {
	block := Parse(sampleBlock)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	wantOrig := "      fn main() {\n         println!(\"Hello\");\n      }"
	wantSugg := "      fn main() {\n         println!(\"World\");\n      }"
	if block.OriginalText != wantOrig {
		t.Errorf("OriginalText = %q, want %q", block.OriginalText, wantOrig)
	}
	if block.SuggestedText != wantSugg {
		t.Errorf("SuggestedText = %q, want %q", block.SuggestedText, wantSugg)
	}
}

func TestParse_LastMarkerWins(t *testing.T) {
	old := `Would you like to make the following edits?

  old.go (+1 -0)

      5 +    old_addition()

1. Yes, proceed
`
	recent := `Would you like to make the following edits?

  new.go (+1 -0)

      7 +    new_addition()

1. Yes, proceed
`
	block := Parse(old + "\n$ some shell noise\n" + recent)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	if block.FilePath != "new.go" {
		t.Errorf("FilePath = %q, want most recent block's %q", block.FilePath, "new.go")
	}
	if len(block.Edits) != 1 || block.Edits[0].LineNumber != 7 {
		t.Errorf("Edits = %+v, want the single edit from the second block", block.Edits)
	}
}

func TestParse_MissingHeader(t *testing.T) {
	input := Marker + "\n\n      18      some line\n      19 +    added\n"
	// Without a "path (+N -M)" header line the listing never qualifies as a
	// block, no matter how many edit-shaped lines follow.
	if got := Parse(input); got != nil {
		t.Errorf("Parse() = %+v, want nil when header line is absent", got)
	}
}

func TestParse_EmptyEditList(t *testing.T) {
	input := Marker + "\n\n  foo.go (+0 -0)\n\n1. Yes, proceed\n"
	if got := Parse(input); got != nil {
		t.Errorf("Parse() = %+v, want nil when no edit lines are collected", got)
	}
}

func TestParse_SkipsEllipsisAndBlanks(t *testing.T) {
	input := Marker + `

  pkg/util.go (+1 -0)

      3      import "fmt"

      ⋮

      40 +    fmt.Println("tail")

1. Yes, proceed
`
	block := Parse(input)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	if len(block.Edits) != 2 {
		t.Fatalf("len(Edits) = %d, want 2 (blank and ellipsis lines skipped)", len(block.Edits))
	}
	if block.Edits[0].LineNumber != 3 || block.Edits[1].LineNumber != 40 {
		t.Errorf("line numbers = %d, %d, want 3, 40", block.Edits[0].LineNumber, block.Edits[1].LineNumber)
	}
}

func TestParse_MenuTerminatesScan(t *testing.T) {
	input := Marker + `

  a.go (+2 -0)

      1 +    first()
1. Yes, proceed
      2 +    leaked_after_menu()
`
	block := Parse(input)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	if len(block.Edits) != 1 {
		t.Errorf("len(Edits) = %d, want 1 (lines after the menu are excluded)", len(block.Edits))
	}
}

func TestParse_YesProceedVariant(t *testing.T) {
	input := Marker + `

  a.go (+2 -0)

      1 +    first()
   ❯ 1. Yes, proceed once
      2 +    leaked()
`
	block := Parse(input)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	if len(block.Edits) != 1 {
		t.Errorf("len(Edits) = %d, want 1 (any line containing %q terminates)", len(block.Edits), "Yes, proceed")
	}
}

func TestParse_TruncatedInputAccepted(t *testing.T) {
	// A still-streaming buffer can end mid-listing with no menu line.
	input := Marker + "\n\n  b.go (+3 -0)\n\n      10 +    one()\n      11 +    tw"
	block := Parse(input)
	if block == nil {
		t.Fatal("Parse() returned nil for truncated block")
	}
	if len(block.Edits) != 2 {
		t.Fatalf("len(Edits) = %d, want 2", len(block.Edits))
	}
	if block.Edits[1].Text != "     tw" {
		t.Errorf("Edits[1].Text = %q, want partial line preserved", block.Edits[1].Text)
	}
}

func TestParse_SkipsNonConformingLines(t *testing.T) {
	input := Marker + `

  c.go (+1 -0)

      stray line without number
      42
      7 +    kept()

1. Yes, proceed
`
	block := Parse(input)
	if block == nil {
		t.Fatal("Parse() returned nil")
	}
	// "stray line..." has no leading digits, "42" has nothing after the digit
	// run; both are tolerated and skipped.
	if len(block.Edits) != 1 || block.Edits[0].LineNumber != 7 {
		t.Errorf("Edits = %+v, want just the conforming line 7", block.Edits)
	}
}

func TestParse_KindFromFirstNonWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind LineKind
		wantText string
	}{
		{
			name:     "plus marker stripped",
			line:     "      12 +    added()",
			wantKind: Add,
			wantText: "     added()",
		},
		{
			name:     "minus marker stripped",
			line:     "      12 -    removed()",
			wantKind: Delete,
			wantText: "     removed()",
		},
		{
			name:     "context keeps remainder verbatim",
			line:     "      12      unchanged()",
			wantKind: Context,
			wantText: "      unchanged()",
		},
		{
			name:     "minus inside content is still context",
			line:     "      12      x := a - b",
			wantKind: Context,
			wantText: "      x := a - b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit, ok := parseEditLine(tt.line)
			if !ok {
				t.Fatal("parseEditLine() rejected a valid line")
			}
			if edit.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", edit.Kind, tt.wantKind)
			}
			if edit.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", edit.Text, tt.wantText)
			}
			if edit.LineNumber != 12 {
				t.Errorf("LineNumber = %d, want 12", edit.LineNumber)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(sampleBlock)
	second := Parse(sampleBlock)
	if first == nil || second == nil {
		t.Fatal("Parse() returned nil")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Parse() calls differ:\n%+v\n%+v", first, second)
	}
}
