// Package preview parses the inline edit-preview block that an interactive
// coding assistant renders into its terminal session. The format is not a
// real unified diff: it is an annotated line listing with 1-based line
// numbers, a +/- marker for added/removed lines, and nothing for context
// lines. The parser is deliberately tied to the one observed format and
// tolerates truncated input, since the caller polls a still-streaming
// terminal buffer.
package preview

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Marker is the literal prompt line that opens a preview block.
const Marker = "Would you like to make the following edits?"

// ellipsisRune is rendered by the tool between non-adjacent hunks to mean
// "elided context". It carries no positional information and is skipped.
const ellipsisRune = "⋮"

// headerRegex matches the file header line: a path followed by the
// "(+adds -dels)" summary, e.g. "  src/main.go (+2 -1)".
var headerRegex = regexp.MustCompile(`^\s*(.+?)\s+\(\+(\d+)\s+-(\d+)\)\s*$`)

// LineKind classifies a parsed preview line.
type LineKind int

const (
	Context LineKind = iota
	Add
	Delete
)

func (k LineKind) String() string {
	switch k {
	case Context:
		return "context"
	case Add:
		return "add"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// LineEdit is one parsed line of a preview block. LineNumber is the 1-based
// index into the original file as the tool's renderer understood it at
// capture time. Text has only the single +/- marker character removed; all
// other whitespace is preserved exactly as captured.
type LineEdit struct {
	LineNumber int
	Kind       LineKind
	Text       string
}

// Block is the parsed result for one file's preview.
type Block struct {
	// FilePath is the raw path as printed by the tool. It may carry a/ or b/
	// VCS prefixes or a leading ./; see NormalizePath.
	FilePath string

	// DeclaredAdds and DeclaredDels come from the "(+A -B)" header summary.
	// The tool does not keep them consistent with the edit list, so they are
	// display-only and never validated.
	DeclaredAdds int
	DeclaredDels int

	// Edits in encounter order from the source text. Never empty.
	Edits []LineEdit

	// OriginalText is the join of context and deleted lines, SuggestedText
	// the join of context and added lines, both in encounter order with a
	// single \n separator and no trailing newline.
	OriginalText  string
	SuggestedText string
}

// Parse locates the most recent preview block in fullText and parses it.
// Returns nil when no valid block is present: missing marker, missing
// header line, or zero collected edit lines. It never returns an error;
// absence of a block is the only failure mode. Pure function, safe to call
// concurrently on independent inputs.
func Parse(fullText string) *Block {
	idx := strings.LastIndex(fullText, Marker)
	if idx < 0 {
		return nil
	}

	lines := strings.Split(fullText[idx:], "\n")

	headerIdx := -1
	var block Block
	for i, line := range lines {
		m := headerRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		block.FilePath = strings.TrimSpace(m[1])
		block.DeclaredAdds, _ = strconv.Atoi(m[2])
		block.DeclaredDels, _ = strconv.Atoi(m[3])
		headerIdx = i
		break
	}
	if headerIdx < 0 {
		return nil
	}

	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == ellipsisRune {
			continue
		}
		// The interactive confirmation menu ends the block. A cut-off buffer
		// with no menu line is fine: whatever was collected so far stands.
		if strings.HasPrefix(trimmed, "1. Yes") || strings.Contains(line, "Yes, proceed") {
			break
		}
		if edit, ok := parseEditLine(line); ok {
			block.Edits = append(block.Edits, edit)
		}
	}

	if len(block.Edits) == 0 {
		return nil
	}

	block.OriginalText, block.SuggestedText = reconstruct(block.Edits)
	return &block
}

// parseEditLine classifies a single candidate line. Non-conforming lines
// (no leading line number, nothing after it) are skipped rather than
// failing the block, since terminal noise can interleave with the listing.
func parseEditLine(line string) (LineEdit, bool) {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits == len(rest) {
		return LineEdit{}, false
	}
	num, err := strconv.Atoi(rest[:digits])
	if err != nil {
		return LineEdit{}, false
	}

	rem := rest[digits:]
	mark := strings.IndexFunc(rem, func(r rune) bool { return !unicode.IsSpace(r) })
	if mark < 0 {
		return LineEdit{}, false
	}

	// Kind is determined solely by the first non-whitespace character after
	// the line number. For +/- only that one character is removed; the
	// surrounding whitespace is the tool's rendering of source indentation
	// and must survive intact.
	switch rem[mark] {
	case '+':
		return LineEdit{LineNumber: num, Kind: Add, Text: rem[:mark] + rem[mark+1:]}, true
	case '-':
		return LineEdit{LineNumber: num, Kind: Delete, Text: rem[:mark] + rem[mark+1:]}, true
	default:
		return LineEdit{LineNumber: num, Kind: Context, Text: rem}, true
	}
}

// reconstruct derives the flat before/after snippets from the edit list.
func reconstruct(edits []LineEdit) (original, suggested string) {
	var orig, sugg []string
	for _, e := range edits {
		switch e.Kind {
		case Context:
			orig = append(orig, e.Text)
			sugg = append(sugg, e.Text)
		case Delete:
			orig = append(orig, e.Text)
		case Add:
			sugg = append(sugg, e.Text)
		}
	}
	return strings.Join(orig, "\n"), strings.Join(sugg, "\n")
}
