package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Color definitions for diff rendering
var (
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	headerColor = color.New(color.FgWhite, color.Faint)
	titleColor  = color.New(color.FgYellow)
)

// ColorPresenter writes colorized unified diffs to an io.Writer.
type ColorPresenter struct {
	out          io.Writer
	contextLines int
}

// NewColorPresenter creates a presenter writing to out. contextLines <= 0
// defaults to 3.
func NewColorPresenter(out io.Writer, contextLines int) *ColorPresenter {
	if contextLines <= 0 {
		contextLines = 3
	}
	return &ColorPresenter{out: out, contextLines: contextLines}
}

func (p *ColorPresenter) ShowSnippet(title, originalText, suggestedText string) error {
	diff, err := unifiedDiff(originalText, suggestedText, "before", "after", p.contextLines)
	if err != nil {
		return fmt.Errorf("render snippet diff: %w", err)
	}
	titleColor.Fprintf(p.out, "── %s (snippet) ──\n", title)
	p.writeDiff(diff)
	return nil
}

func (p *ColorPresenter) ShowFile(path, originalSnapshot, suggestedFullText string) error {
	diff, err := unifiedDiff(originalSnapshot, suggestedFullText, "a/"+path, "b/"+path, p.contextLines)
	if err != nil {
		return fmt.Errorf("render file diff: %w", err)
	}
	titleColor.Fprintf(p.out, "── %s ──\n", path)
	if diff == "" {
		headerColor.Fprintln(p.out, "(no effective change)")
		return nil
	}
	p.writeDiff(diff)
	return nil
}

// writeDiff colorizes a unified diff line by line.
func (p *ColorPresenter) writeDiff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			headerColor.Fprint(p.out, line)
		case strings.HasPrefix(line, "@@"):
			hunkColor.Fprint(p.out, line)
		case strings.HasPrefix(line, "+"):
			addColor.Fprint(p.out, line)
		case strings.HasPrefix(line, "-"):
			delColor.Fprint(p.out, line)
		default:
			fmt.Fprint(p.out, line)
		}
	}
}

func unifiedDiff(oldContent, newContent, fromFile, toFile string, contextLines int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  contextLines,
	}
	return difflib.GetUnifiedDiffString(diff)
}
