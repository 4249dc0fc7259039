// Package patch reconstructs the full suggested content of a file by
// positionally applying a parsed preview block's line edits to the current
// on-disk text. It never touches the filesystem: input and output are
// plain strings, which is what keeps the preview side effect free.
package patch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kvit-s/kvit-watch/internal/preview"
)

// ErrNotApplicable is returned when an edit targets a line index the
// current content no longer has. It means the file has drifted too far
// from what the tool saw when it rendered line numbers for positional
// patching to stay meaningful. Callers should fall back to showing the
// reconstructed snippet pair instead of a full-file diff.
var ErrNotApplicable = errors.New("edits not applicable to current content")

// Mismatch records a context line whose current content differs from what
// the preview captured. Mismatches are tolerated, not fatal: the tool is
// known to cosmetically reflow whitespace in previews, so the apply
// continues best-effort and the caller decides whether to surface these.
type Mismatch struct {
	LineNumber int
	Want       string
	Got        string
}

// Result is a successful application.
type Result struct {
	// Text is the complete reconstructed file content.
	Text string
	// Mismatches lists tolerated context-line divergences, in apply order.
	Mismatches []Mismatch
}

// kindOrder breaks ties between edits that share a line number. A delete
// or context check at line N must resolve before an insert lands at N,
// otherwise the insert would shift the index the check is about to use.
func kindOrder(k preview.LineKind) int {
	switch k {
	case preview.Delete:
		return 0
	case preview.Context:
		return 1
	default:
		return 2
	}
}

// Apply reconstructs the suggested file content by applying edits to
// current. Line numbers in the edits are 1-based indices into the file as
// the tool saw it; a running offset accounts for insertions and deletions
// already performed. Returns ErrNotApplicable (wrapped) when any edit's
// target index falls outside the current line range; no partial result is
// ever returned.
func Apply(current string, edits []preview.LineEdit) (*Result, error) {
	if len(edits) == 0 {
		return nil, fmt.Errorf("empty edit list: %w", ErrNotApplicable)
	}

	// Trailing-newline semantics follow directly from the split: content
	// ending in \n yields one trailing empty element, which survives the
	// join unchanged.
	lines := strings.Split(current, "\n")

	sorted := make([]preview.LineEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LineNumber != sorted[j].LineNumber {
			return sorted[i].LineNumber < sorted[j].LineNumber
		}
		return kindOrder(sorted[i].Kind) < kindOrder(sorted[j].Kind)
	})

	var mismatches []Mismatch

	// offset is the net shift applied to target indices. A delete's shift
	// must only reach edits at later line numbers: the insert replacing a
	// deleted line carries the same number and has to land in the slot the
	// delete just vacated, so same-line deletes park their decrement in
	// deferred until the line number advances.
	offset := 0
	deferred := 0
	lastLine := -1
	for _, e := range sorted {
		if e.LineNumber != lastLine {
			offset += deferred
			deferred = 0
			lastLine = e.LineNumber
		}
		idx := e.LineNumber - 1 + offset
		if idx < 0 || idx > len(lines) {
			return nil, fmt.Errorf("line %d (%s) out of range for %d-line content: %w",
				e.LineNumber, e.Kind, len(lines), ErrNotApplicable)
		}

		switch e.Kind {
		case preview.Context:
			if idx >= len(lines) {
				return nil, fmt.Errorf("context line %d beyond end of %d-line content: %w",
					e.LineNumber, len(lines), ErrNotApplicable)
			}
			if strings.TrimSpace(lines[idx]) != strings.TrimSpace(e.Text) {
				mismatches = append(mismatches, Mismatch{
					LineNumber: e.LineNumber,
					Want:       e.Text,
					Got:        lines[idx],
				})
			}
		case preview.Delete:
			if idx >= len(lines) {
				return nil, fmt.Errorf("delete line %d beyond end of %d-line content: %w",
					e.LineNumber, len(lines), ErrNotApplicable)
			}
			lines = append(lines[:idx], lines[idx+1:]...)
			deferred--
		case preview.Add:
			// idx == len(lines) appends.
			lines = append(lines, "")
			copy(lines[idx+1:], lines[idx:])
			lines[idx] = e.Text
			offset++
		}
	}

	return &Result{Text: strings.Join(lines, "\n"), Mismatches: mismatches}, nil
}
