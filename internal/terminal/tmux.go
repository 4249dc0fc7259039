package terminal

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// TmuxSource captures a tmux pane's content with `tmux capture-pane`.
// The pane is identified by a tmux target spec (session:window.pane, a
// pane id like %3, or empty for the active pane).
type TmuxSource struct {
	// Target is passed to tmux -t. Empty means the active pane.
	Target string

	// HistoryLines limits how far back into scrollback to capture.
	// Zero captures the entire history.
	HistoryLines int

	// tmuxPath overrides the binary looked up on PATH. Tests use this.
	tmuxPath string
}

// NewTmuxSource creates a source for the given pane target.
func NewTmuxSource(target string, historyLines int) *TmuxSource {
	return &TmuxSource{Target: target, HistoryLines: historyLines}
}

// Capture runs capture-pane and returns the pane text with ANSI already
// stripped by tmux (-p prints plain text; -J rejoins wrapped lines so
// long diff lines come back intact).
func (t *TmuxSource) Capture(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, t.binary(), t.args()...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tmux capture-pane failed: %w\nOutput: %s", err, output)
	}
	return string(output), nil
}

func (t *TmuxSource) binary() string {
	if t.tmuxPath != "" {
		return t.tmuxPath
	}
	return "tmux"
}

func (t *TmuxSource) args() []string {
	start := "-"
	if t.HistoryLines > 0 {
		start = "-" + strconv.Itoa(t.HistoryLines)
	}
	args := []string{"capture-pane", "-p", "-J", "-S", start}
	if t.Target != "" {
		args = append(args, "-t", t.Target)
	}
	return args
}

// StaticSource returns fixed text on every capture. Useful for one-shot
// runs fed from a file and for tests.
type StaticSource string

func (s StaticSource) Capture(context.Context) (string, error) {
	return string(s), nil
}

// String renders the source for log messages.
func (t *TmuxSource) String() string {
	target := t.Target
	if target == "" {
		target = "active pane"
	}
	depth := "full history"
	if t.HistoryLines > 0 {
		depth = fmt.Sprintf("last %d lines", t.HistoryLines)
	}
	return strings.Join([]string{"tmux", target, depth}, " ")
}
