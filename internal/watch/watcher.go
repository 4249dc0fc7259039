// Package watch runs the polling loop: capture the terminal buffer,
// detect an edit-preview block, reconstruct the suggested file content,
// and hand both sides to a presenter. All file access is read-only; the
// watcher never mutates the files it previews.
package watch

import (
	"context"
	"errors"
	"hash/fnv"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kvit-s/kvit-watch/internal/config"
	"github.com/kvit-s/kvit-watch/internal/display"
	"github.com/kvit-s/kvit-watch/internal/patch"
	"github.com/kvit-s/kvit-watch/internal/preview"
	"github.com/kvit-s/kvit-watch/internal/snapshot"
	"github.com/kvit-s/kvit-watch/internal/terminal"
	"github.com/kvit-s/kvit-watch/internal/tracker"
)

// Watcher polls a terminal source and presents detected previews.
type Watcher struct {
	cfg       *config.Config
	source    terminal.Source
	presenter display.Presenter
	shown     *tracker.Shown
	snaps     *snapshot.Store
	log       *zap.Logger

	// readFile is swapped out in tests.
	readFile func(path string) (string, error)

	lastFingerprint uint64
	hasFingerprint  bool
}

// New creates a watcher. logger may be zap.NewNop().
func New(cfg *config.Config, source terminal.Source, presenter display.Presenter, logger *zap.Logger) *Watcher {
	return &Watcher{
		cfg:       cfg,
		source:    source,
		presenter: presenter,
		shown:     tracker.NewShown(),
		snaps:     snapshot.NewStore(cfg.Snapshot.MaxEntries),
		log:       logger,
		readFile: func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		},
	}
}

// Shown exposes the preview-shown tracker so an embedding tool can
// suppress its own duplicate diff for a path this watcher just handled.
func (w *Watcher) Shown() *tracker.Shown {
	return w.shown
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval())
	defer ticker.Stop()

	w.log.Info("watcher started",
		zap.Duration("interval", w.cfg.PollInterval()),
		zap.String("workspace", w.cfg.Workspace.Root),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll performs one capture/parse/apply/present cycle. Returns true when
// a preview was presented. Every failure inside a cycle degrades to
// "skip this cycle": the loop must survive arbitrary terminal noise and
// collaborator hiccups.
func (w *Watcher) Poll(ctx context.Context) bool {
	text, err := w.source.Capture(ctx)
	if err != nil {
		w.log.Debug("capture failed, skipping cycle", zap.Error(err))
		return false
	}

	idx := strings.LastIndex(text, preview.Marker)
	if idx < 0 {
		return false
	}

	// Cheap change detection over the tail: the buffer accumulates history,
	// so everything before the last marker is irrelevant and re-parsing an
	// unchanged tail is wasted work.
	tail := text[idx:]
	fp := fingerprint(tail)
	if w.hasFingerprint && fp == w.lastFingerprint {
		return false
	}
	w.lastFingerprint = fp
	w.hasFingerprint = true

	block := preview.Parse(text)
	if block == nil {
		w.log.Debug("marker present but no parsable block yet")
		return false
	}

	relPath := preview.NormalizePath(block.FilePath)
	absPath := preview.ResolvePath(w.cfg.Workspace.Root, block.FilePath)
	w.log.Info("preview detected",
		zap.String("path", relPath),
		zap.Int("edits", len(block.Edits)),
		zap.Int("declared_adds", block.DeclaredAdds),
		zap.Int("declared_dels", block.DeclaredDels),
	)

	if err := w.cfg.CheckReadPermission(absPath); err != nil {
		w.log.Warn("refusing to read file, showing snippet diff",
			zap.String("path", absPath), zap.Error(err))
		w.showSnippet(relPath, block)
		return true
	}

	current, err := w.readFile(absPath)
	if err != nil {
		w.log.Warn("cannot read file, showing snippet diff",
			zap.String("path", absPath), zap.Error(err))
		w.showSnippet(relPath, block)
		return true
	}

	// Snapshot before anything else so the displayed original stays fixed
	// even if the assistant writes the file while the preview is open.
	w.snaps.Save(absPath, current)

	result, err := patch.Apply(current, block.Edits)
	if err != nil {
		if errors.Is(err, patch.ErrNotApplicable) {
			w.log.Warn("file drifted from preview, showing snippet diff",
				zap.String("path", relPath), zap.Error(err))
			w.showSnippet(relPath, block)
			return true
		}
		w.log.Error("apply failed", zap.String("path", relPath), zap.Error(err))
		return false
	}

	for _, m := range result.Mismatches {
		w.log.Warn("context line differs from preview",
			zap.String("path", relPath),
			zap.Int("line", m.LineNumber),
			zap.String("want", m.Want),
			zap.String("got", m.Got),
		)
	}

	snap, _ := w.snaps.Get(absPath)
	if err := w.presenter.ShowFile(relPath, snap, result.Text); err != nil {
		w.log.Error("present full-file diff", zap.String("path", relPath), zap.Error(err))
		return false
	}
	w.shown.MarkShown(relPath)
	return true
}

func (w *Watcher) showSnippet(relPath string, block *preview.Block) {
	if err := w.presenter.ShowSnippet(relPath, block.OriginalText, block.SuggestedText); err != nil {
		w.log.Error("present snippet diff", zap.String("path", relPath), zap.Error(err))
		return
	}
	w.shown.MarkShown(relPath)
}

// fingerprint hashes tail text with FNV-64a. Collisions only cost one
// redundant reparse, so a cryptographic hash buys nothing here.
func fingerprint(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
