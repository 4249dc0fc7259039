// Package tracker remembers which file paths have already had a preview
// shown, so the orchestration layer can suppress a duplicate generic diff
// after the specialized preview fired for the same path.
package tracker

import "sync"

// Shown is a consume-once set of paths. Safe for concurrent use.
type Shown struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewShown creates an empty tracker.
func NewShown() *Shown {
	return &Shown{paths: make(map[string]struct{})}
}

// MarkShown records that a preview was shown for path.
func (s *Shown) MarkShown(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[path] = struct{}{}
}

// ConsumeShown reports whether a preview was shown for path and clears the
// entry. A second call for the same path returns false.
func (s *Shown) ConsumeShown(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.paths[path]
	if ok {
		delete(s.paths, path)
	}
	return ok
}

// Len returns the number of pending entries.
func (s *Shown) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}
