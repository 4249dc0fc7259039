// Package snapshot keeps in-memory copies of file content captured at the
// moment a preview fired. The diff presenter compares against these
// snapshots rather than re-reading the file, so the "original" side of a
// preview stays stable even if the real file changes afterwards. Previews
// are ephemeral, so nothing is persisted; a bounded map with insertion
// rotation keeps memory flat during long watch sessions.
package snapshot

import "sync"

// DefaultMaxEntries bounds the store when no explicit limit is given.
const DefaultMaxEntries = 64

// Store holds one snapshot per path. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	maxEntries int
	content    map[string]string
	order      []string
}

// NewStore creates a store that retains at most maxEntries snapshots,
// evicting the oldest when full. maxEntries <= 0 selects DefaultMaxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		maxEntries: maxEntries,
		content:    make(map[string]string),
	}
}

// Save records content as the snapshot for path, replacing any previous
// snapshot for the same path.
func (s *Store) Save(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.content[path]; !exists {
		if len(s.order) >= s.maxEntries {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.content, oldest)
		}
		s.order = append(s.order, path)
	}
	s.content[path] = content
}

// Get returns the snapshot for path, if one is held.
func (s *Store) Get(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.content[path]
	return content, ok
}

// Len returns the number of held snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content)
}
