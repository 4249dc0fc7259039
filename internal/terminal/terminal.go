// Package terminal acquires the plain-text contents of a running
// interactive session. The watcher only needs "the accumulated text, on
// demand"; how that text is obtained is an implementation detail behind
// the Source interface.
package terminal

import "context"

// Source yields the current full text (scrollback plus visible screen) of
// a terminal session. Implementations should return an error when the
// session is unavailable; the caller treats that as a skip-this-cycle
// condition, never as fatal.
type Source interface {
	Capture(ctx context.Context) (string, error)
}
