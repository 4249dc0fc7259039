// Package display renders edit previews for the user. The watcher hands
// it two text blobs and never a file handle: the original side of a
// full-file diff is an immutable snapshot taken when the preview fired,
// so what the user sees cannot shift under them.
package display

// Presenter consumes reconstructed preview content.
type Presenter interface {
	// ShowSnippet displays the partial before/after pair reconstructed
	// straight from the preview block. Used when the full file could not
	// be read or the edits no longer apply to it.
	ShowSnippet(title, originalText, suggestedText string) error

	// ShowFile displays a full-file diff between the snapshot taken at
	// preview time and the reconstructed suggested content.
	ShowFile(path, originalSnapshot, suggestedFullText string) error
}
