package discovery

// LoadState is the pagination controller's state machine:
// idle → loadingInitial → ready ⇄ loadingMore → complete, with error
// reachable from any loading state and recoverable via Retry or a signature
// reset.
type LoadState string

const (
	StateIdle           LoadState = "idle"
	StateLoadingInitial LoadState = "loadingInitial"
	StateReady          LoadState = "ready"
	StateLoadingMore    LoadState = "loadingMore"
	StateComplete       LoadState = "complete"
	StateError          LoadState = "error"
)

// Cursor is the opaque pagination position. HasMore flips to false the first
// time a page comes back shorter than the page size. The cursor resets to
// its initial value whenever the signature changes and advances only on a
// successful page.
type Cursor struct {
	Token    string
	PageSize int
	HasMore  bool
}

func newCursor(pageSize int) Cursor {
	return Cursor{PageSize: pageSize, HasMore: true}
}
