// Package viewstate guards paginated views against out-of-order responses.
// A slow page-1 response arriving after a fast page-2 response must not
// overwrite the view with stale data: every request takes a monotonically
// increasing sequence token, and a response is applied only when its token is
// newer than the last one applied.
package viewstate

import "sync"

// Guard issues sequence tokens and arbitrates which responses may be
// applied. The zero value is not usable; call NewGuard.
type Guard struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func NewGuard() *Guard {
	return &Guard{}
}

// NextSeq reserves the token for a request about to be issued.
func (g *Guard) NextSeq() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Apply reports whether the response for seq may be applied to the view and,
// when it may, records it as the latest applied. Responses at or below the
// latest applied token are stale and must be discarded.
func (g *Guard) Apply(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seq <= g.applied {
		return false
	}
	g.applied = seq
	return true
}

// Reset invalidates everything outstanding, e.g. when the owning view
// reloads its query. Responses for tokens issued before the reset fail
// Apply; tokens stay monotonic so fresh requests are unaffected.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.applied = g.issued
}
