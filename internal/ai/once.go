package ai

import "sync"

// OnceGuard remembers which entities an automatic action already ran for.
// The zero value is ready to use.
type OnceGuard struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// Claim reports whether the caller should run the action for key. It returns
// true at most once per key until Reset.
func (g *OnceGuard) Claim(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.claimed[key]; ok {
		return false
	}
	if g.claimed == nil {
		g.claimed = make(map[string]struct{})
	}
	g.claimed[key] = struct{}{}
	return true
}

// Reset forgets every claimed key, e.g. when the board switches project.
func (g *OnceGuard) Reset() {
	g.mu.Lock()
	g.claimed = nil
	g.mu.Unlock()
}
