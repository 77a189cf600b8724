package crawler

import "sync"

// visitedSet records URLs whose processing has concluded.
type visitedSet struct {
	mu   sync.RWMutex
	urls map[string]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{urls: make(map[string]struct{})}
}

func (v *visitedSet) Has(url string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.urls[url]
	return ok
}

// Add inserts url and reports whether it was absent.
func (v *visitedSet) Add(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.urls[url]; ok {
		return false
	}
	v.urls[url] = struct{}{}
	return true
}

func (v *visitedSet) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.urls)
}
