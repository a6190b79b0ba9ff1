package flow

import "sync"

// PendingStore is the single-slot handoff between the submission side and the
// analysis flow. The slot is written once on submission and consumed exactly
// once by the controller; the dependency is passed explicitly at composition
// time instead of living in ambient storage.
type PendingStore struct {
	mu  sync.Mutex
	url string
	set bool
}

// NewPendingStore creates an empty store
func NewPendingStore() *PendingStore {
	return &PendingStore{}
}

// Put stages a validated product URL for the next flow activation
func (s *PendingStore) Put(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.set = true
}

// Take consumes the pending URL. The second Take after a Put reports no
// pending URL.
func (s *PendingStore) Take() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", false
	}
	s.set = false
	url := s.url
	s.url = ""
	return url, true
}
