package pattern

import "sync"

// MemStore is an in-memory Store for tests and throwaway sessions.
type MemStore struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{snap: emptySnapshot()}
}

// Load implements Store.
func (s *MemStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySnapshot(s.snap), nil
}

// Save implements Store.
func (s *MemStore) Save(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = copySnapshot(snap)
	return nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }

func copySnapshot(in *Snapshot) *Snapshot {
	out := emptySnapshot()
	for id, p := range in.Patterns {
		out.Patterns[id] = p
	}
	for id, sig := range in.Signatures {
		out.Signatures[id] = sig
	}
	return out
}
