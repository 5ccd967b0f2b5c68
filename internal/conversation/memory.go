package conversation

import "sync"

// MemoryStore is the default in-process Store. History is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string][]Entry)}
}

func (s *MemoryStore) Append(sender string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threads[sender] = append(s.threads[sender], entry)
	return nil
}

func (s *MemoryStore) History(sender string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.threads[sender]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *MemoryStore) All() (map[string][]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]Entry, len(s.threads))
	for sender, entries := range s.threads {
		copied := make([]Entry, len(entries))
		copy(copied, entries)
		out[sender] = copied
	}
	return out, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threads = make(map[string][]Entry)
	return nil
}
