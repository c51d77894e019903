package memstore

import (
	"sort"
	"sync"

	"makedoc2rst/internal/domain"
)

// MemoryStore is a process-local manifest, used when the on-disk cache is
// disabled.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.ManifestEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.ManifestEntry),
	}
}

func (s *MemoryStore) PutEntry(entry domain.ManifestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.SourcePath] = entry
	return nil
}

func (s *MemoryStore) GetEntry(sourcePath string) (domain.ManifestEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[sourcePath]
	return entry, ok, nil
}

func (s *MemoryStore) DeleteEntry(sourcePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sourcePath)
	return nil
}

func (s *MemoryStore) ListEntries() ([]domain.ManifestEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.ManifestEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SourcePath < entries[j].SourcePath
	})
	return entries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
