package directoryRepo

import "sync"

// MemoryDirectoryRepo is a fixed in-memory directory for tests and
// standalone deployments.
type MemoryDirectoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryDirectoryRepo constructs a directory seeded with the given entries.
func NewMemoryDirectoryRepo(entries ...Entry) *MemoryDirectoryRepo {
	repo := &MemoryDirectoryRepo{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (repo *MemoryDirectoryRepo) Lookup(id string) (*Entry, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	e, ok := repo.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := e
	return &copied, nil
}
