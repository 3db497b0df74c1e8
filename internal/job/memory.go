package job

import (
	"context"
	"sync"
)

// Compile-time check that MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository is an in-memory implementation of Repository.
// It uses a map with RWMutex for thread-safe access.
// Suitable for development and testing; swap for persistent storage in production.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryRepository creates a new in-memory record repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*Record),
	}
}

// Save persists a record to the in-memory storage.
// Stores a clone to avoid external mutations.
func (r *MemoryRepository) Save(_ context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record.Clone()
	return nil
}

// FindByID retrieves a record by its local identifier.
// Returns a clone to prevent external mutations.
func (r *MemoryRepository) FindByID(_ context.Context, recordID string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[recordID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return record.Clone(), nil
}

// FindByProviderJobID retrieves a record by its provider job identifier.
func (r *MemoryRepository) FindByProviderJobID(_ context.Context, providerJobID string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.ProviderJobID == providerJobID {
			return record.Clone(), nil
		}
	}
	return nil, ErrRecordNotFound
}

// List returns all records in the repository.
// Returns clones to prevent external mutations.
func (r *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Record, 0, len(r.records))
	for _, record := range r.records {
		result = append(result, record.Clone())
	}
	return result, nil
}

// Update atomically loads a record, applies fn, and persists the result.
// The lock is held across fn so a polling settlement and a webhook
// settlement cannot interleave their read-modify-write cycles.
func (r *MemoryRepository) Update(_ context.Context, recordID string, fn func(*Record)) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[recordID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	fn(record)
	return record.Clone(), nil
}
