package job

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned when a record cannot be found.
var ErrRecordNotFound = errors.New("generation record not found")

// Repository defines the interface for generation record persistence.
// It acts as a port: the in-memory implementation here is the default,
// and a relational store can be swapped in without touching callers.
type Repository interface {
	// Save persists a record. An existing record with the same ID is
	// replaced.
	Save(ctx context.Context, record *Record) error

	// FindByID retrieves a record by its local identifier.
	// Returns ErrRecordNotFound if it does not exist.
	FindByID(ctx context.Context, recordID string) (*Record, error)

	// FindByProviderJobID retrieves a record by its provider job
	// identifier. Webhook deliveries only carry the provider's ID.
	FindByProviderJobID(ctx context.Context, providerJobID string) (*Record, error)

	// List returns all records.
	List(ctx context.Context) ([]*Record, error)

	// Update atomically loads a record, applies fn, and persists the
	// result. Returns ErrRecordNotFound if the record does not exist.
	Update(ctx context.Context, recordID string, fn func(*Record)) (*Record, error)
}
