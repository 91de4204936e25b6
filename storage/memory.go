package storage

import (
	"context"
	"sync"

	"github.com/sky-flux/deck"
)

// MemoryStore keeps the collection in process memory. It is safe for
// concurrent use and copies records in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	records []deck.Record
}

// NewMemoryStore returns a store holding a copy of initial.
func NewMemoryStore(initial []deck.Record) *MemoryStore {
	return &MemoryStore{records: cloneRecords(initial)}
}

func (m *MemoryStore) Load(ctx context.Context) ([]deck.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.records), nil
}

func (m *MemoryStore) Save(ctx context.Context, records []deck.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := deck.Validate(records); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = cloneRecords(records)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
