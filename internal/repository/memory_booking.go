package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

// MemoryBookingStore keeps records in process memory. It backs local development and tests.
type MemoryBookingStore struct {
	mu      sync.Mutex
	records map[string]domain.Record
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		records: make(map[string]domain.Record),
	}
}

func (m *MemoryBookingStore) Read(ctx context.Context, key string) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &domain.Record{Value: slices.Clone(rec.Value), Version: rec.Version}, nil
}

func (m *MemoryBookingStore) Write(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.records[key].Version != version {
		return 0, domain.ErrEditConflict
	}

	m.records[key] = domain.Record{Value: slices.Clone(value), Version: version + 1}

	return version + 1, nil
}
