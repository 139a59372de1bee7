package domain

import "context"

// Record is a versioned blob in the booking store.
type Record struct {
	Value   []byte
	Version int64
}

// BookingStore is durable key-value blob storage. Write is a compare-and-swap: it succeeds
// only when the stored version equals version (0 meaning the key must not exist yet) and
// returns the new version. A mismatch yields ErrEditConflict.
type BookingStore interface {
	Read(ctx context.Context, key string) (*Record, error)
	Write(ctx context.Context, key string, value []byte, version int64) (int64, error)
}
