// Package inventory tracks which seats are booked for every screening.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

// DefaultKey is the name of the persisted record holding all booked seats.
const DefaultKey = "cinema_bookings"

// maxCommitAttempts bounds how often a commit re-reads the record after losing a
// compare-and-swap race to another writer.
const maxCommitAttempts = 3

// Inventory is the single source of truth for seat occupancy. The whole booked-seats map
// lives in one store record that is rewritten on every commit.
type Inventory struct {
	store  domain.BookingStore
	key    string
	logger *slog.Logger

	commitMu sync.Mutex

	mu      sync.RWMutex
	seats   domain.BookedSeats
	version int64
}

// Load reads the booked-seats record once. A missing or unreadable record starts the
// inventory empty; only a failing store is an error.
func Load(ctx context.Context, store domain.BookingStore, key string, logger *slog.Logger) (*Inventory, error) {
	inv := &Inventory{
		store:  store,
		key:    key,
		logger: logger,
		seats:  domain.BookedSeats{},
	}

	if err := inv.Refresh(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}

// Refresh replaces the in-memory state with the stored record.
func (i *Inventory) Refresh(ctx context.Context) error {
	rec, err := i.store.Read(ctx, i.key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			i.swap(domain.BookedSeats{}, 0)
			return nil
		}

		return fmt.Errorf("read booked seats: %w", err)
	}

	var seats domain.BookedSeats
	if err := json.Unmarshal(rec.Value, &seats); err != nil || seats == nil {
		i.logger.Warn("booked seats record is unreadable, starting empty", "key", i.key, "error", err)
		seats = domain.BookedSeats{}
	}

	i.swap(seats, rec.Version)

	return nil
}

func (i *Inventory) IsBooked(sessionKey string, id domain.SeatID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.seats.Contains(sessionKey, id)
}

// Booked returns the booked seats of a screening in ascending order.
func (i *Inventory) Booked(sessionKey string) []domain.SeatID {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return slices.Clone(i.seats[sessionKey])
}

// Commit merges seats into the booked set of sessionKey and persists the whole map.
// In-memory state changes only after the store accepted the write. Seats that are already
// booked, in memory or by a concurrent writer, fail the commit with ErrSeatAlreadyBooked.
func (i *Inventory) Commit(ctx context.Context, sessionKey string, seats []domain.SeatID) error {
	for _, id := range seats {
		if !id.Valid() {
			return domain.ErrInvalidSeat
		}
	}

	i.commitMu.Lock()
	defer i.commitMu.Unlock()

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		current, version := i.snapshot()

		if taken := takenSeats(current, sessionKey, seats); len(taken) > 0 {
			return fmt.Errorf("%w: %v", domain.ErrSeatAlreadyBooked, taken)
		}

		merged := current.Merge(sessionKey, seats)

		data, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode booked seats: %w", err)
		}

		newVersion, err := i.store.Write(ctx, i.key, data, version)
		if err == nil {
			i.swap(merged, newVersion)
			return nil
		}

		if !errors.Is(err, domain.ErrEditConflict) {
			return fmt.Errorf("write booked seats: %w", err)
		}

		i.logger.Warn("booked seats record changed concurrently, reloading",
			"key", i.key, "session_key", sessionKey, "attempt", attempt)

		if err := i.Refresh(ctx); err != nil {
			return err
		}
	}

	return domain.ErrEditConflict
}

func (i *Inventory) snapshot() (domain.BookedSeats, int64) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.seats, i.version
}

func (i *Inventory) swap(seats domain.BookedSeats, version int64) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.seats = seats
	i.version = version
}

func takenSeats(current domain.BookedSeats, sessionKey string, seats []domain.SeatID) []domain.SeatID {
	var taken []domain.SeatID

	for _, id := range seats {
		if current.Contains(sessionKey, id) {
			taken = append(taken, id)
		}
	}

	return taken
}
