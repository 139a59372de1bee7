package domain

import (
	"encoding/json"
	"slices"
)

const (
	SeatsPerRow = 8
	SeatRows    = 5
	SeatCount   = SeatsPerRow * SeatRows
)

type SeatID int

func (id SeatID) Valid() bool {
	return id >= 1 && id <= SeatCount
}

func (id SeatID) Row() int {
	return (int(id)-1)/SeatsPerRow + 1
}

func (id SeatID) Column() int {
	return (int(id)-1)%SeatsPerRow + 1
}

type Seat struct {
	ID     SeatID
	Row    int
	Col    int
	Booked bool
}

// SeatMap lays out the fixed hall, marking every seat for which booked returns true.
func SeatMap(booked func(SeatID) bool) []Seat {
	seats := make([]Seat, SeatCount)

	for i := range seats {
		id := SeatID(i + 1)
		seats[i] = Seat{
			ID:     id,
			Row:    id.Row(),
			Col:    id.Column(),
			Booked: booked(id),
		}
	}

	return seats
}

// BookedSeats maps a session key to the ascending, duplicate-free list of occupied seats.
// It is the value of the single persisted inventory record.
type BookedSeats map[string][]SeatID

func (b BookedSeats) Contains(sessionKey string, id SeatID) bool {
	return slices.Contains(b[sessionKey], id)
}

// Merge returns a copy of b with seats added to sessionKey. b itself is left untouched.
func (b BookedSeats) Merge(sessionKey string, seats []SeatID) BookedSeats {
	merged := b.Clone()
	merged[sessionKey] = normalizeSeats(append(slices.Clone(b[sessionKey]), seats...))

	return merged
}

func (b BookedSeats) Clone() BookedSeats {
	clone := make(BookedSeats, len(b))
	for k, v := range b {
		clone[k] = slices.Clone(v)
	}

	return clone
}

// UnmarshalJSON accepts seat lists in any order and with duplicates.
func (b *BookedSeats) UnmarshalJSON(data []byte) error {
	var raw map[string][]SeatID
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	seats := make(BookedSeats, len(raw))
	for k, v := range raw {
		seats[k] = normalizeSeats(v)
	}

	*b = seats
	return nil
}

func normalizeSeats(seats []SeatID) []SeatID {
	slices.Sort(seats)
	return slices.Compact(seats)
}
