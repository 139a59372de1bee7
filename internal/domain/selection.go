package domain

import (
	"maps"
	"slices"
)

// Selection is the set of seats picked in one booking dialog.
type Selection struct {
	seats map[SeatID]struct{}
}

func NewSelection() *Selection {
	return &Selection{seats: make(map[SeatID]struct{})}
}

// Toggle flips id in the selection. Booked seats are ignored so the selection stays
// disjoint from the inventory. It reports whether the selection changed.
func (s *Selection) Toggle(id SeatID, booked bool) (bool, error) {
	if !id.Valid() {
		return false, ErrInvalidSeat
	}

	if booked {
		return false, nil
	}

	if _, ok := s.seats[id]; ok {
		delete(s.seats, id)
	} else {
		s.seats[id] = struct{}{}
	}

	return true, nil
}

// Remove drops id from the selection. Absent seats are ignored.
func (s *Selection) Remove(id SeatID) {
	delete(s.seats, id)
}

func (s *Selection) Contains(id SeatID) bool {
	_, ok := s.seats[id]
	return ok
}

// Seats returns the selection in ascending order, independent of click order.
func (s *Selection) Seats() []SeatID {
	return slices.Sorted(maps.Keys(s.seats))
}

func (s *Selection) Len() int {
	return len(s.seats)
}

func (s *Selection) Reset() {
	clear(s.seats)
}
