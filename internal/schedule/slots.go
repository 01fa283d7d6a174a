// Package schedule derives slot occupancy from the booking collection and
// answers availability questions for the booking flow and the admin grid.
//
// An extension is not an interval to intersect: it is expanded into the
// extra 30-minute slots it consumes, so availability stays a set-membership
// test. This holds because extensions are only sold in 30-minute steps.
package schedule

import (
	apperrors "photobox/pkg/errors"
	"photobox/pkg/model"
	"photobox/pkg/timeslot"
)

// ReservationSlots lists every slot a reservation occupies: the base slot
// plus timeExtra/30 consecutive slots after it, rolling over the hour
// boundary. Slots running past closing are kept, not clipped; a 21:30
// booking with 60 extra minutes really does hold 22:00 and 22:30.
func ReservationSlots(start timeslot.Slot, timeExtra int) []timeslot.Slot {
	slots := []timeslot.Slot{start}
	for i := 1; i <= timeExtra/timeslot.QuantumMinutes; i++ {
		slots = append(slots, start.Add(i*timeslot.QuantumMinutes))
	}
	return slots
}

// OccupiedSlots returns the set of slots reserved on a date by
// non-cancelled bookings. Pure function of its inputs: recomputing with the
// same collection yields the same set.
func OccupiedSlots(bookings []model.Booking, date string) map[timeslot.Slot]struct{} {
	return occupiedSlots(bookings, date, "")
}

// OccupiedSlotsExcluding is OccupiedSlots without the contribution of one
// booking, used when editing so a booking never conflicts with itself.
func OccupiedSlotsExcluding(bookings []model.Booking, date, excludeID string) map[timeslot.Slot]struct{} {
	return occupiedSlots(bookings, date, excludeID)
}

func occupiedSlots(bookings []model.Booking, date, excludeID string) map[timeslot.Slot]struct{} {
	occupied := make(map[timeslot.Slot]struct{})

	for i := range bookings {
		b := &bookings[i]
		if b.Date != date || !b.Occupies() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}

		start, err := timeslot.Parse(b.Time)
		if err != nil {
			// a record with an unparseable time cannot block anything
			continue
		}
		for _, slot := range ReservationSlots(start, b.TimeExtra) {
			occupied[slot] = struct{}{}
		}
	}

	return occupied
}

// IsAvailable reports whether a single slot is free.
func IsAvailable(occupied map[timeslot.Slot]struct{}, slot timeslot.Slot) bool {
	_, taken := occupied[slot]
	return !taken
}

// SlotStatus pairs a grid tick with its availability; the sequence the UI
// renders.
type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotGrid enumerates every tick from opening through closing hour in
// chronological order, each exactly once. Holiday dates yield an empty
// grid.
func SlotGrid(bookings []model.Booking, settings model.Settings, date string) ([]SlotStatus, error) {
	if settings.IsHoliday(date) {
		return []SlotStatus{}, nil
	}

	open, err := timeslot.Parse(settings.OpenTime)
	if err != nil {
		return nil, apperrors.Internal("invalid opening time in settings", err)
	}
	close, err := timeslot.Parse(settings.CloseTime)
	if err != nil {
		return nil, apperrors.Internal("invalid closing time in settings", err)
	}

	step := settings.SlotDuration
	if step <= 0 {
		step = model.DefaultSlotDuration
	}

	occupied := OccupiedSlots(bookings, date)

	var grid []SlotStatus
	for tick := open; !tick.After(close); tick = tick.Add(step) {
		grid = append(grid, SlotStatus{
			Time:      tick.String(),
			Available: IsAvailable(occupied, tick),
		})
	}
	return grid, nil
}

// CheckReservation verifies that every slot a proposed reservation would
// occupy is free, ignoring the booking identified by excludeID. Returns
// SlotTakenError naming the first conflicting slot.
func CheckReservation(bookings []model.Booking, date, start string, timeExtra int, excludeID string) error {
	startSlot, err := timeslot.Parse(start)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	occupied := occupiedSlots(bookings, date, excludeID)
	for _, slot := range ReservationSlots(startSlot, timeExtra) {
		if !IsAvailable(occupied, slot) {
			return apperrors.SlotTaken(date, slot.String())
		}
	}
	return nil
}
