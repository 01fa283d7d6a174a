// Package timeslot provides the HH:MM slot value used across the booking
// grid. Slots sit on a fixed 30-minute grid; arithmetic rolls over the hour
// boundary but never wraps past midnight.
package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// QuantumMinutes is the grid quantum. Time extensions are sold in
	// multiples of it, so slot occupancy stays a set-membership problem.
	QuantumMinutes = 30
)

var slotRegex = regexp.MustCompile(`^([0-9]|[01][0-9]|2[0-3]):([0-5][0-9])$`)

type Slot struct {
	Hour   int
	Minute int
}

// Parse accepts HH:MM (a missing leading zero is tolerated, matching the
// settings form).
func Parse(s string) (Slot, error) {
	m := slotRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Slot{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Slot{Hour: hour, Minute: minute}, nil
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Add returns the slot shifted forward by the given minutes, carrying
// minutes into hours. Hours past 23 are allowed: a late booking's extension
// may run past closing and still reserve the overflowed slots.
func (s Slot) Add(minutes int) Slot {
	total := s.Hour*60 + s.Minute + minutes
	return Slot{Hour: total / 60, Minute: total % 60}
}

func (s Slot) Before(o Slot) bool {
	return s.Hour*60+s.Minute < o.Hour*60+o.Minute
}

func (s Slot) After(o Slot) bool {
	return o.Before(s)
}
