package domain

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot is a computed bookable start time. Slots are never stored.
type Slot struct {
	Start time.Time
}

// Time returns the clock time of the slot as "HH:MM"
func (s Slot) Time() types.TimeString {
	return types.NewTimeString(s.Start)
}

// Date returns the calendar date of the slot as "YYYY-MM-DD"
func (s Slot) Date() string {
	return s.Start.Format(DateFormat)
}

// bookedSet indexes booked start times at minute precision
type bookedSet map[int64]struct{}

func newBookedSet(booked []time.Time) bookedSet {
	set := make(bookedSet, len(booked))
	for _, b := range booked {
		set[b.Truncate(time.Minute).Unix()] = struct{}{}
	}
	return set
}

func (b bookedSet) has(t time.Time) bool {
	_, ok := b[t.Truncate(time.Minute).Unix()]
	return ok
}

// GenerateSlots yields the open slots of the schedule for horizonDays calendar days
// starting at the date of now, in now's location. Slots before now, inside the
// break, on closed dates or matching a booked time are skipped.
// The sequence is recomputed on every iteration.
func GenerateSlots(schedule *Schedule, booked []time.Time, now time.Time, horizonDays int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if schedule == nil || horizonDays <= 0 {
			return
		}
		taken := newBookedSet(booked)
		today := startOfDay(now)
		for day := 0; day < horizonDays; day++ {
			date := today.AddDate(0, 0, day)
			if !schedule.emitDay(date, taken, now, yield) {
				return
			}
		}
	}
}

// SlotsOn returns the open slots of a single calendar date
func (s *Schedule) SlotsOn(date time.Time, booked []time.Time, now time.Time) []Slot {
	var slots []Slot
	taken := newBookedSet(booked)
	s.emitDay(startOfDay(date), taken, now, func(slot Slot) bool {
		slots = append(slots, slot)
		return true
	})
	return slots
}

// emitDay yields the slots of one date, returning false when the consumer stopped
func (s *Schedule) emitDay(date time.Time, taken bookedSet, now time.Time, yield func(Slot) bool) bool {
	if !s.IsWorkingDay(date) || s.SlotDurationMinutes <= 0 {
		return true
	}
	workStart, workEnd, err := s.WorkingHours.Bounds()
	if err != nil {
		return true
	}

	y, m, d := date.Date()
	loc := date.Location()
	for offset := workStart; offset < workEnd; offset += s.SlotDurationMinutes {
		if s.BreakTime.Contains(offset) {
			continue
		}
		start := time.Date(y, m, d, offset/60, offset%60, 0, 0, loc)
		if start.Before(now) || taken.has(start) {
			continue
		}
		if !yield(Slot{Start: start}) {
			return false
		}
	}
	return true
}

// onGrid reports whether the minute offset is a slot boundary of the working window
func (s *Schedule) onGrid(minute int) bool {
	workStart, _, err := s.WorkingHours.Bounds()
	if err != nil || s.SlotDurationMinutes <= 0 {
		return false
	}
	return (minute-workStart)%s.SlotDurationMinutes == 0
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
