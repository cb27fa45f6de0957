package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ExceptionKind marks a date as closed or open regardless of the weekly pattern
type ExceptionKind string

const (
	ExceptionUnavailable ExceptionKind = "unavailable"
	ExceptionAvailable   ExceptionKind = "available"
)

// IsValid reports whether the kind is one of the known exception kinds
func (k ExceptionKind) IsValid() bool {
	return k == ExceptionUnavailable || k == ExceptionAvailable
}

// TimeWindow is a half-open clock interval [Start, End)
// A zero window (both ends empty) means "no window"
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// IsEmpty returns true when the window is not set
func (w TimeWindow) IsEmpty() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Bounds returns the window as minute offsets from midnight
func (w TimeWindow) Bounds() (start, end int, err error) {
	start, err = types.ParseMinutes(string(w.Start))
	if err != nil {
		return 0, 0, err
	}
	end, err = types.ParseMinutes(string(w.End))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Contains reports whether the minute offset falls in [Start, End)
func (w TimeWindow) Contains(minute int) bool {
	if w.IsEmpty() {
		return false
	}
	start, end, err := w.Bounds()
	if err != nil {
		return false
	}
	return minute >= start && minute < end
}

// String formats the window as "HH:MM-HH:MM"
func (w TimeWindow) String() string {
	if w.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}

// ScheduleException overrides a single calendar date
type ScheduleException struct {
	ID     int64
	Date   time.Time // date only, time part is ignored
	Kind   ExceptionKind
	Reason string
}

// Schedule is the recurring weekly availability of a professional
type Schedule struct {
	ProfessionalID      int64
	WorkingDays         []Weekday
	WorkingHours        TimeWindow
	BreakTime           TimeWindow
	SlotDurationMinutes int
	Exceptions          []ScheduleException
	UpdatedAt           time.Time
}

// ScheduleDefaults describes the schedule assigned to a newly registered professional
type ScheduleDefaults struct {
	WorkingDays         []Weekday
	WorkStart           types.TimeString
	WorkEnd             types.TimeString
	BreakStart          types.TimeString
	BreakEnd            types.TimeString
	SlotDurationMinutes int
}

// BuiltinScheduleDefaults returns Monday-Friday 09:00-17:00 with a lunch break and 15 minute slots
func BuiltinScheduleDefaults() ScheduleDefaults {
	days := make([]Weekday, len(DefaultWorkingDays))
	copy(days, DefaultWorkingDays)
	return ScheduleDefaults{
		WorkingDays:         days,
		WorkStart:           DefaultWorkStart,
		WorkEnd:             DefaultWorkEnd,
		BreakStart:          DefaultBreakStart,
		BreakEnd:            DefaultBreakEnd,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}

// NewSchedule builds a schedule for a professional from defaults
func NewSchedule(professionalID int64, defaults ScheduleDefaults) *Schedule {
	days := make([]Weekday, len(defaults.WorkingDays))
	copy(days, defaults.WorkingDays)
	return &Schedule{
		ProfessionalID:      professionalID,
		WorkingDays:         days,
		WorkingHours:        TimeWindow{Start: defaults.WorkStart, End: defaults.WorkEnd},
		BreakTime:           TimeWindow{Start: defaults.BreakStart, End: defaults.BreakEnd},
		SlotDurationMinutes: defaults.SlotDurationMinutes,
	}
}

// Validate checks the structural invariants of the schedule
func (s *Schedule) Validate() error {
	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidSchedule)
	}
	seen := make(map[Weekday]struct{}, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		if !d.IsValid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, d)
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("%w: duplicate weekday %q", ErrInvalidSchedule, d)
		}
		seen[d] = struct{}{}
	}

	workStart, workEnd, err := s.WorkingHours.Bounds()
	if err != nil {
		return fmt.Errorf("%w: working hours: %v", ErrInvalidSchedule, err)
	}
	if workStart >= workEnd {
		return fmt.Errorf("%w: working hours start %s must be before end %s",
			ErrInvalidSchedule, s.WorkingHours.Start, s.WorkingHours.End)
	}

	if !s.BreakTime.IsEmpty() {
		breakStart, breakEnd, err := s.BreakTime.Bounds()
		if err != nil {
			return fmt.Errorf("%w: break time: %v", ErrInvalidSchedule, err)
		}
		if breakStart >= breakEnd {
			return fmt.Errorf("%w: break start %s must be before end %s",
				ErrInvalidSchedule, s.BreakTime.Start, s.BreakTime.End)
		}
		if breakStart < workStart || breakEnd > workEnd {
			return fmt.Errorf("%w: break %s must be inside working hours %s",
				ErrInvalidSchedule, s.BreakTime, s.WorkingHours)
		}
	}

	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidSchedule, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}

	dates := make(map[string]struct{}, len(s.Exceptions))
	for _, e := range s.Exceptions {
		if err := e.Validate(); err != nil {
			return err
		}
		key := e.Date.Format(DateFormat)
		if _, dup := dates[key]; dup {
			return fmt.Errorf("%w: more than one exception on %s", ErrInvalidSchedule, key)
		}
		dates[key] = struct{}{}
	}

	return nil
}

// Validate checks a single exception
func (e ScheduleException) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: exception date is required", ErrInvalidSchedule)
	}
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: unknown exception kind %q", ErrInvalidSchedule, e.Kind)
	}
	if len(e.Reason) > MaxExceptionReasonLen {
		return fmt.Errorf("%w: exception reason exceeds %d characters", ErrInvalidSchedule, MaxExceptionReasonLen)
	}
	return nil
}

// ExceptionOn returns the exception for the calendar date of t, if any
func (s *Schedule) ExceptionOn(t time.Time) (*ScheduleException, bool) {
	y, m, d := t.Date()
	for i := range s.Exceptions {
		ey, em, ed := s.Exceptions[i].Date.Date()
		if ey == y && em == m && ed == d {
			return &s.Exceptions[i], true
		}
	}
	return nil, false
}

// WorksOn reports whether the weekday is part of the weekly pattern
func (s *Schedule) WorksOn(day Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether appointments can be taken on the calendar date of t.
// An unavailable exception closes the date; an available exception opens it
// even when its weekday is not a working day.
func (s *Schedule) IsWorkingDay(t time.Time) bool {
	if exc, ok := s.ExceptionOn(t); ok {
		return exc.Kind == ExceptionAvailable
	}
	return s.WorksOn(WeekdayName(t))
}
