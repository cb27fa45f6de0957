package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RejectionReason is a machine-readable booking rejection code
type RejectionReason string

const (
	RejectInvalidDate         RejectionReason = "invalid_date"
	RejectPastDate            RejectionReason = "past_date"
	RejectNonWorkingDay       RejectionReason = "non_working_day"
	RejectOutsideWorkingHours RejectionReason = "outside_working_hours"
	RejectDuringBreak         RejectionReason = "during_break"
	RejectMisalignedSlot      RejectionReason = "misaligned_slot"
	RejectTooFarInFuture      RejectionReason = "too_far_in_future"
	RejectSlotTaken           RejectionReason = "slot_taken"
)

// Rejection explains why a requested appointment time cannot be booked.
// Details is returned to the client as is.
type Rejection struct {
	Reason  RejectionReason
	Message string
	Details map[string]any
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("booking rejected: %s: %s", r.Reason, r.Message)
}

// NewSlotTakenRejection builds the rejection for an already booked start time
func NewSlotTakenRejection(requested time.Time) *Rejection {
	return &Rejection{
		Reason:  RejectSlotTaken,
		Message: "the requested time is already booked",
		Details: map[string]any{
			"requestedDateTime": requested.Format(DateTimeFormat),
		},
	}
}

// ParseAppointmentTime accepts RFC3339 or "YYYY-MM-DDTHH:MM" (interpreted in loc)
func ParseAppointmentTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(DateTimeFormat, raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &Rejection{
		Reason:  RejectInvalidDate,
		Message: "date must be RFC3339 or YYYY-MM-DDTHH:MM",
		Details: map[string]any{"value": raw},
	}
}

// CheckBooking validates a requested start time against the schedule.
// Checks run in a fixed order and the first failure wins. Existing appointments
// are not consulted here; the caller checks the appointment store afterwards.
func (s *Schedule) CheckBooking(requested, now time.Time, horizonDays int) *Rejection {
	requested = requested.In(now.Location())

	if requested.Before(now) {
		return &Rejection{
			Reason:  RejectPastDate,
			Message: "the requested time is in the past",
			Details: map[string]any{
				"requestedDateTime": requested.Format(DateTimeFormat),
				"now":               now.Format(DateTimeFormat),
			},
		}
	}

	if !s.IsWorkingDay(requested) {
		details := map[string]any{
			"requestedDay": WeekdayName(requested),
			"workingDays":  s.WorkingDays,
		}
		if exc, ok := s.ExceptionOn(requested); ok && exc.Reason != "" {
			details["exceptionReason"] = exc.Reason
		}
		return &Rejection{
			Reason:  RejectNonWorkingDay,
			Message: "the professional does not work on this day",
			Details: details,
		}
	}

	minute := requested.Hour()*60 + requested.Minute()
	requestedTime := types.NewTimeString(requested)

	workStart, workEnd, err := s.WorkingHours.Bounds()
	if err != nil || minute < workStart || minute >= workEnd {
		return &Rejection{
			Reason:  RejectOutsideWorkingHours,
			Message: "the requested time is outside working hours",
			Details: map[string]any{
				"requestedTime": requestedTime,
				"workingHours":  s.WorkingHours.String(),
			},
		}
	}

	if s.BreakTime.Contains(minute) {
		return &Rejection{
			Reason:  RejectDuringBreak,
			Message: "the requested time falls within the break",
			Details: map[string]any{
				"requestedTime": requestedTime,
				"breakTime":     s.BreakTime.String(),
			},
		}
	}

	if requested.Second() != 0 || requested.Nanosecond() != 0 || !s.onGrid(minute) {
		return &Rejection{
			Reason:  RejectMisalignedSlot,
			Message: "the requested time is not a slot boundary",
			Details: map[string]any{
				"requestedTime":       requestedTime,
				"slotDurationMinutes": s.SlotDurationMinutes,
				"workingHours":        s.WorkingHours.String(),
			},
		}
	}

	if horizonDays > 0 {
		limit := startOfDay(now).AddDate(0, 0, horizonDays)
		if !requested.Before(limit) {
			return &Rejection{
				Reason:  RejectTooFarInFuture,
				Message: "the requested date is beyond the booking horizon",
				Details: map[string]any{
					"requestedDate": requested.Format(DateFormat),
					"horizonDays":   horizonDays,
					"lastDate":      limit.AddDate(0, 0, -1).Format(DateFormat),
				},
			}
		}
	}

	return nil
}
