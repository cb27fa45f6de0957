package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBooking(t *testing.T) {
	now := monday.Add(8 * time.Hour)

	tests := []struct {
		name      string
		requested time.Time
		want      RejectionReason
	}{
		{"accepted", monday.Add(9 * time.Hour), ""},
		{"past", monday.Add(7 * time.Hour), RejectPastDate},
		{"sunday", monday.AddDate(0, 0, 6).Add(10 * time.Hour), RejectNonWorkingDay},
		{"before opening", monday.AddDate(0, 0, 1).Add(8 * time.Hour), RejectOutsideWorkingHours},
		{"at closing", monday.Add(17 * time.Hour), RejectOutsideWorkingHours},
		{"during break", monday.Add(12*time.Hour + 30*time.Minute), RejectDuringBreak},
		{"break start", monday.Add(12 * time.Hour), RejectDuringBreak},
		{"off grid", monday.Add(9*time.Hour + 30*time.Minute), RejectMisalignedSlot},
		{"seconds", monday.Add(9*time.Hour + 15*time.Second), RejectMisalignedSlot},
		{"beyond horizon", monday.AddDate(0, 0, 30).Add(9 * time.Hour), RejectTooFarInFuture},
		{"last horizon day", monday.AddDate(0, 0, 29).Add(9 * time.Hour), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejection := hourlySchedule().CheckBooking(tt.requested, now, 30)
			if tt.want == "" {
				assert.Nil(t, rejection)
				return
			}
			require.NotNil(t, rejection)
			assert.Equal(t, tt.want, rejection.Reason)
		})
	}
}

func TestCheckBooking_OrderFirstFailureWins(t *testing.T) {
	// Sunday 12:30 in the past: past_date comes first
	sunday := monday.AddDate(0, 0, -1)
	rejection := hourlySchedule().CheckBooking(sunday.Add(12*time.Hour+30*time.Minute), monday, 30)
	require.NotNil(t, rejection)
	assert.Equal(t, RejectPastDate, rejection.Reason)

	// Sunday 12:30 in the future: non_working_day before during_break
	rejection = hourlySchedule().CheckBooking(sunday.AddDate(0, 0, 7).Add(12*time.Hour+30*time.Minute), monday, 30)
	require.NotNil(t, rejection)
	assert.Equal(t, RejectNonWorkingDay, rejection.Reason)
}

func TestCheckBooking_Details(t *testing.T) {
	sunday := monday.AddDate(0, 0, 6)
	rejection := hourlySchedule().CheckBooking(sunday.Add(10*time.Hour), monday, 30)
	require.NotNil(t, rejection)
	assert.Equal(t, Sunday, rejection.Details["requestedDay"])
	assert.Equal(t, []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}, rejection.Details["workingDays"])

	rejection = hourlySchedule().CheckBooking(monday.Add(12*time.Hour+30*time.Minute), monday, 30)
	require.NotNil(t, rejection)
	assert.Equal(t, "12:00-13:00", rejection.Details["breakTime"])
}

func TestCheckBooking_UnavailableException(t *testing.T) {
	s := hourlySchedule()
	s.Exceptions = []ScheduleException{{Date: monday, Kind: ExceptionUnavailable, Reason: "holiday"}}

	rejection := s.CheckBooking(monday.Add(9*time.Hour), monday, 30)
	require.NotNil(t, rejection)
	assert.Equal(t, RejectNonWorkingDay, rejection.Reason)
	assert.Equal(t, "holiday", rejection.Details["exceptionReason"])
}

func TestCheckBooking_OtherLocation(t *testing.T) {
	paris := time.FixedZone("CET", 3600)

	now := time.Date(2025, time.January, 6, 7, 0, 0, 0, paris)
	// 08:00 UTC is 09:00 CET
	requested := time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)

	assert.Nil(t, hourlySchedule().CheckBooking(requested, now, 30))
}

func TestParseAppointmentTime(t *testing.T) {
	got, err := ParseAppointmentTime("2025-01-06T09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(9*time.Hour), got)

	got, err = ParseAppointmentTime("2025-01-06T10:00:00+01:00", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(monday.Add(9*time.Hour)))

	_, err = ParseAppointmentTime("next monday", time.UTC)
	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, RejectInvalidDate, rejection.Reason)
}

func TestNewSlotTakenRejection(t *testing.T) {
	r := NewSlotTakenRejection(monday.Add(9 * time.Hour))
	assert.Equal(t, RejectSlotTaken, r.Reason)
	assert.Contains(t, r.Error(), "slot_taken")
}
