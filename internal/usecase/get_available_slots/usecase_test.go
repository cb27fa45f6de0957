package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type fakeAppointments struct {
	items  []*domain.Appointment
	filter domain.AppointmentFilter
	err    error
}

func (f *fakeAppointments) FindByProfessional(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Appointment
	for _, a := range f.items {
		if a.Date.Before(*filter.From) || !a.Date.Before(*filter.To) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeProfessionals struct {
	schedule *domain.Schedule
}

func (f fakeProfessionals) LoadProfessional(_ context.Context, id int64) (*domain.User, *domain.Schedule, error) {
	if id != 2 {
		return nil, nil, scheduleService.ErrProfessionalNotFound
	}
	return &domain.User{ID: id}, f.schedule, nil
}

func hourlySchedule() *domain.Schedule {
	return &domain.Schedule{
		ProfessionalID:      2,
		WorkingDays:         []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday},
		WorkingHours:        domain.TimeWindow{Start: "09:00", End: "17:00"},
		BreakTime:           domain.TimeWindow{Start: "12:00", End: "13:00"},
		SlotDurationMinutes: 60,
	}
}

func newUseCase(repo *fakeAppointments, horizon int) *UseCase {
	uc := NewUseCase(repo, fakeProfessionals{schedule: hourlySchedule()}, time.UTC, horizon, logger.NewNop())
	// Monday 2025-01-06 08:00 UTC
	uc.timeProvider = fixedTime(time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC))
	return uc
}

func times(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestUseCase_Execute_SingleDate(t *testing.T) {
	repo := &fakeAppointments{items: []*domain.Appointment{
		{ID: 1, ProfessionalID: 2, Date: time.Date(2025, time.January, 7, 10, 0, 0, 0, time.UTC), Status: domain.StatusConfirmed},
		{ID: 2, ProfessionalID: 2, Date: time.Date(2025, time.January, 8, 10, 0, 0, 0, time.UTC), Status: domain.StatusPending},
	}}
	uc := newUseCase(repo, 30)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 2, Date: ptr.Ptr("2025-01-07")})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00", "14:00", "15:00", "16:00"}, times(resp.AvailableSlots))
	assert.Equal(t, []types.TimeString{"10:00"}, times(resp.BookedSlots))
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.True(t, resp.AvailableSlots[0].DateTime.Equal(time.Date(2025, time.January, 7, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, domain.InactiveStatuses, repo.filter.ExcludeStatuses)
	assert.True(t, repo.filter.From.Equal(time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)))
	assert.True(t, repo.filter.To.Equal(time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)))
}

func TestUseCase_Execute_DatesWithoutSlots(t *testing.T) {
	uc := newUseCase(&fakeAppointments{}, 30)

	for _, date := range []string{"2025-01-11", "2025-01-03", "2025-03-03"} {
		resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 2, Date: ptr.Ptr(date)})
		require.NoError(t, err, date)
		assert.NotNil(t, resp.AvailableSlots, date)
		assert.Empty(t, resp.AvailableSlots, date)
	}
}

func TestUseCase_Execute_Horizon(t *testing.T) {
	repo := &fakeAppointments{items: []*domain.Appointment{
		{ID: 1, ProfessionalID: 2, Date: time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), Status: domain.StatusPending},
	}}
	uc := newUseCase(repo, 7)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 2})
	require.NoError(t, err)

	// 5 working days x 7 slots minus one booked
	assert.Len(t, resp.AvailableSlots, 34)
	assert.Nil(t, resp.Date)
	assert.True(t, repo.filter.To.Equal(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)))

	for i := 1; i < len(resp.AvailableSlots); i++ {
		assert.True(t, resp.AvailableSlots[i-1].DateTime.Before(resp.AvailableSlots[i].DateTime))
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(&fakeAppointments{}, 30)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 2, Date: ptr.Ptr("07/01/2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 9})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	uc = newUseCase(&fakeAppointments{err: errors.New("db down")}, 30)
	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 2})
	assert.ErrorIs(t, err, ErrInternal)
}
