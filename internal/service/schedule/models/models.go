package models

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// TimeWindow интервал времени "HH:MM"
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToDomain конвертирует и проверяет формат времени
func (w TimeWindow) ToDomain() (domain.TimeWindow, error) {
	start, err := types.NewTimeStringFromString(w.Start)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("start %q: %w", w.Start, err)
	}
	end, err := types.NewTimeStringFromString(w.End)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("end %q: %w", w.End, err)
	}
	return domain.TimeWindow{Start: start, End: end}, nil
}

// UpdateScheduleRequest запрос на замену недельного расписания
type UpdateScheduleRequest struct {
	ActorID             int64       `json:"-"`
	ProfessionalID      int64       `json:"-"`
	WorkingDays         []string    `json:"workingDays"`
	WorkingHours        TimeWindow  `json:"workingHours"`
	BreakTime           *TimeWindow `json:"breakTime,omitempty"`
	SlotDurationMinutes int         `json:"slotDuration"`
}

// AddExceptionRequest запрос на добавление исключения
type AddExceptionRequest struct {
	ActorID        int64  `json:"-"`
	ProfessionalID int64  `json:"-"`
	Date           string `json:"date"` // YYYY-MM-DD
	Kind           string `json:"type"` // unavailable | available
	Reason         string `json:"reason"`
}

// ExceptionResponse исключение по дате
type ExceptionResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Kind   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// ScheduleResponse расписание специалиста
type ScheduleResponse struct {
	ProfessionalID      int64               `json:"professionalId"`
	WorkingDays         []string            `json:"workingDays"`
	WorkingHours        TimeWindow          `json:"workingHours"`
	BreakTime           *TimeWindow         `json:"breakTime,omitempty"`
	SlotDurationMinutes int                 `json:"slotDuration"`
	Exceptions          []ExceptionResponse `json:"exceptions"`
	IsDefault           bool                `json:"isDefault"`
}

// FromDomainException конвертирует исключение
func FromDomainException(e domain.ScheduleException) ExceptionResponse {
	return ExceptionResponse{
		ID:     e.ID,
		Date:   e.Date.Format(domain.DateFormat),
		Kind:   string(e.Kind),
		Reason: e.Reason,
	}
}

// FromDomainSchedule конвертирует расписание
func FromDomainSchedule(s *domain.Schedule, isDefault bool) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID:      s.ProfessionalID,
		WorkingDays:         make([]string, 0, len(s.WorkingDays)),
		WorkingHours:        TimeWindow{Start: s.WorkingHours.Start.String(), End: s.WorkingHours.End.String()},
		SlotDurationMinutes: s.SlotDurationMinutes,
		Exceptions:          make([]ExceptionResponse, 0, len(s.Exceptions)),
		IsDefault:           isDefault,
	}
	for _, d := range s.WorkingDays {
		resp.WorkingDays = append(resp.WorkingDays, string(d))
	}
	if !s.BreakTime.IsEmpty() {
		resp.BreakTime = &TimeWindow{Start: s.BreakTime.Start.String(), End: s.BreakTime.End.String()}
	}
	for _, e := range s.Exceptions {
		resp.Exceptions = append(resp.Exceptions, FromDomainException(e))
	}
	return resp
}
