package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListAppointmentsRequest запрос на получение записей пользователя
type ListAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	ClientID       int64     `json:"clientId"`
	ProfessionalID int64     `json:"professionalId"`
	Date           time.Time `json:"date"`
	Reason         string    `json:"reason"`
	Notes          *string   `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             a.ID,
		ClientID:       a.ClientID,
		ProfessionalID: a.ProfessionalID,
		Date:           a.Date,
		Reason:         a.Reason,
		Notes:          a.Notes,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
