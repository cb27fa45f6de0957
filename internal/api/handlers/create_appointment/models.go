package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP модель запроса
type CreateAppointmentRequest struct {
	ProfessionalID int64   `json:"professionalId"`
	Date           string  `json:"date"` // "2025-01-06T10:00" или RFC3339
	Reason         string  `json:"reason"`
	Notes          *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP модель записи
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) *createAppointment.Request {
	return &createAppointment.Request{
		ClientID:       clientID,
		ProfessionalID: r.ProfessionalID,
		Date:           r.Date,
		Reason:         r.Reason,
		Notes:          r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date,
		Reason:         resp.Reason,
		Notes:          resp.Notes,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
