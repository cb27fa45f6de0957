package update_appointment_status

import (
	"time"

	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP модель запроса
type UpdateStatusRequest struct {
	Status string `json:"status"`
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

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateStatus.Response) *AppointmentResponse {
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
