package update_appointment_status

import "time"

// Request модель запроса на смену статуса
type Request struct {
	AppointmentID int64  // ID записи
	ActorID       int64  // ID пользователя (из токена)
	Status        string // новый статус
}

// Response модель ответа с обновленной записью
type Response struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	Date           time.Time
	Reason         string
	Notes          *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
