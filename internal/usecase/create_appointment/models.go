package create_appointment

import "time"

// Config параметры бронирования
type Config struct {
	Location            *time.Location // часовой пояс сервиса
	HorizonDays         int            // на сколько дней вперед разрешена запись
	NotificationTimeout time.Duration  // таймаут отправки уведомлений
}

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64   // ID клиента (из токена)
	ProfessionalID int64   // ID специалиста
	Date           string  // RFC3339 или YYYY-MM-DDTHH:MM во временной зоне сервиса
	Reason         string  // Причина визита
	Notes          *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
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
