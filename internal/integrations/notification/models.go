package notification

// EmailMessage письмо для отправки
type EmailMessage struct {
	To      string `json:"to"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Event   string `json:"event"`
}

// События уведомлений
const (
	EventBookingCreated = "booking_created"
	EventStatusChanged  = "status_changed"
)
