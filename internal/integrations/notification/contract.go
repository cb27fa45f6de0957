package notification

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EmailSender отправляет одно письмо
// Реализации: SendGridSender, QueueSender, StubSender
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// UserDirectory источник контактов участников записи
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Publisher публикует сообщение в брокер (реализуется *amqp.Channel)
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// MetricsCollector счетчик отправленных уведомлений
type MetricsCollector interface {
	ObserveNotification(event, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
