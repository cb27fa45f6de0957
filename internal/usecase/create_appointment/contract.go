package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	FindOne(ctx context.Context, professionalID int64, at time.Time, excludeStatuses ...domain.AppointmentStatus) (*domain.Appointment, error)
}

// UserRepository интерфейс справочника пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProfessionalProvider отдает специалиста вместе с действующим расписанием
type ProfessionalProvider interface {
	LoadProfessional(ctx context.Context, professionalID int64) (*domain.User, *domain.Schedule, error)
}

// Notifier интерфейс уведомлений участников
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, appt *domain.Appointment) error
}

// MetricsCollector интерфейс сбора метрик бронирований
type MetricsCollector interface {
	ObserveBooking(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Dispatcher запускает фоновые уведомления и ждет их при остановке сервиса
type Dispatcher interface {
	Go(fn func())
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
