package schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UserRepository интерфейс справочника пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, professionalID int64) (*domain.Schedule, error)
	Upsert(ctx context.Context, s *domain.Schedule) error
	ListExceptions(ctx context.Context, professionalID int64) ([]domain.ScheduleException, error)
	AddException(ctx context.Context, professionalID int64, e *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, professionalID, exceptionID int64) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
