package users

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListProfessionals(ctx context.Context, specialty *domain.Specialty) ([]*domain.User, error)
}

// ScheduleRepository интерфейс для создания расписания нового специалиста
type ScheduleRepository interface {
	Upsert(ctx context.Context, s *domain.Schedule) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer интерфейс выпуска токенов доступа
type TokenIssuer interface {
	Issue(userID int64, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
