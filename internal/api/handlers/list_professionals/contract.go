package list_professionals

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/users/models"
)

type UserService interface {
	ListProfessionals(ctx context.Context, specialty *string) (*models.ProfessionalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
