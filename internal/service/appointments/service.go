package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения и удаления записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Видеть запись могут только клиент и специалист этой записи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.load(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// ListForUser получает записи пользователя (как клиента и как специалиста)
// Опционально фильтрует по статусу
func (s *Service) ListForUser(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForUser: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st := domain.AppointmentStatus(*req.Status)
		if !st.IsValid() {
			s.logger.Warn("ListForUser: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		status = &st
	}

	list, err := s.appointmentRepo.ListByParticipant(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: fetched %d appointments for user=%d", len(list), req.UserID)
	return models.FromDomainAppointmentList(list), nil
}

// Delete удаляет запись без сохранения истории
// Удалить запись могут только её участники
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: appointment id=%d by user=%d", id, userID)

	if _, err := s.load(ctx, "Delete", id, userID); err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

func (s *Service) load(ctx context.Context, op string, id, userID int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !appt.IsParty(userID) {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return appt, nil
}
