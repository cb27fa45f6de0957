package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const defaultNotificationTimeout = 10 * time.Second

// UseCase use case для смены статуса записи
type UseCase struct {
	appointmentRepo     AppointmentRepository
	notifier            Notifier
	txManager           TransactionManager
	machine             domain.StatusMachine
	notificationTimeout time.Duration
	dispatch            func(fn func())
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	machine domain.StatusMachine,
	notificationTimeout time.Duration,
	dispatcher Dispatcher,
	logger Logger,
) *UseCase {
	if notificationTimeout <= 0 {
		notificationTimeout = defaultNotificationTimeout
	}
	return &UseCase{
		appointmentRepo:     appointmentRepo,
		notifier:            notifier,
		txManager:           txManager,
		machine:             machine,
		notificationTimeout: notificationTimeout,
		dispatch:            dispatchFunc(dispatcher),
		logger:              logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: appointment=%d, actor=%d, status=%s", req.AppointmentID, req.ActorID, req.Status)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 || req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: appointment and actor ids must be positive", ErrInvalidInput)
	}
	if req.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	to := domain.AppointmentStatus(req.Status)

	// 2. Переход выполняется в транзакции, чтобы не потерять параллельное изменение
	var appt *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2.1. Проверка по машине статусов
		if err := uc.machine.Transition(appt, req.ActorID, to); err != nil {
			return mapTransitionError(err)
		}

		// 2.2. Сохраняем новый статус
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, appt.Status); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("UpdateAppointmentStatus: appointment=%d modified concurrently: %v", req.AppointmentID, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("UpdateAppointmentStatus: appointment=%d: %v", req.AppointmentID, err)
			return nil, err
		}
		if isBusinessError(err) {
			uc.logger.Warn("UpdateAppointmentStatus: appointment=%d rejected: %v", req.AppointmentID, err)
			return nil, err
		}
		uc.logger.Error("UpdateAppointmentStatus: transaction failed for appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment=%d is now %s", appt.ID, appt.Status)

	// 3. Уведомляем второго участника
	uc.notify(ctx, appt, req.ActorID)

	return toResponse(appt), nil
}

func (uc *UseCase) notify(ctx context.Context, appt *domain.Appointment, actorID int64) {
	if uc.notifier == nil {
		return
	}
	snapshot := *appt
	detached := context.WithoutCancel(ctx)
	uc.dispatch(func() {
		notifyCtx, cancel := context.WithTimeout(detached, uc.notificationTimeout)
		defer cancel()
		if err := uc.notifier.NotifyStatusChanged(notifyCtx, &snapshot, actorID); err != nil {
			uc.logger.Warn("UpdateAppointmentStatus: notification for appointment id=%d failed: %v", snapshot.ID, err)
		}
	})
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	case errors.Is(err, domain.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case errors.Is(err, domain.ErrTransitionNotAllowed):
		return fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrAppointmentNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrTransitionNotAllowed) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrConcurrentUpdate)
}

// dispatchFunc без диспетчера уведомления запускаются в неотслеживаемой горутине
func dispatchFunc(dispatcher Dispatcher) func(fn func()) {
	if dispatcher == nil {
		return func(fn func()) { go fn() }
	}
	return dispatcher.Go
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:             appt.ID,
		ClientID:       appt.ClientID,
		ProfessionalID: appt.ProfessionalID,
		Date:           appt.Date,
		Reason:         appt.Reason,
		Notes:          appt.Notes,
		Status:         string(appt.Status),
		CreatedAt:      appt.CreatedAt,
		UpdatedAt:      appt.UpdatedAt,
	}
}
