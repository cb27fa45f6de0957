package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	bookingAccepted            = "accepted"
	defaultNotificationTimeout = 10 * time.Second
)

// UseCase use case для создания записи к специалисту
type UseCase struct {
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
	professionals   ProfessionalProvider
	notifier        Notifier
	metrics         MetricsCollector
	txManager       TransactionManager
	timeProvider    TimeProvider
	cfg             Config
	dispatch        func(fn func())
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	userRepo UserRepository,
	professionals ProfessionalProvider,
	notifier Notifier,
	metrics MetricsCollector,
	txManager TransactionManager,
	cfg Config,
	dispatcher Dispatcher,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = domain.DefaultHorizonDays
	}
	if cfg.NotificationTimeout <= 0 {
		cfg.NotificationTimeout = defaultNotificationTimeout
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		professionals:   professionals,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		cfg:             cfg,
		dispatch:        dispatchFunc(dispatcher),
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверки выполняются по порядку, первая неудачная определяет причину отказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, professional=%d, date=%s", req.ClientID, req.ProfessionalID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Записываться могут только клиенты
	client, err := uc.userRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: caller=%d not found", req.ClientID)
			return nil, ErrForbidden
		}
		uc.logger.Error("CreateAppointment: failed to get caller=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get caller: %v", ErrInternal, err)
	}
	if !client.IsClient() {
		uc.logger.Warn("CreateAppointment: caller=%d is not a client", req.ClientID)
		return nil, ErrForbidden
	}

	// 3. Получаем специалиста и его расписание
	_, schedule, err := uc.professionals.LoadProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to load professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to load professional: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(uc.cfg.Location)

	// 4. Разбор даты (invalid_date)
	requested, err := domain.ParseAppointmentTime(req.Date, uc.cfg.Location)
	if err != nil {
		var rejection *domain.Rejection
		if errors.As(err, &rejection) {
			return nil, uc.reject(rejection)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Проверки по расписанию: прошедшая дата, нерабочий день, рабочие часы, перерыв, сетка слотов, горизонт
	if rejection := schedule.CheckBooking(requested, now, uc.cfg.HorizonDays); rejection != nil {
		return nil, uc.reject(rejection)
	}

	appt := &domain.Appointment{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Date:           requested,
		Reason:         strings.TrimSpace(req.Reason),
		Notes:          req.Notes,
		Status:         domain.StatusPending,
	}

	// 6. Проверка занятости и вставка в сериализуемой транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.FindOne(txCtx, req.ProfessionalID, requested, domain.InactiveStatuses...)
		if err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if existing != nil {
			return domain.NewSlotTakenRejection(requested)
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Параллельная запись успела занять слот: сработал уникальный индекс
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return domain.NewSlotTakenRejection(requested)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		var rejection *domain.Rejection
		if errors.As(err, &rejection) {
			return nil, uc.reject(rejection)
		}
		// Параллельные транзакции на тот же слот не сериализовались даже после повторов
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization failure for professional=%d at %s: %v", req.ProfessionalID, req.Date, err)
			return nil, uc.reject(domain.NewSlotTakenRejection(requested))
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.observe(bookingAccepted)
	uc.logger.Info("CreateAppointment: appointment id=%d created for client=%d with professional=%d at %s",
		created.ID, created.ClientID, created.ProfessionalID, created.Date.In(uc.cfg.Location).Format(domain.DateTimeFormat))

	// 7. Уведомления не влияют на результат
	uc.notify(ctx, created)

	return toResponse(created), nil
}

func (uc *UseCase) reject(rejection *domain.Rejection) error {
	uc.observe(string(rejection.Reason))
	uc.logger.Warn("CreateAppointment: rejected: %s", rejection.Error())
	if rejection.Reason == domain.RejectSlotTaken {
		return fmt.Errorf("%w: %w", ErrConflict, rejection)
	}
	return fmt.Errorf("%w: %w", ErrRejected, rejection)
}

func (uc *UseCase) notify(ctx context.Context, appt *domain.Appointment) {
	if uc.notifier == nil {
		return
	}
	snapshot := *appt
	detached := context.WithoutCancel(ctx)
	uc.dispatch(func() {
		notifyCtx, cancel := context.WithTimeout(detached, uc.cfg.NotificationTimeout)
		defer cancel()
		if err := uc.notifier.NotifyBookingCreated(notifyCtx, &snapshot); err != nil {
			uc.logger.Warn("CreateAppointment: notification for appointment id=%d failed: %v", snapshot.ID, err)
		}
	})
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(result)
	}
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
