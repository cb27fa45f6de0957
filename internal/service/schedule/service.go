package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service сервис расписаний специалистов
type Service struct {
	userRepo     UserRepository
	scheduleRepo ScheduleRepository
	txManager    TxManager
	defaults     domain.ScheduleDefaults
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
// defaults используется для специалистов, которые еще не сохраняли расписание
func NewService(
	userRepo UserRepository,
	scheduleRepo ScheduleRepository,
	txManager TxManager,
	defaults domain.ScheduleDefaults,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		defaults:     defaults,
		logger:       logger,
	}
}

// Get получает расписание специалиста
func (s *Service) Get(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for professional=%d", professionalID)

	_, schedule, isDefault, err := s.loadProfessional(ctx, "Get", professionalID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSchedule(schedule, isDefault), nil
}

// LoadProfessional возвращает специалиста и его действующее расписание
// Используется сценариями бронирования и поиска слотов
func (s *Service) LoadProfessional(ctx context.Context, professionalID int64) (*domain.User, *domain.Schedule, error) {
	user, schedule, _, err := s.loadProfessional(ctx, "LoadProfessional", professionalID)
	if err != nil {
		return nil, nil, err
	}
	return user, schedule, nil
}

// Update полностью заменяет недельное расписание
// Менять расписание может только сам специалист
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: professional=%d by user=%d", req.ProfessionalID, req.ActorID)

	if req.ActorID != req.ProfessionalID {
		s.logger.Warn("Update: access denied for user=%d to schedule of professional=%d", req.ActorID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if _, _, _, err := s.loadProfessional(ctx, "Update", req.ProfessionalID); err != nil {
		return nil, err
	}

	schedule, err := buildSchedule(req)
	if err != nil {
		s.logger.Warn("Update: invalid schedule for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Сохранение и чтение исключений в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.Upsert(txCtx, schedule); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}

		exceptions, err := s.scheduleRepo.ListExceptions(txCtx, req.ProfessionalID)
		if err != nil {
			return fmt.Errorf("list exceptions: %w", err)
		}
		schedule.Exceptions = exceptions
		return nil
	})
	if err != nil {
		s.logger.Error("Update: failed to save schedule for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: schedule saved for professional=%d, days=%v, hours=%s", req.ProfessionalID, schedule.WorkingDays, schedule.WorkingHours)
	return models.FromDomainSchedule(schedule, false), nil
}

// AddException добавляет исключение на дату
func (s *Service) AddException(ctx context.Context, req *models.AddExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("AddException: professional=%d, date=%s, kind=%s by user=%d", req.ProfessionalID, req.Date, req.Kind, req.ActorID)

	if req.ActorID != req.ProfessionalID {
		s.logger.Warn("AddException: access denied for user=%d to schedule of professional=%d", req.ActorID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	exception := &domain.ScheduleException{
		Date:   date,
		Kind:   domain.ExceptionKind(req.Kind),
		Reason: req.Reason,
	}
	if err := exception.Validate(); err != nil {
		s.logger.Warn("AddException: invalid exception for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 1. Исключение хранится отдельно, поэтому расписание должно существовать в базе
	_, schedule, isDefault, err := s.loadProfessional(ctx, "AddException", req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// 2. Расписание по умолчанию и исключение сохраняются в одной транзакции
	var created *domain.ScheduleException
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if isDefault {
			if err := s.scheduleRepo.Upsert(txCtx, schedule); err != nil {
				return fmt.Errorf("persist default schedule: %w", err)
			}
		}

		var err error
		created, err = s.scheduleRepo.AddException(txCtx, req.ProfessionalID, exception)
		return err
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateException) {
			s.logger.Warn("AddException: duplicate exception for professional=%d on %s", req.ProfessionalID, req.Date)
			return nil, ErrDuplicateException
		}
		s.logger.Error("AddException: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: AddException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddException: exception id=%d created for professional=%d", created.ID, req.ProfessionalID)
	resp := models.FromDomainException(*created)
	return &resp, nil
}

// RemoveException удаляет исключение
func (s *Service) RemoveException(ctx context.Context, actorID, professionalID, exceptionID int64) error {
	s.logger.Info("RemoveException: exception id=%d of professional=%d by user=%d", exceptionID, professionalID, actorID)

	if actorID != professionalID {
		s.logger.Warn("RemoveException: access denied for user=%d to schedule of professional=%d", actorID, professionalID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeleteException(ctx, professionalID, exceptionID); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("RemoveException: repository error for exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: RemoveException - repository error: %v", ErrInternal, err)
	}

	return nil
}

// loadProfessional проверяет, что пользователь специалист, и подбирает расписание
// При отсутствии сохраненного расписания возвращается расписание по умолчанию (isDefault=true)
func (s *Service) loadProfessional(ctx context.Context, op string, professionalID int64) (*domain.User, *domain.Schedule, bool, error) {
	user, err := s.userRepo.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: professional=%d not found", op, professionalID)
			return nil, nil, false, ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get user=%d: %v", op, professionalID, err)
		return nil, nil, false, fmt.Errorf("%w: %s - user repository error: %v", ErrInternal, op, err)
	}
	if !user.IsProfessional() {
		s.logger.Warn("%s: user=%d is not a professional", op, professionalID)
		return nil, nil, false, ErrProfessionalNotFound
	}

	schedule, err := s.scheduleRepo.Get(ctx, professionalID)
	switch {
	case err == nil:
		return user, schedule, false, nil
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Info("%s: professional=%d has no saved schedule, using defaults", op, professionalID)
		return user, domain.NewSchedule(professionalID, s.defaults), true, nil
	default:
		s.logger.Error("%s: failed to get schedule for professional=%d: %v", op, professionalID, err)
		return nil, nil, false, fmt.Errorf("%w: %s - schedule repository error: %v", ErrInternal, op, err)
	}
}

func buildSchedule(req *models.UpdateScheduleRequest) (*domain.Schedule, error) {
	days := make([]domain.Weekday, 0, len(req.WorkingDays))
	for _, raw := range req.WorkingDays {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	hours, err := req.WorkingHours.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("working hours: %w", err)
	}

	var breakTime domain.TimeWindow
	if req.BreakTime != nil {
		breakTime, err = req.BreakTime.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("break time: %w", err)
		}
	}

	schedule := &domain.Schedule{
		ProfessionalID:      req.ProfessionalID,
		WorkingDays:         days,
		WorkingHours:        hours,
		BreakTime:           breakTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}
