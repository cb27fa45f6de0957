package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

// UseCase use case для получения свободных слотов специалиста
type UseCase struct {
	appointmentRepo AppointmentRepository
	professionals   ProfessionalProvider
	timeProvider    TimeProvider
	location        *time.Location
	horizonDays     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	professionals ProfessionalProvider,
	location *time.Location,
	horizonDays int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		professionals:   professionals,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		horizonDays:     horizonDays,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Слоты вычисляются при каждом запросе и не кешируются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, date=%v", req.ProfessionalID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	today := startOfDay(now)
	horizonEnd := today.AddDate(0, 0, uc.horizonDays)

	// 2. Определяем диапазон дат
	from, to := today, horizonEnd
	if req.Date != nil {
		date, err := parseDate(*req.Date, uc.location)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: invalid date=%q", *req.Date)
			return nil, err
		}
		from, to = date, date.AddDate(0, 0, 1)
	}

	// 3. Получаем специалиста и расписание
	_, schedule, err := uc.professionals.LoadProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to load professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to load professional: %v", ErrInternal, err)
	}

	// 4. Получаем активные записи в диапазоне
	appointments, err := uc.appointmentRepo.FindByProfessional(ctx, domain.AppointmentFilter{
		ProfessionalID:  req.ProfessionalID,
		From:            &from,
		To:              &to,
		ExcludeStatuses: domain.InactiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	booked := bookedTimes(appointments)

	resp := &Response{
		ProfessionalID:      req.ProfessionalID,
		Date:                req.Date,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		AvailableSlots:      []Slot{},
		BookedSlots:         toBookedSlots(booked, uc.location),
	}

	// 5. Генерируем слоты
	if req.Date != nil {
		// Дата вне горизонта бронирования не дает свободных слотов
		if from.Before(today) || !from.Before(horizonEnd) {
			uc.logger.Info("GetAvailableSlots: date=%s is outside the booking horizon", *req.Date)
			return resp, nil
		}
		for _, slot := range schedule.SlotsOn(from, booked, now) {
			resp.AvailableSlots = append(resp.AvailableSlots, toSlot(slot.Start, uc.location))
		}
	} else {
		for slot := range domain.GenerateSlots(schedule, booked, now, uc.horizonDays) {
			resp.AvailableSlots = append(resp.AvailableSlots, toSlot(slot.Start, uc.location))
		}
	}

	uc.logger.Info("GetAvailableSlots: professional=%d, available=%d, booked=%d",
		req.ProfessionalID, len(resp.AvailableSlots), len(resp.BookedSlots))
	return resp, nil
}
