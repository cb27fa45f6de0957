package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий расписаний специалистов и исключений по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает расписание специалиста вместе с исключениями
func (r *Repository) Get(ctx context.Context, professionalID int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"professional_id",
		"working_days",
		"work_start",
		"work_end",
		"break_start",
		"break_end",
		"slot_duration_minutes",
		"updated_at",
	).
		From("schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	var days []string
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ProfessionalID,
		pq.Array(&days),
		&s.WorkingHours.Start,
		&s.WorkingHours.End,
		&s.BreakTime.Start,
		&s.BreakTime.End,
		&s.SlotDurationMinutes,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	s.WorkingDays = make([]domain.Weekday, 0, len(days))
	for _, raw := range days {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - working day: %v", ErrScanRow, err)
		}
		s.WorkingDays = append(s.WorkingDays, day)
	}
	s.UpdatedAt = updatedAt.Time

	exceptions, err := r.ListExceptions(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	s.Exceptions = exceptions

	return &s, nil
}

// Upsert создает или полностью заменяет недельное расписание специалиста
// Исключения по датам не затрагиваются
func (r *Repository) Upsert(ctx context.Context, s *domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	days := make([]string, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		days[i] = string(d)
	}

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"professional_id",
			"working_days",
			"work_start",
			"work_end",
			"break_start",
			"break_end",
			"slot_duration_minutes",
		).
		Values(
			s.ProfessionalID,
			pq.Array(days),
			s.WorkingHours.Start,
			s.WorkingHours.End,
			s.BreakTime.Start,
			s.BreakTime.End,
			s.SlotDurationMinutes,
		).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	s.UpdatedAt = updatedAt.Time

	return nil
}

// ListExceptions получает исключения специалиста, отсортированные по дате
func (r *Repository) ListExceptions(ctx context.Context, professionalID int64) ([]domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "exception_date", "kind", "reason").
		From("schedule_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.ScheduleException, 0)
	for rows.Next() {
		var e domain.ScheduleException
		if err := rows.Scan(&e.ID, &e.Date, &e.Kind, &e.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// AddException добавляет исключение на дату
func (r *Repository) AddException(ctx context.Context, professionalID int64, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns("professional_id", "exception_date", "kind", "reason").
		Values(professionalID, e.Date.Format(domain.DateFormat), e.Kind, e.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddException - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateException
		}
		return nil, fmt.Errorf("%w: AddException - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// DeleteException удаляет исключение специалиста
func (r *Repository) DeleteException(ctx context.Context, professionalID, exceptionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"id": exceptionID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}
