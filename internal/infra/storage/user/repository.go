package user

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

var columns = []string{
	"id",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"phone",
	"address",
	"role",
	"birth_date",
	"specialty",
	"created_at",
}

// Repository справочник пользователей (клиенты и специалисты)
// Расписание специалиста хранится отдельно, см. storage/schedule
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var birthDate sql.NullTime
	var specialty sql.NullString
	switch p := u.Profile.(type) {
	case domain.ClientProfile:
		birthDate = sql.NullTime{Time: p.BirthDate, Valid: true}
	case domain.ProfessionalProfile:
		specialty = sql.NullString{String: string(p.Specialty), Valid: true}
	default:
		return nil, fmt.Errorf("%w: Create - profile %T", ErrUnknownRole, u.Profile)
	}

	query, args, err := psqlbuilder.Insert("users").
		Columns(
			"email",
			"password_hash",
			"first_name",
			"last_name",
			"phone",
			"address",
			"role",
			"birth_date",
			"specialty",
		).
		Values(
			u.Email,
			u.PasswordHash,
			u.FirstName,
			u.LastName,
			u.Phone,
			u.Address,
			string(u.Role()),
			birthDate,
			specialty,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// ListProfessionals получает специалистов, опционально по специальности
func (r *Repository) ListProfessionals(ctx context.Context, specialty *domain.Specialty) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("users").
		Where(squirrel.Eq{"role": string(domain.RoleProfessional)}).
		OrderBy("last_name ASC, first_name ASC")

	if specialty != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialty": string(*specialty)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("users").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var phone, address, specialty sql.NullString
	var birthDate sql.NullTime
	var role string

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&phone,
		&address,
		&role,
		&birthDate,
		&specialty,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}
	if address.Valid {
		u.Address = &address.String
	}

	switch domain.Role(role) {
	case domain.RoleClient:
		u.Profile = domain.ClientProfile{BirthDate: birthDate.Time}
	case domain.RoleProfessional:
		u.Profile = domain.ProfessionalProfile{Specialty: domain.Specialty(specialty.String)}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return &u, nil
}
