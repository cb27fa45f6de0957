package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create_Client(t *testing.T) {
	repo, mock := newRepo(t)
	birth := time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users \(email,password_hash,first_name,last_name,phone,address,role,birth_date,specialty\)`).
		WithArgs("ann@example.com", "hash", "Ann", "Lee", nil, nil, "client", birth, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	u, err := repo.Create(context.Background(), &domain.User{
		Email:        "ann@example.com",
		PasswordHash: "hash",
		FirstName:    "Ann",
		LastName:     "Lee",
		Profile:      domain.ClientProfile{BirthDate: birth},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_EmailTaken(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{
		Email:   "dup@example.com",
		Profile: domain.ProfessionalProfile{Specialty: domain.SpecialtyCoach},
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRepository_Create_NoProfile(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), &domain.User{Email: "x@example.com"})

	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("doc@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "doc@example.com", "hash", "Greg", "House", "+100", nil, "professional", nil, "doctor", now))

	u, err := repo.GetByEmail(context.Background(), "doc@example.com")

	require.NoError(t, err)
	assert.True(t, u.IsProfessional())
	profile, ok := u.Professional()
	require.True(t, ok)
	assert.Equal(t, domain.SpecialtyDoctor, profile.Specialty)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "+100", *u.Phone)
	assert.Nil(t, u.Address)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_ListProfessionals(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users WHERE role = \$1 AND specialty = \$2 ORDER BY last_name ASC, first_name ASC`).
		WithArgs("professional", "lawyer").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, "a@example.com", "h", "Al", "Bee", nil, nil, "professional", nil, "lawyer", now).
			AddRow(4, "b@example.com", "h", "Cy", "Dee", nil, nil, "professional", nil, "lawyer", now))

	list, err := repo.ListProfessionals(context.Background(), ptr.Ptr(domain.SpecialtyLawyer))

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cy", list[1].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
