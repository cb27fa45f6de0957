package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/users/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
	err     error
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, userRepo.ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListProfessionals(_ context.Context, specialty *domain.Specialty) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byEmail {
		p, ok := u.Professional()
		if !ok || (specialty != nil && p.Specialty != *specialty) {
			continue
		}
		out = append(out, u)
	}
	return out, r.err
}

type fakeScheduleRepo struct {
	saved []*domain.Schedule
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, s *domain.Schedule) error {
	r.saved = append(r.saved, s)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID int64, role string) (string, time.Time, error) {
	return role + "-token", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

func newService() (*Service, *fakeUserRepo, *fakeScheduleRepo) {
	users := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	schedules := &fakeScheduleRepo{}
	svc := NewService(users, schedules, passthroughTx{}, fakeTokens{}, domain.BuiltinScheduleDefaults(), logger.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc, users, schedules
}

func clientRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:     " Ann@Example.com ",
		Password:  "secret-pass",
		FirstName: "Ann",
		LastName:  "Lee",
		Role:      "client",
		BirthDate: ptr.Ptr("1990-05-17"),
	}
}

func TestService_RegisterClient(t *testing.T) {
	svc, users, schedules := newService()

	resp, err := svc.Register(context.Background(), clientRequest())
	require.NoError(t, err)
	assert.Equal(t, "client-token", resp.Token)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, "client", resp.User.Role)
	require.NotNil(t, resp.User.BirthDate)
	assert.Equal(t, "1990-05-17", *resp.User.BirthDate)
	assert.Nil(t, resp.User.Specialty)
	assert.Empty(t, schedules.saved)

	stored := users.byEmail["ann@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-pass")))

	_, err = svc.Register(context.Background(), clientRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_RegisterProfessionalCreatesSchedule(t *testing.T) {
	svc, _, schedules := newService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "house@example.com",
		Password:  "vicodin123",
		FirstName: "Greg",
		LastName:  "House",
		Role:      "professional",
		Specialty: ptr.Ptr("Doctor"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User.Specialty)
	assert.Equal(t, "doctor", *resp.User.Specialty)

	require.Len(t, schedules.saved, 1)
	assert.Equal(t, resp.User.ID, schedules.saved[0].ProfessionalID)
	assert.NoError(t, schedules.saved[0].Validate())
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _, _ := newService()

	tests := []struct {
		name   string
		mutate func(r *models.RegisterRequest)
	}{
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }},
		{"missing name", func(r *models.RegisterRequest) { r.LastName = " " }},
		{"unknown role", func(r *models.RegisterRequest) { r.Role = "admin" }},
		{"client without birth date", func(r *models.RegisterRequest) { r.BirthDate = nil }},
		{"birth date format", func(r *models.RegisterRequest) { r.BirthDate = ptr.Ptr("17/05/1990") }},
		{"birth date in future", func(r *models.RegisterRequest) { r.BirthDate = ptr.Ptr("2999-01-01") }},
		{"professional without specialty", func(r *models.RegisterRequest) { r.Role = "professional" }},
		{"unknown specialty", func(r *models.RegisterRequest) {
			r.Role = "professional"
			r.Specialty = ptr.Ptr("astrologer")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := clientRequest()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Register(context.Background(), clientRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ANN@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "client-token", resp.Token)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "ann@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ListProfessionals(t *testing.T) {
	svc, users, _ := newService()
	users.byEmail["a@example.com"] = &domain.User{ID: 1, Email: "a@example.com", Profile: domain.ProfessionalProfile{Specialty: domain.SpecialtyDoctor}}
	users.byEmail["b@example.com"] = &domain.User{ID: 2, Email: "b@example.com", Profile: domain.ProfessionalProfile{Specialty: domain.SpecialtyLawyer}}
	users.byEmail["c@example.com"] = &domain.User{ID: 3, Email: "c@example.com", Profile: domain.ClientProfile{BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}}

	resp, err := svc.ListProfessionals(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = svc.ListProfessionals(context.Background(), ptr.Ptr("lawyer"))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Professionals[0].ID)

	_, err = svc.ListProfessionals(context.Background(), ptr.Ptr("astrologer"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.err = errors.New("db down")
	_, err = svc.ListProfessionals(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidateStruct_Messages(t *testing.T) {
	err := validateStruct(&models.RegisterRequest{
		Email:     "not-an-email",
		Password:  "secret-pass",
		FirstName: "Ann",
		Role:      "admin",
		BirthDate: ptr.Ptr("17/05/1990"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "lastName is required")
	assert.Contains(t, err.Error(), "role must be one of: client professional")
	assert.Contains(t, err.Error(), "birthDate must match 2006-01-02")

	assert.NoError(t, validateStruct(clientRequest()))
}
