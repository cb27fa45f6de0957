package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/users"
	"github.com/m04kA/SMC-AppointmentService/internal/service/users/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Login(_ context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AuthResponse{Token: "token", User: models.UserResponse{ID: 3, Email: req.Email}}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	body := `{"email":"ann@example.com","password":"secret123"}`

	rec := serve(&fakeService{}, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"token"`)

	rec = serve(&fakeService{err: users.ErrInvalidCredentials}, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidCredentials)

	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: users.ErrInternal}, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"email":"ann@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{`).Code)
}
