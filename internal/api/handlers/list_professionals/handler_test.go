package list_professionals

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/users"
	"github.com/m04kA/SMC-AppointmentService/internal/service/users/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	specialty *string
	err       error
}

func (f *fakeService) ListProfessionals(_ context.Context, specialty *string) (*models.ProfessionalListResponse, error) {
	f.specialty = specialty
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfessionalListResponse{
		Professionals: []models.UserResponse{{ID: 2, Email: "pro@example.com"}},
		Total:         1,
	}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/professionals?specialty=doctor")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	require.NotNil(t, svc.specialty)
	assert.Equal(t, "doctor", *svc.specialty)

	svc = &fakeService{}
	assert.Equal(t, http.StatusOK, serve(svc, "/api/v1/professionals").Code)
	assert.Nil(t, svc.specialty)

	rec = serve(&fakeService{err: fmt.Errorf("%w: unknown specialty", users.ErrInvalidInput)}, "/api/v1/professionals?specialty=wizard")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgUnknownSpecialty)

	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: users.ErrInternal}, "/api/v1/professionals").Code)
}
