package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, ClientID: userID, Status: "pending"}, nil
}

func serve(svc *fakeService, path string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "client"))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	rec := serve(&fakeService{}, "/appointments/7", 1)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/appointments/0", 1).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, "/appointments/7", 0).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: appointments.ErrAppointmentNotFound}, "/appointments/7", 1).Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: appointments.ErrAccessDenied}, "/appointments/7", 1).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: appointments.ErrInternal}, "/appointments/7", 1).Code)
}
