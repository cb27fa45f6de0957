package delete_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	deleted []int64
	err     error
}

func (f *fakeService) Delete(_ context.Context, id int64, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func serve(svc *fakeService, path string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "client"))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/appointments/7", 1)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{7}, svc.deleted)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/appointments/abc", 1).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, "/appointments/7", 0).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: appointments.ErrAppointmentNotFound}, "/appointments/7", 1).Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: appointments.ErrAccessDenied}, "/appointments/7", 1).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: appointments.ErrInternal}, "/appointments/7", 1).Code)
}
