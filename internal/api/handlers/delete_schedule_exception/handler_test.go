package delete_schedule_exception

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	actorID, professionalID, exceptionID int64
	err                                  error
}

func (f *fakeService) RemoveException(_ context.Context, actorID, professionalID, exceptionID int64) error {
	f.actorID, f.professionalID, f.exceptionID = actorID, professionalID, exceptionID
	return f.err
}

func serve(svc *fakeService, path string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/professionals/{professionalId}/schedule/exceptions/{exceptionId}", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "professional"))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/professionals/2/schedule/exceptions/9", 2)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(2), svc.actorID)
	assert.Equal(t, int64(2), svc.professionalID)
	assert.Equal(t, int64(9), svc.exceptionID)

	path := "/professionals/2/schedule/exceptions/9"
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: schedule.ErrAccessDenied}, path, 1).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrExceptionNotFound}, path, 2).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: schedule.ErrInternal}, path, 2).Code)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/professionals/x/schedule/exceptions/9", 2).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/professionals/2/schedule/exceptions/0", 2).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, path, 0).Code)
}
