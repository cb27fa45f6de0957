package update_appointment_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *updateStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &updateStatus.Response{ID: req.AppointmentID, Status: req.Status}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/appointments/{appointmentId}/status", http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle)).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/10/status", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), 2, "professional"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(10), uc.got.AppointmentID)
	assert.Equal(t, int64(2), uc.got.ActorID)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{updateStatus.ErrAppointmentNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: not a party", updateStatus.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: archived", updateStatus.ErrInvalidStatus), http.StatusBadRequest},
		{updateStatus.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: cancelled -> confirmed", updateStatus.ErrTransitionNotAllowed), http.StatusConflict},
		{updateStatus.ErrConflict, http.StatusConflict},
		{updateStatus.ErrConcurrentUpdate, http.StatusConflict},
		{updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"status":"confirmed"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
