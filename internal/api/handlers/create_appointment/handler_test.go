package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *createAppointment.Request
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "client"))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const validBody = `{"professionalId":2,"date":"2025-01-06T10:00","reason":"checkup"}`

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID: 5, ClientID: 1, ProfessionalID: 2, Status: "pending", Reason: "checkup",
		Date: time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC),
	}}

	rec := serve(t, uc, 1, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.ClientID)
	assert.Equal(t, int64(2), uc.got.ProfessionalID)
	assert.Equal(t, "2025-01-06T10:00", uc.got.Date)

	var body AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "pending", body.Status)
}

func TestHandler_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid date",
			err:        fmt.Errorf("%w: %w", createAppointment.ErrRejected, &domain.Rejection{Reason: domain.RejectInvalidDate, Message: "bad"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_date",
		},
		{
			name: "non working day",
			err: fmt.Errorf("%w: %w", createAppointment.ErrRejected, &domain.Rejection{
				Reason: domain.RejectNonWorkingDay, Message: "closed",
				Details: map[string]any{"requestedDay": "saturday"},
			}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "non_working_day",
		},
		{
			name:       "slot taken",
			err:        fmt.Errorf("%w: %w", createAppointment.ErrConflict, domain.NewSlotTakenRejection(time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC))),
			wantStatus: http.StatusConflict,
			wantCode:   "slot_taken",
		},
		{"forbidden", createAppointment.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"professional not found", createAppointment.ErrProfessionalNotFound, http.StatusNotFound, "not_found"},
		{"invalid input", fmt.Errorf("%w: reason is required", createAppointment.ErrInvalidInput), http.StatusBadRequest, "bad_request"},
		{"internal", createAppointment.ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, 1, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandler_RejectionDetails(t *testing.T) {
	err := fmt.Errorf("%w: %w", createAppointment.ErrRejected, &domain.Rejection{
		Reason:  domain.RejectDuringBreak,
		Message: "the requested time falls in the break",
		Details: map[string]any{"breakTime": "12:00-13:00", "requestedTime": "12:00"},
	})

	rec := serve(t, &fakeUseCase{err: err}, 1, validBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"during_break","message":"the requested time falls in the break",
		"details":{"breakTime":"12:00-13:00","requestedTime":"12:00"}}}`, rec.Body.String())
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, 0, validBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, uc, 1, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
