package get_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{
		ProfessionalID:      professionalID,
		WorkingDays:         []string{"monday"},
		WorkingHours:        models.TimeWindow{Start: "09:00", End: "17:00"},
		SlotDurationMinutes: 30,
		Exceptions:          []models.ExceptionResponse{},
		IsDefault:           true,
	}, nil
}

func serve(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/professionals/{professionalId}/schedule", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler(t *testing.T) {
	rec := serve(&fakeService{}, "/professionals/2/schedule")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"professionalId": 2,
		"workingDays": ["monday"],
		"workingHours": {"start": "09:00", "end": "17:00"},
		"slotDuration": 30,
		"exceptions": [],
		"isDefault": true
	}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/professionals/x/schedule").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrProfessionalNotFound}, "/professionals/2/schedule").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: schedule.ErrInternal}, "/professionals/2/schedule").Code)
}
