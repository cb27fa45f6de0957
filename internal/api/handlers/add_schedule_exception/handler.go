package add_schedule_exception

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "изменять расписание может только сам специалист"
	msgProfessionalNotFound  = "специалист не найден"
	msgDuplicateException    = "на эту дату уже есть исключение"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/professionals/{professionalId}/schedule/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorID = userID
	req.ProfessionalID = professionalID

	result, err := h.service.AddException(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Access denied: professional_id=%d, user_id=%d", professionalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, schedule.ErrDuplicateException):
			h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Duplicate exception: professional_id=%d, date=%s", professionalID, req.Date)
			handlers.RespondConflict(w, msgDuplicateException)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/schedule/exceptions - Invalid exception: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /professionals/{id}/schedule/exceptions - Failed to add exception: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/schedule/exceptions - Exception created: id=%d, professional_id=%d", result.ID, professionalID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
