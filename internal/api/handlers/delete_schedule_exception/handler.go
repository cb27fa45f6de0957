package delete_schedule_exception

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidExceptionID    = "некорректный ID исключения"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "изменять расписание может только сам специалист"
	msgExceptionNotFound     = "исключение не найдено"
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

// Handle DELETE /api/v1/professionals/{professionalId}/schedule/exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}
	exceptionID, err := handlers.PathInt64(r, "exceptionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/schedule/exceptions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveException(r.Context(), userID, professionalID, exceptionID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /professionals/{id}/schedule/exceptions/{id} - Access denied: professional_id=%d, user_id=%d", professionalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrExceptionNotFound):
			handlers.RespondNotFound(w, msgExceptionNotFound)

		default:
			h.logger.Error("DELETE /professionals/{id}/schedule/exceptions/{id} - Failed to delete exception: id=%d, error=%v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/schedule/exceptions/{id} - Exception deleted: id=%d, professional_id=%d", exceptionID, professionalID)
	handlers.RespondNoContent(w)
}
