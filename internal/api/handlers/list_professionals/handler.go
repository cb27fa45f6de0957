package list_professionals

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/users"
)

const (
	msgUnknownSpecialty = "неизвестная специальность"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals?specialty=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialty := handlers.QueryString(r, "specialty")

	result, err := h.service.ListProfessionals(r.Context(), specialty)
	if err != nil {
		if errors.Is(err, users.ErrInvalidInput) {
			h.logger.Warn("GET /professionals - Unknown specialty: %v", err)
			handlers.RespondBadRequest(w, msgUnknownSpecialty)
			return
		}
		h.logger.Error("GET /professionals - Failed to list professionals: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals - Professionals retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
