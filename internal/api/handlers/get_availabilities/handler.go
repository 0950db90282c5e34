package get_availabilities

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-SearchService/internal/api/handlers"
	"github.com/m04kA/TMS-SearchService/internal/service/schedule"
)

const (
	msgMissingInsurance = "Insurance parameter is required"
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

// Handle GET /api/availabilities
// Query params: insurance (required); date, datePreset, times, soonest
// принимаются, но игнорируются — фильтрация выполняется на клиенте.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	insurance := r.URL.Query().Get("insurance")
	if insurance == "" {
		h.logger.Warn("GET /availabilities - Missing insurance parameter")
		handlers.RespondBadRequest(w, msgMissingInsurance)
		return
	}

	result, err := h.service.GetAvailabilities(r.Context(), insurance)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /availabilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingInsurance)

		default:
			h.logger.Error("GET /availabilities - Failed to get availabilities: insurance=%s, error=%v",
				insurance, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availabilities - Availabilities retrieved successfully: insurance=%s, count=%d",
		insurance, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(result))
}
