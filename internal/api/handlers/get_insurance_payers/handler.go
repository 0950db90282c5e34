package get_insurance_payers

import (
	"net/http"

	"github.com/m04kA/TMS-SearchService/internal/api/handlers"
	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// InsurancePayerResponse HTTP-модель страховой компании
type InsurancePayerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

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

// Handle GET /api/insurance-payers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payers, err := h.service.ListPayers(r.Context())
	if err != nil {
		h.logger.Error("GET /insurance-payers - Failed to list payers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /insurance-payers - Payers retrieved successfully: count=%d", len(payers))
	handlers.RespondJSON(w, http.StatusOK, fromDomainList(payers))
}

func fromDomainList(payers []domain.InsurancePayer) []InsurancePayerResponse {
	result := make([]InsurancePayerResponse, len(payers))
	for i, p := range payers {
		result[i] = InsurancePayerResponse{ID: p.ID, Name: p.Name}
	}
	return result
}
