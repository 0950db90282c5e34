package health_check

import (
	"net/http"

	"github.com/m04kA/TMS-SearchService/internal/api/handlers"
)

// HealthResponse модель ответа health-пробы
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle GET /api/health
// Клиенты используют эту пробу как fail-fast перед основным запросом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "scheduling API is running",
	})
}
