package middleware

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// CORS разрешает запросы от фронтенда поиска.
// Список origins задаётся в конфигурации (server.allowed_origins).
func CORS(allowedOrigins []string) mux.MiddlewareFunc {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(allowedOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
		gorillahandlers.AllowCredentials(),
	)

	return func(next http.Handler) http.Handler {
		return cors(next)
	}
}
