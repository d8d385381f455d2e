package http

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS applies the configured origin allow-list. Preflights from origins
// outside the list are rejected with 403.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	})
	wrapped := c.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if preflight && r.Header.Get("Origin") != "" && !c.OriginAllowed(r) {
			writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
			return
		}
		wrapped.ServeHTTP(w, r)
	})
}
