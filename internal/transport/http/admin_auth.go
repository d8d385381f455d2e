package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/cimillas/guestlist/internal/domain"
)

// AdminAuthenticator is the minimal interface needed for admin login.
type AdminAuthenticator interface {
	Login(password string) (string, time.Time, error)
	Verify(token string) error
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleAdminLogin exchanges the admin password for a bearer token.
func HandleAdminLogin(a AdminAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, expiresAt, err := a.Login(req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid password")
				return
			}
			writeError(w, http.StatusServiceUnavailable, codeUnavailable, "admin login is not configured")
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
	}
}

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(a AdminAuthenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.Verify(r.Header.Get("Authorization")); err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
