package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/cimillas/guestlist/internal/app"
	"github.com/cimillas/guestlist/internal/domain"
	"github.com/cimillas/guestlist/internal/render"
)

// AdminRegistrationService is the minimal interface needed for the admin list.
type AdminRegistrationService interface {
	ListRegistrations(ctx context.Context, filter domain.RegistrationFilter) (app.RegistrationListing, error)
}

type statsResponse struct {
	Total      int `json:"total"`
	Registered int `json:"registered"`
	Activated  int `json:"activated"`
	Expired    int `json:"expired"`
}

type registrationListResponse struct {
	Registrations []registrationResponse `json:"registrations"`
	Stats         statsResponse          `json:"stats"`
}

// HandleAdminRegistrations lists registrations filtered by ?status= and ?q=.
func HandleAdminRegistrations(svc AdminRegistrationService, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var filter domain.RegistrationFilter
		if raw := strings.TrimSpace(q.Get("status")); raw != "" && !strings.EqualFold(raw, "all") {
			status, ok := domain.ParseStatus(raw)
			if !ok {
				writeErrorResponse(w, http.StatusBadRequest, errorResponse{
					Error: "status must be one of all, registered, activated, expired",
					Code:  codeValidationFailed,
					Field: "status",
				})
				return
			}
			filter.Status = status
		}
		filter.Search = strings.TrimSpace(q.Get("q"))

		listing, err := svc.ListRegistrations(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := registrationListResponse{
			Registrations: make([]registrationResponse, 0, len(listing.Registrations)),
			Stats: statsResponse{
				Total:      listing.Stats.Total,
				Registered: listing.Stats.Registered,
				Activated:  listing.Stats.Activated,
				Expired:    listing.Stats.Expired,
			},
		}
		for _, d := range listing.Registrations {
			resp.Registrations = append(resp.Registrations, newRegistrationResponse(d, links))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
