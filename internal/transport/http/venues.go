package http

import (
	"context"
	"net/http"

	"github.com/cimillas/guestlist/internal/domain"
)

// VenueLister is the minimal interface needed for the public venue list.
type VenueLister interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
}

// HandleListVenues returns the venues shown on the registration form.
func HandleListVenues(svc VenueLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venues, err := svc.ListVenues(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]venueResponse, 0, len(venues))
		for _, v := range venues {
			resp = append(resp, newVenueResponse(v))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
