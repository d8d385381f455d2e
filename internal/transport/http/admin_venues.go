package http

import (
	"context"
	"net/http"

	"github.com/cimillas/guestlist/internal/app"
	"github.com/cimillas/guestlist/internal/domain"
	"github.com/julienschmidt/httprouter"
)

// AdminVenueService is the minimal interface needed for admin venue endpoints.
type AdminVenueService interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	CreateVenue(ctx context.Context, in app.VenueInput) (domain.Venue, error)
	UpdateVenue(ctx context.Context, id string, in app.VenueInput) (domain.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

type venueRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Address       string   `json:"address" validate:"max=500"`
	VibeText      string   `json:"vibe_text" validate:"max=2000"`
	Lat           *float64 `json:"lat" validate:"required,latitude"`
	Lng           *float64 `json:"lng" validate:"required,longitude"`
	GeofenceMiles *float64 `json:"geofence_miles" validate:"omitnil,gt=0"`
	Timezone      string   `json:"timezone" validate:"omitempty,timezone"`
}

func (req venueRequest) input() app.VenueInput {
	return app.VenueInput{
		Name:          req.Name,
		Address:       req.Address,
		VibeText:      req.VibeText,
		Lat:           *req.Lat,
		Lng:           *req.Lng,
		GeofenceMiles: req.GeofenceMiles,
		Timezone:      req.Timezone,
	}
}

func venueIDParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

// HandleAdminCreateVenue returns an HTTP handler that creates a venue.
func HandleAdminCreateVenue(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req venueRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		venue, err := svc.CreateVenue(r.Context(), req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newVenueResponse(venue))
	}
}

// HandleAdminGetVenue returns an HTTP handler for a single venue by ID.
func HandleAdminGetVenue(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venue, err := svc.GetVenue(r.Context(), venueIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newVenueResponse(venue))
	}
}

// HandleAdminUpdateVenue returns an HTTP handler that replaces a venue's editable fields.
func HandleAdminUpdateVenue(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req venueRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		venue, err := svc.UpdateVenue(r.Context(), venueIDParam(r), req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newVenueResponse(venue))
	}
}

// HandleAdminDeleteVenue returns an HTTP handler that deletes a venue with no events.
func HandleAdminDeleteVenue(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteVenue(r.Context(), venueIDParam(r)); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
