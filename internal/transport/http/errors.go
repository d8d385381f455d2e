package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cimillas/guestlist/internal/domain"
)

const (
	codeMethodNotAllowed        = "method_not_allowed"
	codeNotFound                = "not_found"
	codeInvalidRequestBody      = "invalid_request_body"
	codeValidationFailed        = "validation_failed"
	codeInvalidID               = "invalid_id"
	codeInvalidCoordinates      = "invalid_coordinates"
	codeInvalidTimezone         = "invalid_timezone"
	codeVenueNotFound           = "venue_not_found"
	codeVenueInUse              = "venue_in_use"
	codeRegistrationNotFound    = "registration_not_found"
	codeAlreadyActivated        = "already_activated"
	codeRegistrationExpired     = "registration_expired"
	codeEventDateMissing        = "event_date_missing"
	codeOutsideActivationWindow = "outside_activation_window"
	codeOutsideGeofence         = "outside_geofence"
	codeUnauthorized            = "unauthorized"
	codeForbidden               = "forbidden"
	codeRateLimited             = "rate_limited"
	codeUnavailable             = "service_unavailable"
	codeInternalError           = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorFor maps a service error to its HTTP status and user-facing body.
// Unknown errors never leak their text.
func errorFor(err error) (int, errorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorResponse{Error: verr.Message, Code: codeValidationFailed, Field: verr.Field}
	}
	var gerr *domain.GeofenceError
	if errors.As(err, &gerr) {
		return http.StatusUnprocessableEntity, errorResponse{Error: gerr.Reason(), Code: codeOutsideGeofence}
	}

	switch {
	case errors.Is(err, domain.ErrRegistrationNotFound):
		return http.StatusNotFound, errorResponse{Error: "Registration not found", Code: codeRegistrationNotFound}
	case errors.Is(err, domain.ErrVenueNotFound):
		return http.StatusNotFound, errorResponse{Error: "Venue not found", Code: codeVenueNotFound}
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, errorResponse{Error: "Invalid id", Code: codeInvalidID}
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return http.StatusBadRequest, errorResponse{Error: "Invalid location coordinates", Code: codeInvalidCoordinates}
	case errors.Is(err, domain.ErrInvalidTimezone):
		return http.StatusBadRequest, errorResponse{Error: "Unknown timezone", Code: codeInvalidTimezone}
	case errors.Is(err, domain.ErrAlreadyActivated):
		return http.StatusConflict, errorResponse{Error: "This guest list entry has already been activated", Code: codeAlreadyActivated}
	case errors.Is(err, domain.ErrRegistrationExpired):
		return http.StatusConflict, errorResponse{Error: "This guest list entry has expired", Code: codeRegistrationExpired}
	case errors.Is(err, domain.ErrVenueInUse):
		return http.StatusConflict, errorResponse{Error: "Venue has registrations and cannot be deleted", Code: codeVenueInUse}
	case errors.Is(err, domain.ErrEventDateMissing):
		return http.StatusUnprocessableEntity, errorResponse{Error: "Event date not found", Code: codeEventDateMissing}
	case errors.Is(err, domain.ErrOutsideActivationWindow):
		return http.StatusUnprocessableEntity, errorResponse{Error: "Activation is only available on the event date between 6 PM and 12 AM", Code: codeOutsideActivationWindow}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Code: codeUnauthorized}
	case errors.Is(err, domain.ErrCodeCollision):
		return http.StatusServiceUnavailable, errorResponse{Error: "Could not complete registration, please try again", Code: codeUnavailable}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal error", Code: codeInternalError}
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, resp := errorFor(err)
	writeErrorResponse(w, status, resp)
}
