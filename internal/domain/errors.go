package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidID               = errors.New("invalid id")
	ErrVenueNotFound           = errors.New("venue not found")
	ErrVenueInUse              = errors.New("venue has events or registrations")
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrAlreadyActivated        = errors.New("registration already activated")
	ErrRegistrationExpired     = errors.New("registration expired")
	ErrEventDateMissing        = errors.New("event date not found")
	ErrOutsideActivationWindow = errors.New("outside activation window")
	ErrInvalidCoordinates      = errors.New("invalid coordinates")
	ErrInvalidTimezone         = errors.New("invalid timezone")
	ErrCodeCollision           = errors.New("voucher code or qr token collision")
	ErrUnauthorized            = errors.New("unauthorized")
)

// ValidationError reports a single user-correctable input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// GeofenceError is returned when an activation attempt is made too far from the venue.
type GeofenceError struct {
	VenueName     string
	RadiusMiles   float64
	DistanceMiles float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("outside geofence: %.2f miles from %s (limit %s)", e.DistanceMiles, e.VenueName, formatMiles(e.RadiusMiles))
}

// Reason is the message shown to the attendee.
func (e *GeofenceError) Reason() string {
	return fmt.Sprintf(
		"You must be within %s mile(s) of %s to activate. You are currently %.2f miles away.",
		formatMiles(e.RadiusMiles), e.VenueName, e.DistanceMiles,
	)
}

func formatMiles(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
