package domain

import (
	"strings"
	"time"
)

// DefaultGeofenceMiles is used when a venue is created without a radius.
const DefaultGeofenceMiles = 0.5

// Venue is a club location with the geofence attendees must be inside to activate.
type Venue struct {
	ID            string
	Name          string
	Address       string
	VibeText      string
	Location      Coordinates
	GeofenceMiles float64
	Timezone      string
	CreatedAt     time.Time
}

// Validate checks the admin-editable fields.
func (v Venue) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return invalid("name", "Venue name is required")
	}
	if err := v.Location.Validate(); err != nil {
		return invalid("location", "Latitude must be between -90 and 90 and longitude between -180 and 180")
	}
	if !(v.GeofenceMiles > 0) {
		return invalid("geofence_miles", "Geofence radius must be greater than zero")
	}
	if v.Timezone != "" {
		if _, err := time.LoadLocation(v.Timezone); err != nil {
			return ErrInvalidTimezone
		}
	}
	return nil
}

// Loc resolves the venue timezone, falling back when unset or unknown.
func (v Venue) Loc(fallback *time.Location) *time.Location {
	if v.Timezone != "" {
		if loc, err := time.LoadLocation(v.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}
