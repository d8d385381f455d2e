package domain

import "time"

// ActivationTTL is how long an activated entry stays valid at the door.
const ActivationTTL = 2 * time.Hour

// ActivationAttempt is what the attendee's device reports at the venue.
type ActivationAttempt struct {
	Location       Coordinates
	AccuracyMeters *float64
	Now            time.Time
}

// CheckActivation runs the activation preconditions in order and returns the
// fields to persist. It does not touch storage; the caller must commit the
// result with a conditional write guarded on StatusRegistered.
func CheckActivation(d RegistrationDetails, a ActivationAttempt, fallback *time.Location) (Activation, error) {
	switch d.Status {
	case StatusRegistered:
	case StatusActivated:
		return Activation{}, ErrAlreadyActivated
	default:
		return Activation{}, ErrRegistrationExpired
	}

	if d.Event == nil || d.Event.Date.IsZero() {
		return Activation{}, ErrEventDateMissing
	}
	if !WindowFor(d.Event.Date, d.Venue.Loc(fallback)).Contains(a.Now) {
		return Activation{}, ErrOutsideActivationWindow
	}

	if err := a.Location.Validate(); err != nil {
		return Activation{}, err
	}
	distance, ok := WithinGeofence(a.Location, d.Venue.Location, d.Venue.GeofenceMiles)
	if !ok {
		return Activation{}, &GeofenceError{
			VenueName:     d.Venue.Name,
			RadiusMiles:   d.Venue.GeofenceMiles,
			DistanceMiles: distance,
		}
	}

	return Activation{
		At:             a.Now,
		Location:       a.Location,
		DistanceMiles:  distance,
		AccuracyMeters: a.AccuracyMeters,
		ExpiresAt:      a.Now.Add(ActivationTTL),
	}, nil
}
