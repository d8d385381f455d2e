package domain

import (
	"strings"
	"time"
)

type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "REGISTERED"
	StatusActivated  RegistrationStatus = "ACTIVATED"
	StatusExpired    RegistrationStatus = "EXPIRED"
)

// ParseStatus accepts any casing; it returns false for unknown values.
func ParseStatus(s string) (RegistrationStatus, bool) {
	switch st := RegistrationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusRegistered, StatusActivated, StatusExpired:
		return st, true
	default:
		return "", false
	}
}

// Party describes who is coming and what they are interested in.
type Party struct {
	MenCount         *int
	WomenCount       *int
	TotalCount       *int
	BottleService    bool
	BottleBudget     string
	Instagram        string
	InterestLimo     bool
	InterestBoat     bool
	CelebrationType  string
	CelebrationOther string
}

// Activation holds the fields written when a registration is activated.
type Activation struct {
	At             time.Time
	Location       Coordinates
	DistanceMiles  float64
	AccuracyMeters *float64
	ExpiresAt      time.Time
}

// Registration is one attendee's guest-list entry for an event.
type Registration struct {
	ID          string
	EventID     string
	VenueID     string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Party       Party
	VoucherCode string
	QRToken     string
	Status      RegistrationStatus
	Activation  *Activation
	CreatedAt   time.Time
}

// RegistrationDetails is a registration joined with its venue and event.
// Event is nil when the event row is missing.
type RegistrationDetails struct {
	Registration
	Venue Venue
	Event *Event
}

// RegistrationFilter narrows an admin listing.
type RegistrationFilter struct {
	Status RegistrationStatus
	Search string
}

// Matches reports whether d passes the filter. Search is a case-insensitive
// substring match over name, email, phone, voucher code and venue name.
func (f RegistrationFilter) Matches(d RegistrationDetails) bool {
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{d.FirstName, d.LastName, d.Email, d.Phone, d.VoucherCode, d.Venue.Name} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// RegistrationStats are counts over every registration, ignoring filters.
type RegistrationStats struct {
	Total      int
	Registered int
	Activated  int
	Expired    int
}

func (s *RegistrationStats) Add(status RegistrationStatus) {
	s.Total++
	switch status {
	case StatusRegistered:
		s.Registered++
	case StatusActivated:
		s.Activated++
	case StatusExpired:
		s.Expired++
	}
}
