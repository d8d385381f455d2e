package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for event dates.
const DateLayout = "2006-01-02"

// Event is one night at a venue. There is at most one per (venue, date).
type Event struct {
	ID        string
	VenueID   string
	Date      time.Time
	Title     string
	CreatedAt time.Time
}

// ParseDate parses a calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}
