package domain

import "time"

// ActivationWindow is the inclusive range during which entry may be activated.
type ActivationWindow struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns 18:00:00.000 through 23:59:59.999 on eventDate in loc.
func WindowFor(eventDate time.Time, loc *time.Location) ActivationWindow {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := eventDate.Date()
	return ActivationWindow{
		Start: time.Date(y, m, d, 18, 0, 0, 0, loc),
		End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

func (w ActivationWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
