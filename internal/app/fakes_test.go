package app

import (
	"context"
	"sort"
	"sync"

	"github.com/cimillas/guestlist/internal/domain"
)

// fakeStore is an in-memory record store with the same guarantees as the
// SQL repositories: unique codes, one event per (venue, date) and a
// status-guarded activation write.
type fakeStore struct {
	mu            sync.Mutex
	venues        map[string]domain.Venue
	events        map[string]domain.Event
	registrations map[string]domain.Registration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:        make(map[string]domain.Venue),
		events:        make(map[string]domain.Event),
		registrations: make(map[string]domain.Registration),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) EnsureEvent(_ context.Context, candidate domain.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.venues[candidate.VenueID]; !ok {
		return "", domain.ErrVenueNotFound
	}
	for _, ev := range f.events {
		if ev.VenueID == candidate.VenueID && ev.Date.Equal(candidate.Date) {
			return ev.ID, nil
		}
	}
	f.events[candidate.ID] = candidate
	return candidate.ID, nil
}

func (f *fakeStore) CreateRegistration(_ context.Context, reg domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.registrations {
		if existing.VoucherCode == reg.VoucherCode || existing.QRToken == reg.QRToken {
			return domain.ErrCodeCollision
		}
	}
	f.registrations[reg.ID] = reg
	return nil
}

func (f *fakeStore) details(reg domain.Registration) domain.RegistrationDetails {
	d := domain.RegistrationDetails{Registration: reg, Venue: f.venues[reg.VenueID]}
	if ev, ok := f.events[reg.EventID]; ok {
		ev := ev
		d.Event = &ev
	}
	return d
}

func (f *fakeStore) FindByQRToken(_ context.Context, token string) (domain.RegistrationDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reg := range f.registrations {
		if reg.QRToken == token {
			return f.details(reg), nil
		}
	}
	return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
}

func (f *fakeStore) FindByVoucherCode(_ context.Context, code string) (domain.RegistrationDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reg := range f.registrations {
		if reg.VoucherCode == code {
			return f.details(reg), nil
		}
	}
	return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
}

func (f *fakeStore) Activate(_ context.Context, id string, act domain.Activation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reg, ok := f.registrations[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	switch reg.Status {
	case domain.StatusRegistered:
	case domain.StatusActivated:
		return domain.ErrAlreadyActivated
	default:
		return domain.ErrRegistrationExpired
	}
	reg.Status = domain.StatusActivated
	reg.Activation = &act
	f.registrations[id] = reg
	return nil
}

func (f *fakeStore) ListVenues(_ context.Context) ([]domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetVenue(_ context.Context, id string) (domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.venues[id]
	if !ok {
		return domain.Venue{}, domain.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeStore) CreateVenue(_ context.Context, venue domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeStore) UpdateVenue(_ context.Context, venue domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.venues[venue.ID]; !ok {
		return domain.ErrVenueNotFound
	}
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeStore) DeleteVenue(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.venues[id]; !ok {
		return domain.ErrVenueNotFound
	}
	for _, ev := range f.events {
		if ev.VenueID == id {
			return domain.ErrVenueInUse
		}
	}
	delete(f.venues, id)
	return nil
}

func (f *fakeStore) ListRegistrations(_ context.Context, filter domain.RegistrationFilter) ([]domain.RegistrationDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.RegistrationDetails
	for _, reg := range f.registrations {
		d := f.details(reg)
		if filter.Matches(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) RegistrationStats(_ context.Context) (domain.RegistrationStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stats domain.RegistrationStats
	for _, reg := range f.registrations {
		stats.Add(reg.Status)
	}
	return stats, nil
}
