package app

import (
	"context"
	"strings"

	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/domain"
)

type VenueRepository interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	CreateVenue(ctx context.Context, venue domain.Venue) error
	UpdateVenue(ctx context.Context, venue domain.Venue) error
	// DeleteVenue returns domain.ErrVenueInUse when events reference the venue.
	DeleteVenue(ctx context.Context, id string) error
}

type RegistrationLister interface {
	ListRegistrations(ctx context.Context, filter domain.RegistrationFilter) ([]domain.RegistrationDetails, error)
	RegistrationStats(ctx context.Context) (domain.RegistrationStats, error)
}

type AdminService struct {
	venues VenueRepository
	regs   RegistrationLister
	clock  clock.Clock
}

func NewAdminService(venues VenueRepository, regs RegistrationLister, clk clock.Clock) *AdminService {
	return &AdminService{
		venues: venues,
		regs:   regs,
		clock:  clk,
	}
}

type VenueInput struct {
	Name          string
	Address       string
	VibeText      string
	Lat           float64
	Lng           float64
	GeofenceMiles *float64
	Timezone      string
}

func (in VenueInput) venue(id string) domain.Venue {
	radius := domain.DefaultGeofenceMiles
	if in.GeofenceMiles != nil {
		radius = *in.GeofenceMiles
	}
	return domain.Venue{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		VibeText:      strings.TrimSpace(in.VibeText),
		Location:      domain.Coordinates{Lat: in.Lat, Lng: in.Lng},
		GeofenceMiles: radius,
		Timezone:      strings.TrimSpace(in.Timezone),
	}
}

func (s *AdminService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.ListVenues(ctx)
}

func (s *AdminService) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	return s.venues.GetVenue(ctx, id)
}

func (s *AdminService) CreateVenue(ctx context.Context, in VenueInput) (domain.Venue, error) {
	venue := in.venue(newID())
	if err := venue.Validate(); err != nil {
		return domain.Venue{}, err
	}
	venue.CreatedAt = s.clock.Now()

	if err := s.venues.CreateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *AdminService) UpdateVenue(ctx context.Context, id string, in VenueInput) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	existing, err := s.venues.GetVenue(ctx, id)
	if err != nil {
		return domain.Venue{}, err
	}

	venue := in.venue(id)
	if err := venue.Validate(); err != nil {
		return domain.Venue{}, err
	}
	venue.CreatedAt = existing.CreatedAt

	if err := s.venues.UpdateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *AdminService) DeleteVenue(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.venues.DeleteVenue(ctx, id)
}

type RegistrationListing struct {
	Registrations []domain.RegistrationDetails
	Stats         domain.RegistrationStats
}

// ListRegistrations returns the filtered registrations, newest first, and
// stats over all registrations.
func (s *AdminService) ListRegistrations(ctx context.Context, filter domain.RegistrationFilter) (RegistrationListing, error) {
	items, err := s.regs.ListRegistrations(ctx, filter)
	if err != nil {
		return RegistrationListing{}, err
	}
	stats, err := s.regs.RegistrationStats(ctx)
	if err != nil {
		return RegistrationListing{}, err
	}
	return RegistrationListing{Registrations: items, Stats: stats}, nil
}
