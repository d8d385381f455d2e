package app

import (
	"context"
	"time"

	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/domain"
)

type ActivationRepository interface {
	FindByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error)
	// Activate writes act only if the registration is still REGISTERED. When
	// the guard fails it returns domain.ErrAlreadyActivated or
	// domain.ErrRegistrationExpired depending on the current status.
	Activate(ctx context.Context, registrationID string, act domain.Activation) error
}

type ActivationService struct {
	repo  ActivationRepository
	clock clock.Clock
	loc   *time.Location
}

func NewActivationService(repo ActivationRepository, clk clock.Clock, opts ...ActivationServiceOption) *ActivationService {
	svc := &ActivationService{
		repo:  repo,
		clock: clk,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ActivationServiceOption func(*ActivationService)

// WithVenueTimezone sets the timezone used for venues that do not define one.
func WithVenueTimezone(loc *time.Location) ActivationServiceOption {
	return func(s *ActivationService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type ActivateInput struct {
	QRToken        string
	Lat            float64
	Lng            float64
	AccuracyMeters *float64
}

type ActivateResult struct {
	Registration domain.RegistrationDetails
	Activation   domain.Activation
}

func (s *ActivationService) Activate(ctx context.Context, in ActivateInput) (ActivateResult, error) {
	if in.QRToken == "" {
		return ActivateResult{}, domain.ErrRegistrationNotFound
	}

	details, err := s.repo.FindByQRToken(ctx, in.QRToken)
	if err != nil {
		return ActivateResult{}, err
	}

	act, err := domain.CheckActivation(details, domain.ActivationAttempt{
		Location:       domain.Coordinates{Lat: in.Lat, Lng: in.Lng},
		AccuracyMeters: in.AccuracyMeters,
		Now:            s.clock.Now(),
	}, s.loc)
	if err != nil {
		return ActivateResult{}, err
	}

	if err := s.repo.Activate(ctx, details.ID, act); err != nil {
		return ActivateResult{}, err
	}

	details.Status = domain.StatusActivated
	details.Activation = &act
	return ActivateResult{Registration: details, Activation: act}, nil
}
