package app

import (
	"context"
	"errors"

	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/domain"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// EnsureEvent inserts candidate unless an event already exists for its
	// (venue, date) and returns the stored event ID either way.
	EnsureEvent(ctx context.Context, candidate domain.Event) (string, error)
	// CreateRegistration returns domain.ErrCodeCollision when the voucher code
	// or QR token is already taken.
	CreateRegistration(ctx context.Context, reg domain.Registration) error
}

type RegistrationService struct {
	repo        RegistrationRepository
	clock       clock.Clock
	codes       CodeGenerator
	maxAttempts int
}

const defaultCodeAttempts = 5

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock, opts ...RegistrationServiceOption) *RegistrationService {
	svc := &RegistrationService{
		repo:        repo,
		clock:       clk,
		codes:       defaultCodes,
		maxAttempts: defaultCodeAttempts,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RegistrationServiceOption func(*RegistrationService)

// WithCodeGenerator replaces the voucher/token source.
func WithCodeGenerator(gen CodeGenerator) RegistrationServiceOption {
	return func(s *RegistrationService) {
		if gen != nil {
			s.codes = gen
		}
	}
}

// WithCodeAttempts bounds how many fresh code pairs are tried on collision.
func WithCodeAttempts(n int) RegistrationServiceOption {
	return func(s *RegistrationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// Register validates the form through every step, resolves the event for
// (venue, date) and stores a REGISTERED entry with fresh codes.
func (s *RegistrationService) Register(ctx context.Context, form domain.RegistrationForm) (domain.Registration, error) {
	signup, err := form.Complete()
	if err != nil {
		return domain.Registration{}, err
	}

	now := s.clock.Now()
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		voucher, token, err := s.codes(now)
		if err != nil {
			return domain.Registration{}, err
		}

		reg := domain.Registration{
			ID:          newID(),
			VenueID:     signup.VenueID,
			FirstName:   signup.FirstName,
			LastName:    signup.LastName,
			Email:       signup.Email,
			Phone:       signup.Phone,
			Party:       signup.Party,
			VoucherCode: voucher,
			QRToken:     token,
			Status:      domain.StatusRegistered,
			CreatedAt:   now,
		}

		err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
			eventID, err := s.repo.EnsureEvent(txCtx, domain.Event{
				ID:        newID(),
				VenueID:   signup.VenueID,
				Date:      signup.EventDate,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
			reg.EventID = eventID
			return s.repo.CreateRegistration(txCtx, reg)
		})
		if errors.Is(err, domain.ErrCodeCollision) {
			continue
		}
		if err != nil {
			return domain.Registration{}, err
		}
		return reg, nil
	}
	return domain.Registration{}, domain.ErrCodeCollision
}

// ValidateStep checks a single form step without persisting anything.
func (s *RegistrationService) ValidateStep(form domain.RegistrationForm, step domain.FormStep) error {
	return form.ValidateStep(step)
}
