package app

import (
	"context"
	"strings"

	"github.com/cimillas/guestlist/internal/domain"
)

type LookupRepository interface {
	FindByVoucherCode(ctx context.Context, code string) (domain.RegistrationDetails, error)
	FindByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error)
}

// LookupService backs the confirmation and activation pages.
type LookupService struct {
	repo LookupRepository
}

func NewLookupService(repo LookupRepository) *LookupService {
	return &LookupService{repo: repo}
}

// ByVoucherCode is case-insensitive since codes are typed by hand.
func (s *LookupService) ByVoucherCode(ctx context.Context, code string) (domain.RegistrationDetails, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
	}
	return s.repo.FindByVoucherCode(ctx, code)
}

func (s *LookupService) ByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error) {
	if token == "" {
		return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
	}
	return s.repo.FindByQRToken(ctx, token)
}
