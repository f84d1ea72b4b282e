package service

import (
	"context"
	"strings"

	"github.com/tranqh/finbot/internal/domain"
)

// IdentityService maps external chat handles to ledger users
type IdentityService struct {
	userRepo domain.UserRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(userRepo domain.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Resolve returns the user for the given handle, creating one with a zero
// balance on first sight. An empty handle fails with ErrInvalidIdentity.
// Repeated and concurrent calls with the same handle resolve to the same row.
func (s *IdentityService) Resolve(ctx context.Context, handle string) (*domain.User, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, domain.ErrInvalidIdentity
	}
	return s.userRepo.CreateOrGetByHandle(ctx, handle)
}
