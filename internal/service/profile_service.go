package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare/internal/cache"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// profileCacheTTL also bounds staleness when an update's invalidation is
// lost to a Redis outage.
const profileCacheTTL = 5 * time.Minute

// ProfileService reads and updates the caller's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, caller model.Caller) (*model.FlatProfile, error)
	UpdateProfile(ctx context.Context, caller model.Caller, update model.ProfileUpdate) error
}

type profileService struct {
	accountRepo repository.AccountRepository
	profiles    repository.ProfileRepositories
	cache       *cache.Client
}

// NewProfileService builds a ProfileService with repositories and cache.
func NewProfileService(accountRepo repository.AccountRepository, profiles repository.ProfileRepositories, cache *cache.Client) ProfileService {
	return &profileService{accountRepo: accountRepo, profiles: profiles, cache: cache}
}

func (s *profileService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

// GetProfile returns the account merged with its role profile.
func (s *profileService) GetProfile(ctx context.Context, caller model.Caller) (*model.FlatProfile, error) {
	var cached model.FlatProfile
	if s.cache.GetJSON(ctx, s.cacheKey(caller.AccountID), &cached) {
		return &cached, nil
	}

	repo, err := s.profiles.For(caller.Role)
	if err != nil {
		return nil, apperrors.ErrInvalidRole
	}

	account, err := s.accountRepo.FindByID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	profile, err := repo.FindByAccountID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	flat := profile.Flatten(account)
	s.cache.SetJSON(ctx, s.cacheKey(caller.AccountID), flat, profileCacheTTL)
	return &flat, nil
}

// UpdateProfile overwrites the contact fields and drops the cached copy.
func (s *profileService) UpdateProfile(ctx context.Context, caller model.Caller, update model.ProfileUpdate) error {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return apperrors.ErrMissingFields
	}
	update.ContactNumber = optional(update.ContactNumber)
	update.Address = optional(update.Address)

	repo, err := s.profiles.For(caller.Role)
	if err != nil {
		return apperrors.ErrInvalidRole
	}
	if err := repo.Update(ctx, caller.AccountID, update); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(caller.AccountID))
	return nil
}
