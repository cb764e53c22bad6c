package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// StatsService computes dashboard counters on demand. Each counter is its own
// query; counts taken a moment apart may disagree slightly.
type StatsService interface {
	Dashboard(ctx context.Context, caller model.Caller) (interface{}, error)
	RestaurantStats(ctx context.Context, restaurantID uuid.UUID) (*model.RestaurantStats, error)
	NGOStats(ctx context.Context, ngoID uuid.UUID) (*model.NGOStats, error)
}

type statsService struct {
	donationRepo repository.DonationRepository
	profiles     repository.ProfileRepositories
}

// NewStatsService creates a new stats service.
func NewStatsService(donationRepo repository.DonationRepository, profiles repository.ProfileRepositories) StatsService {
	return &statsService{donationRepo: donationRepo, profiles: profiles}
}

// Dashboard returns the counters for the caller's role.
func (s *statsService) Dashboard(ctx context.Context, caller model.Caller) (interface{}, error) {
	switch caller.Role {
	case model.RoleRestaurant:
		return s.RestaurantStats(ctx, caller.AccountID)
	case model.RoleNGO:
		return s.NGOStats(ctx, caller.AccountID)
	default:
		return nil, apperrors.ErrInvalidRole
	}
}

func (s *statsService) RestaurantStats(ctx context.Context, restaurantID uuid.UUID) (*model.RestaurantStats, error) {
	if _, err := s.profiles.Restaurant.FindByAccountID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find restaurant profile: %w", err)
	}

	var (
		stats model.RestaurantStats
		err   error
	)
	if stats.TotalDonationsPosted, err = s.donationRepo.CountByRestaurant(ctx, restaurantID); err != nil {
		return nil, fmt.Errorf("count posted: %w", err)
	}
	if stats.TotalPickupsCompleted, err = s.donationRepo.CountByRestaurant(ctx, restaurantID, model.DonationStatusPickedUp); err != nil {
		return nil, fmt.Errorf("count picked up: %w", err)
	}
	if stats.TotalPendingOrders, err = s.donationRepo.CountByRestaurant(ctx, restaurantID, model.DonationStatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	return &stats, nil
}

func (s *statsService) NGOStats(ctx context.Context, ngoID uuid.UUID) (*model.NGOStats, error) {
	var (
		stats model.NGOStats
		err   error
	)
	if stats.NGOPickupsCompleted, err = s.donationRepo.CountByNGO(ctx, ngoID, model.DonationStatusPickedUp); err != nil {
		return nil, fmt.Errorf("count picked up: %w", err)
	}
	if stats.ActivePickups, err = s.donationRepo.CountByNGO(ctx, ngoID, model.DonationStatusAccepted, model.DonationStatusInTransit); err != nil {
		return nil, fmt.Errorf("count active: %w", err)
	}
	if stats.OverallPendingDonations, err = s.donationRepo.CountByStatus(ctx, model.DonationStatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	return &stats, nil
}
