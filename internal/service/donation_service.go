package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodshare/internal/blob"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/metrics"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

const blobCleanupTimeout = 10 * time.Second

// CreateDonationInput carries the immutable facts of a new donation.
type CreateDonationInput struct {
	Title          string
	Category       string
	Quantity       decimal.Decimal
	QuantityUnit   string
	ExpiryTime     time.Time
	PickupLocation string
	Image          *blob.Upload
}

// DonationService owns the donation lifecycle.
type DonationService interface {
	Create(ctx context.Context, caller model.Caller, in CreateDonationInput) (*model.Donation, error)
	Get(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Donation, error)
	ListClaimable(ctx context.Context, caller model.Caller) ([]model.ClaimableDonation, error)
	ListPosted(ctx context.Context, caller model.Caller) ([]model.Donation, error)
	ListClaimed(ctx context.Context, caller model.Caller) ([]model.Donation, error)

	Claim(ctx context.Context, caller model.Caller, id uuid.UUID) error
	MarkInTransit(ctx context.Context, caller model.Caller, id uuid.UUID) error
	CompletePickup(ctx context.Context, caller model.Caller, id uuid.UUID) error
}

type donationService struct {
	donationRepo repository.DonationRepository
	profiles     repository.ProfileRepositories
	blobs        blob.Store
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewDonationService creates a new donation service.
func NewDonationService(
	donationRepo repository.DonationRepository,
	profiles repository.ProfileRepositories,
	blobs blob.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		profiles:     profiles,
		blobs:        blobs,
		metrics:      m,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create stores the optional image first, then inserts the donation as pending.
// If the insert fails the stored image is deleted again.
func (s *donationService) Create(ctx context.Context, caller model.Caller, in CreateDonationInput) (*model.Donation, error) {
	if !caller.Is(model.RoleRestaurant) {
		return nil, apperrors.ErrRoleForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	in.PickupLocation = strings.TrimSpace(in.PickupLocation)
	if in.Title == "" || in.Quantity.IsZero() || in.ExpiryTime.IsZero() || in.PickupLocation == "" {
		return nil, apperrors.ErrMissingFields
	}
	if in.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidInput)
	}

	if _, err := s.profiles.Restaurant.FindByAccountID(ctx, caller.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoProfile
		}
		return nil, fmt.Errorf("find restaurant profile: %w", err)
	}

	donation := &model.Donation{
		ID:             uuid.New(),
		RestaurantID:   caller.AccountID,
		Title:          in.Title,
		Category:       strings.TrimSpace(in.Category),
		Quantity:       in.Quantity,
		QuantityUnit:   strings.TrimSpace(in.QuantityUnit),
		ExpiryTime:     in.ExpiryTime.UTC(),
		PickupLocation: in.PickupLocation,
		Status:         model.DonationStatusPending,
		PostedAt:       s.now(),
	}

	var stored *blob.Object
	if in.Image != nil {
		obj, err := s.blobs.Upload(ctx, *in.Image)
		if err != nil {
			s.logger.ErrorContext(ctx, "image upload failed", "restaurant_id", caller.AccountID, "error", err)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
		}
		stored = obj
		donation.ImageURL = &obj.URL
		donation.ImageHandle = &obj.Handle
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		if stored != nil {
			// The request context may already be cancelled; cleanup runs detached.
			cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), blobCleanupTimeout)
			derr := s.blobs.Delete(cctx, stored.Handle)
			cancel()
			if derr != nil {
				s.logger.ErrorContext(ctx, "orphaned image after failed insert", "handle", stored.Handle, "error", derr)
			}
		}
		return nil, fmt.Errorf("create donation: %w", err)
	}

	s.metrics.IncrementDonationsCreated()
	return donation, nil
}

// Get returns a donation to its restaurant or its claiming NGO.
func (s *donationService) Get(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}

	switch {
	case caller.Is(model.RoleRestaurant) && donation.RestaurantID == caller.AccountID:
	case caller.Is(model.RoleNGO) && (donation.ClaimedBy(caller.AccountID) || donation.Status == model.DonationStatusPending):
	default:
		return nil, apperrors.ErrRoleForbidden
	}
	return donation, nil
}

// ListClaimable returns every pending donation, newest first.
func (s *donationService) ListClaimable(ctx context.Context, caller model.Caller) ([]model.ClaimableDonation, error) {
	if !caller.Is(model.RoleNGO) {
		return nil, apperrors.ErrRoleForbidden
	}
	donations, err := s.donationRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending donations: %w", err)
	}
	return donations, nil
}

// ListPosted returns the caller restaurant's donations in any status.
func (s *donationService) ListPosted(ctx context.Context, caller model.Caller) ([]model.Donation, error) {
	if !caller.Is(model.RoleRestaurant) {
		return nil, apperrors.ErrRoleForbidden
	}
	donations, err := s.donationRepo.ListByRestaurant(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list posted donations: %w", err)
	}
	return donations, nil
}

// ListClaimed returns the donations the caller NGO has claimed.
func (s *donationService) ListClaimed(ctx context.Context, caller model.Caller) ([]model.Donation, error) {
	if !caller.Is(model.RoleNGO) {
		return nil, apperrors.ErrRoleForbidden
	}
	donations, err := s.donationRepo.ListByNGO(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list claimed donations: %w", err)
	}
	return donations, nil
}

// Claim takes a pending donation for the caller NGO. Losing the race is
// reported as ErrDonationUnavailable and never retried here.
func (s *donationService) Claim(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	if !caller.Is(model.RoleNGO) {
		return apperrors.ErrRoleForbidden
	}
	profile, err := s.profiles.NGO.FindByAccountID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoProfile
		}
		return fmt.Errorf("find ngo profile: %w", err)
	}

	ok, err := s.donationRepo.Claim(ctx, id, caller.AccountID, profile.DisplayName(), s.now())
	if err != nil {
		return fmt.Errorf("claim donation: %w", err)
	}
	if !ok {
		s.metrics.IncrementClaim(metrics.ClaimLost)
		s.logger.InfoContext(ctx, "claim lost", "donation_id", id, "ngo_id", caller.AccountID)
		return apperrors.ErrDonationUnavailable
	}

	s.metrics.IncrementClaim(metrics.ClaimWon)
	s.metrics.IncrementTransition(string(model.DonationStatusAccepted))
	return nil
}

// MarkInTransit moves a donation the caller holds from accepted to in_transit.
func (s *donationService) MarkInTransit(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	return s.advance(ctx, caller, id, model.DonationStatusInTransit, s.donationRepo.MarkInTransit)
}

// CompletePickup moves a donation the caller holds to picked_up.
func (s *donationService) CompletePickup(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	return s.advance(ctx, caller, id, model.DonationStatusPickedUp, s.donationRepo.MarkPickedUp)
}

func (s *donationService) advance(
	ctx context.Context,
	caller model.Caller,
	id uuid.UUID,
	target model.DonationStatus,
	write func(ctx context.Context, id, ngoID uuid.UUID, at time.Time) (bool, error),
) error {
	if !caller.Is(model.RoleNGO) {
		return apperrors.ErrRoleForbidden
	}
	ok, err := write(ctx, id, caller.AccountID, s.now())
	if err != nil {
		return fmt.Errorf("mark donation %s: %w", target, err)
	}
	if !ok {
		return apperrors.ErrInvalidTransition
	}
	s.metrics.IncrementTransition(string(target))
	return nil
}
