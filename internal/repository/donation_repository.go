package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare/internal/model"
)

// DonationRepository defines donation persistence operations. Every status
// change is a single guarded UPDATE: the predicate on the current state and
// the write happen in one statement, and a false return means the guard
// matched no row.
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	ListPending(ctx context.Context) ([]model.ClaimableDonation, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.Donation, error)
	ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]model.Donation, error)

	Claim(ctx context.Context, id, ngoID uuid.UUID, ngoName string, at time.Time) (bool, error)
	MarkInTransit(ctx context.Context, id, ngoID uuid.UUID, at time.Time) (bool, error)
	MarkPickedUp(ctx context.Context, id, ngoID uuid.UUID, at time.Time) (bool, error)

	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID, statuses ...model.DonationStatus) (int64, error)
	CountByNGO(ctx context.Context, ngoID uuid.UUID, statuses ...model.DonationStatus) (int64, error)
	CountByStatus(ctx context.Context, statuses ...model.DonationStatus) (int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository.
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create creates a new donation record.
func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Omit("Restaurant").Create(donation).Error
}

// FindByID finds a donation by ID.
func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// ListPending returns unclaimed donations with their restaurant's name, newest first.
func (r *donationRepository) ListPending(ctx context.Context) ([]model.ClaimableDonation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).
		Joins("Restaurant").
		Where("donations.status = ?", model.DonationStatusPending).
		Order("donations.posted_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}

	out := make([]model.ClaimableDonation, 0, len(donations))
	for _, d := range donations {
		out = append(out, model.ClaimableDonation{Donation: d, RestaurantName: d.Restaurant.Name})
	}
	return out, nil
}

// ListByRestaurant returns every donation a restaurant posted, newest first.
func (r *donationRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("posted_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListByNGO returns every donation an NGO claimed, most recently accepted first.
func (r *donationRepository) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).
		Where("ngo_id = ?", ngoID).
		Order("accepted_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Claim moves a pending donation to accepted for ngoID.
func (r *donationRepository) Claim(ctx context.Context, id, ngoID uuid.UUID, ngoName string, at time.Time) (bool, error) {
	return guardedUpdate(
		r.db.WithContext(ctx).Model(&model.Donation{}).
			Where("id = ? AND status = ?", id, model.DonationStatusPending),
		map[string]interface{}{
			"status":      model.DonationStatusAccepted,
			"ngo_id":      ngoID,
			"ngo_name":    ngoName,
			"accepted_at": at,
		})
}

// MarkInTransit moves an accepted donation held by ngoID to in_transit.
func (r *donationRepository) MarkInTransit(ctx context.Context, id, ngoID uuid.UUID, at time.Time) (bool, error) {
	return guardedUpdate(
		r.db.WithContext(ctx).Model(&model.Donation{}).
			Where("id = ? AND ngo_id = ? AND status IN ?", id, ngoID, model.SourcesFor(model.DonationStatusInTransit)),
		map[string]interface{}{
			"status":        model.DonationStatusInTransit,
			"in_transit_at": at,
		})
}

// MarkPickedUp moves an accepted or in_transit donation held by ngoID to picked_up.
func (r *donationRepository) MarkPickedUp(ctx context.Context, id, ngoID uuid.UUID, at time.Time) (bool, error) {
	return guardedUpdate(
		r.db.WithContext(ctx).Model(&model.Donation{}).
			Where("id = ? AND ngo_id = ? AND status IN ?", id, ngoID, model.SourcesFor(model.DonationStatusPickedUp)),
		map[string]interface{}{
			"status":       model.DonationStatusPickedUp,
			"picked_up_at": at,
		})
}

// guardedUpdate reports whether exactly one row satisfied the WHERE guard.
func guardedUpdate(scoped *gorm.DB, values map[string]interface{}) (bool, error) {
	res := scoped.Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *donationRepository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID, statuses ...model.DonationStatus) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&model.Donation{}).Where("restaurant_id = ?", restaurantID), statuses)
}

func (r *donationRepository) CountByNGO(ctx context.Context, ngoID uuid.UUID, statuses ...model.DonationStatus) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&model.Donation{}).Where("ngo_id = ?", ngoID), statuses)
}

func (r *donationRepository) CountByStatus(ctx context.Context, statuses ...model.DonationStatus) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&model.Donation{}), statuses)
}

// count applies an optional status filter; no statuses means all rows in scope.
func (r *donationRepository) count(scoped *gorm.DB, statuses []model.DonationStatus) (int64, error) {
	if len(statuses) > 0 {
		scoped = scoped.Where("status IN ?", statuses)
	}
	var n int64
	if err := scoped.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
