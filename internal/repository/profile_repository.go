package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare/internal/model"
)

// ProfileRepository persists one profile variant. There is exactly one
// implementation per model.Role.
type ProfileRepository interface {
	Role() model.Role
	Create(ctx context.Context, profile model.Profile) error
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (model.Profile, error)
	Update(ctx context.Context, accountID uuid.UUID, update model.ProfileUpdate) error
}

// ProfileRepositories selects the repository for a role.
type ProfileRepositories struct {
	Restaurant ProfileRepository
	NGO        ProfileRepository
}

// NewProfileRepositories builds both variant repositories over db.
func NewProfileRepositories(db *gorm.DB) ProfileRepositories {
	return ProfileRepositories{
		Restaurant: &restaurantProfileRepository{db: db},
		NGO:        &ngoProfileRepository{db: db},
	}
}

// For returns the repository responsible for role.
func (p ProfileRepositories) For(role model.Role) (ProfileRepository, error) {
	switch role {
	case model.RoleRestaurant:
		return p.Restaurant, nil
	case model.RoleNGO:
		return p.NGO, nil
	default:
		return nil, fmt.Errorf("no profile repository for role %q", role)
	}
}

func updateColumns(update model.ProfileUpdate) map[string]interface{} {
	return map[string]interface{}{
		"name":           update.Name,
		"contact_number": update.ContactNumber,
		"address":        update.Address,
	}
}

// updateProfile returns gorm.ErrRecordNotFound when accountID has no row.
// MySQL reports unchanged rows as unaffected, so a zero count is confirmed
// with a lookup before it is treated as missing.
func updateProfile(db *gorm.DB, table interface{}, accountID uuid.UUID, update model.ProfileUpdate) error {
	result := db.Model(table).Where("account_id = ?", accountID).Updates(updateColumns(update))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := db.Model(table).Where("account_id = ?", accountID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type restaurantProfileRepository struct {
	db *gorm.DB
}

func (r *restaurantProfileRepository) Role() model.Role { return model.RoleRestaurant }

func (r *restaurantProfileRepository) Create(ctx context.Context, profile model.Profile) error {
	p, ok := profile.(*model.RestaurantProfile)
	if !ok {
		return fmt.Errorf("restaurant repository cannot store %T", profile)
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *restaurantProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (model.Profile, error) {
	var p model.RestaurantProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *restaurantProfileRepository) Update(ctx context.Context, accountID uuid.UUID, update model.ProfileUpdate) error {
	return updateProfile(r.db.WithContext(ctx), &model.RestaurantProfile{}, accountID, update)
}

type ngoProfileRepository struct {
	db *gorm.DB
}

func (r *ngoProfileRepository) Role() model.Role { return model.RoleNGO }

func (r *ngoProfileRepository) Create(ctx context.Context, profile model.Profile) error {
	p, ok := profile.(*model.NGOProfile)
	if !ok {
		return fmt.Errorf("ngo repository cannot store %T", profile)
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ngoProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (model.Profile, error) {
	var p model.NGOProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ngoProfileRepository) Update(ctx context.Context, accountID uuid.UUID, update model.ProfileUpdate) error {
	return updateProfile(r.db.WithContext(ctx), &model.NGOProfile{}, accountID, update)
}
