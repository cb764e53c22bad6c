package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodshare/internal/model"
)

func seedRestaurant(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	account := &model.Account{Email: name + "@restaurant.test", PasswordHash: "x", Role: model.RoleRestaurant, Status: model.AccountStatusApproved}
	require.NoError(t, db.Create(account).Error)
	require.NoError(t, db.Create(&model.RestaurantProfile{AccountID: account.ID, Name: name}).Error)
	return account.ID
}

func seedNGO(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	account := &model.Account{Email: name + "@ngo.test", PasswordHash: "x", Role: model.RoleNGO, Status: model.AccountStatusApproved}
	require.NoError(t, db.Create(account).Error)
	require.NoError(t, db.Create(&model.NGOProfile{AccountID: account.ID, Name: name}).Error)
	return account.ID
}

func seedDonation(t *testing.T, repo DonationRepository, restaurantID uuid.UUID, postedAt time.Time) *model.Donation {
	t.Helper()
	d := &model.Donation{
		RestaurantID:   restaurantID,
		Title:          "Rice trays",
		Category:       "cooked",
		Quantity:       decimal.NewFromInt(12),
		ExpiryTime:     postedAt.Add(6 * time.Hour),
		PickupLocation: "Back door",
		Status:         model.DonationStatusPending,
		PostedAt:       postedAt,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}
