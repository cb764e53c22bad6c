package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodshare/internal/blob"
	"foodshare/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockBlobStore is a mock implementation of blob.Store.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, upload blob.Upload) (*blob.Object, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.Object), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

func createAccount(t *testing.T, db *gorm.DB, role model.Role, name string) model.Caller {
	t.Helper()
	account := &model.Account{Email: name + "@" + string(role) + ".test", PasswordHash: "x", Role: role, Status: model.AccountStatusApproved}
	require.NoError(t, db.Create(account).Error)
	if role == model.RoleRestaurant {
		require.NoError(t, db.Create(&model.RestaurantProfile{AccountID: account.ID, Name: name}).Error)
	} else {
		require.NoError(t, db.Create(&model.NGOProfile{AccountID: account.ID, Name: name}).Error)
	}
	return model.Caller{AccountID: account.ID, Role: role}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func ngoCaller() model.Caller {
	return model.Caller{AccountID: uuid.New(), Role: model.RoleNGO}
}

func validDonation() CreateDonationInput {
	return CreateDonationInput{
		Title:          "Bread",
		Quantity:       decimal.NewFromInt(3),
		QuantityUnit:   "loaves",
		ExpiryTime:     time.Now().Add(time.Hour),
		PickupLocation: "Front counter",
	}
}
