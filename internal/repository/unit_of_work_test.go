package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodshare/internal/db"
	"foodshare/internal/db/dbtest"
	"foodshare/internal/model"
)

func registerInTx(ctx context.Context, uow UnitOfWork, account *model.Account, profile func(*model.Account) model.Profile) error {
	return uow.WithTransaction(ctx, func(ctx context.Context, repos TxRepositories) error {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return err
		}
		profiles, err := repos.Profiles.For(account.Role)
		if err != nil {
			return err
		}
		return profiles.Create(ctx, profile(account))
	})
}

func countRows(t *testing.T, gormDB *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gormDB.Model(m).Count(&n).Error)
	return n
}

func TestUnitOfWork_CommitsBothRows(t *testing.T) {
	gormDB := dbtest.New(t)
	uow := NewUnitOfWork(gormDB)

	account := &model.Account{Email: "a@ngo.test", PasswordHash: "x", Role: model.RoleNGO, Status: model.AccountStatusPending}
	err := registerInTx(context.Background(), uow, account, func(a *model.Account) model.Profile {
		return &model.NGOProfile{AccountID: a.ID, Name: "Helpers"}
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, gormDB, &model.Account{}))
	assert.EqualValues(t, 1, countRows(t, gormDB, &model.NGOProfile{}))
}

func TestUnitOfWork_RollsBackWhenProfileInsertFails(t *testing.T) {
	gormDB := dbtest.New(t)
	injected := errors.New("injected profile failure")
	require.NoError(t, gormDB.Callback().Create().Before("gorm:create").Register("test:fail_profile", func(tx *gorm.DB) {
		if tx.Statement.Table == "ngo_profiles" {
			_ = tx.AddError(injected)
		}
	}))
	uow := NewUnitOfWork(gormDB)

	account := &model.Account{Email: "b@ngo.test", PasswordHash: "x", Role: model.RoleNGO, Status: model.AccountStatusPending}
	err := registerInTx(context.Background(), uow, account, func(a *model.Account) model.Profile {
		return &model.NGOProfile{AccountID: a.ID, Name: "Helpers"}
	})
	require.ErrorIs(t, err, injected)

	assert.EqualValues(t, 0, countRows(t, gormDB, &model.Account{}))
	assert.EqualValues(t, 0, countRows(t, gormDB, &model.NGOProfile{}))
}

func TestUnitOfWork_DuplicateEmailLeavesNoRows(t *testing.T) {
	gormDB := dbtest.New(t)
	uow := NewUnitOfWork(gormDB)
	ctx := context.Background()

	restaurant := func(a *model.Account) model.Profile {
		return &model.RestaurantProfile{AccountID: a.ID, Name: "Bistro"}
	}
	first := &model.Account{Email: "dup@test", PasswordHash: "x", Role: model.RoleRestaurant, Status: model.AccountStatusPending}
	require.NoError(t, registerInTx(ctx, uow, first, restaurant))

	second := &model.Account{Email: "dup@test", PasswordHash: "y", Role: model.RoleRestaurant, Status: model.AccountStatusPending}
	err := registerInTx(ctx, uow, second, restaurant)
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKey(err))

	assert.EqualValues(t, 1, countRows(t, gormDB, &model.Account{}))
	assert.EqualValues(t, 1, countRows(t, gormDB, &model.RestaurantProfile{}))
}
