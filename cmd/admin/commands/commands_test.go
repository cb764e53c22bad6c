package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodshare/internal/db/dbtest"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

func useDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB := dbtest.New(t)
	previous := openDB
	openDB = func() (*gorm.DB, error) { return gormDB, nil }
	t.Cleanup(func() { openDB = previous })
	return gormDB
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApproveCommand(t *testing.T) {
	gormDB := useDB(t)
	repo := repository.NewAccountRepository(gormDB)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "kitchen@example.com", PasswordHash: "x", Role: model.RoleRestaurant, Status: model.AccountStatusPending}))

	out, err := run(t, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "kitchen@example.com")

	out, err = run(t, "approve", "--email", " Kitchen@Example.com ")
	require.NoError(t, err)
	assert.Contains(t, out, "approved kitchen@example.com")

	account, err := repo.FindByEmail(ctx, "kitchen@example.com")
	require.NoError(t, err)
	assert.True(t, account.Approved())

	out, err = run(t, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "no pending accounts")

	_, err = run(t, "approve", "--email", "ghost@example.com")
	assert.ErrorContains(t, err, "no account with email ghost@example.com")
}

func TestApproveAccount_Idempotent(t *testing.T) {
	gormDB := dbtest.New(t)
	repo := repository.NewAccountRepository(gormDB)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a@example.com", PasswordHash: "x", Role: model.RoleNGO, Status: model.AccountStatusApproved}))

	assert.NoError(t, approveAccount(ctx, repo, "a@example.com"))
	assert.Error(t, approveAccount(ctx, repo, "  "))
}

func TestSeedDemo(t *testing.T) {
	gormDB := dbtest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	result, err := seedDemo(ctx, gormDB, logger, "demo1234", 3)
	require.NoError(t, err)
	assert.Equal(t, seedResult{created: 2, donations: 3}, result)

	pending, err := repository.NewAccountRepository(gormDB).ListByStatus(ctx, model.AccountStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	again, err := seedDemo(ctx, gormDB, logger, "demo1234", 3)
	require.NoError(t, err)
	assert.Equal(t, seedResult{existing: 2}, again)

	var donations int64
	require.NoError(t, gormDB.Model(&model.Donation{}).Count(&donations).Error)
	assert.EqualValues(t, 3, donations)
}

func TestMigrateCommand(t *testing.T) {
	gormDB := useDB(t)
	require.NoError(t, gormDB.Create(&model.Account{Email: "a@example.com", PasswordHash: "x", Role: model.RoleNGO}).Error)

	_, err := run(t, "migrate", "--reset")
	require.NoError(t, err)

	var accounts int64
	require.NoError(t, gormDB.Model(&model.Account{}).Count(&accounts).Error)
	assert.EqualValues(t, 0, accounts)
}
