//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/gorm"

	"foodshare/internal/db"
	"foodshare/internal/model"
)

// setupMySQL starts a MySQL container and returns a migrated gorm handle.
func setupMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("foodshare"),
		tcmysql.WithUsername("foodshare"),
		tcmysql.WithPassword("foodshare"),
	)
	if err != nil {
		t.Fatalf("failed to start mysql container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=UTC")
	require.NoError(t, err)

	gormDB, err := db.NewMySQL(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func TestMySQL_ConcurrentClaimHasOneWinner(t *testing.T) {
	gormDB := setupMySQL(t)
	repo := NewDonationRepository(gormDB)
	ctx := context.Background()

	restaurantID := seedRestaurant(t, gormDB, "Bistro")
	donation := seedDonation(t, repo, restaurantID, time.Now().UTC())

	const claimants = 16
	ngoIDs := make([]uuid.UUID, claimants)
	for i := range ngoIDs {
		ngoIDs[i] = seedNGO(t, gormDB, uuid.NewString()[:8])
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
	)
	start := make(chan struct{})
	for _, ngoID := range ngoIDs {
		wg.Add(1)
		go func(ngoID uuid.UUID) {
			defer wg.Done()
			<-start
			ok, err := repo.Claim(ctx, donation.ID, ngoID, "ngo", time.Now().UTC())
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				winners = append(winners, ngoID)
				mu.Unlock()
			}
		}(ngoID)
	}
	close(start)
	wg.Wait()

	require.Len(t, winners, 1)
	stored, err := repo.FindByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusAccepted, stored.Status)
	require.NotNil(t, stored.NGOID)
	assert.Equal(t, winners[0], *stored.NGOID)
}

func TestMySQL_DuplicateEmailIsDetected(t *testing.T) {
	gormDB := setupMySQL(t)
	repo := NewAccountRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "dup@example.com", PasswordHash: "x", Role: model.RoleNGO}))
	err := repo.Create(ctx, &model.Account{Email: "dup@example.com", PasswordHash: "y", Role: model.RoleRestaurant})
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKey(err))
}

func TestMySQL_RegistrationRollsBack(t *testing.T) {
	gormDB := setupMySQL(t)
	uow := NewUnitOfWork(gormDB)
	ctx := context.Background()

	account := &model.Account{Email: "kitchen@example.com", PasswordHash: "x", Role: model.RoleRestaurant}
	err := uow.WithTransaction(ctx, func(ctx context.Context, repos TxRepositories) error {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return err
		}
		// A profile for a missing account violates the foreign key.
		return repos.Profiles.Restaurant.Create(ctx, &model.RestaurantProfile{AccountID: uuid.New(), Name: "Orphan"})
	})
	require.Error(t, err)

	var accounts int64
	require.NoError(t, gormDB.Model(&model.Account{}).Count(&accounts).Error)
	assert.Zero(t, accounts)
}
