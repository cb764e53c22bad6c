package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"foodshare/internal/auth"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/repository"
	"foodshare/internal/service"
)

var (
	// Seed flags
	seedPassword  string
	seedDonations int
)

type demoAccount struct {
	email string
	role  model.Role
	name  string
}

var demoAccounts = []demoAccount{
	{email: "kitchen@foodshare.local", role: model.RoleRestaurant, name: "Demo Kitchen"},
	{email: "helpers@foodshare.local", role: model.RoleNGO, name: "Demo Helpers"},
}

var demoItems = []struct {
	title, category, unit string
	quantity              string
}{
	{"Vegetable biryani", "cooked", "kg", "8.5"},
	{"Sourdough loaves", "bakery", "loaves", "20"},
	{"Mixed fruit crates", "produce", "crates", "3"},
	{"Lentil soup", "cooked", "litres", "12"},
}

// seedCmd creates approved demo accounts and sample donations
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create approved demo accounts and sample donations",
	Long: `Create an approved demo restaurant and NGO plus sample pending donations.

Running seed again is safe: existing accounts are left alone and donations are
only posted for a restaurant that has none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := openDB()
		if err != nil {
			return fmt.Errorf("database init: %w", err)
		}
		result, err := seedDemo(cmd.Context(), gormDB, newLogger(cmd), seedPassword, seedDonations)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "accounts created: %d, existing: %d, donations posted: %d\n",
			result.created, result.existing, result.donations)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "demo1234", "Password for the demo accounts")
	seedCmd.Flags().IntVar(&seedDonations, "donations", 3, "Sample donations to post")
	rootCmd.AddCommand(seedCmd)
}

type seedResult struct {
	created   int
	existing  int
	donations int
}

func seedDemo(ctx context.Context, gormDB *gorm.DB, logger *slog.Logger, password string, donations int) (seedResult, error) {
	var result seedResult

	accountRepo := repository.NewAccountRepository(gormDB)
	profiles := repository.NewProfileRepositories(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)
	authService := service.NewAuthService(
		repository.NewUnitOfWork(gormDB),
		accountRepo,
		auth.NewJWTService("unused", auth.DefaultTokenTTL),
		auth.NewTokenStore(nil),
		nil,
		logger,
	)
	// Seeded donations carry no image, so no blob store is needed.
	donationService := service.NewDonationService(donationRepo, profiles, nil, nil, logger)

	var restaurant model.Caller
	for _, demo := range demoAccounts {
		_, err := authService.Register(ctx, service.RegisterInput{
			Email:    demo.email,
			Password: password,
			Role:     demo.role.String(),
			Name:     demo.name,
		})
		switch {
		case err == nil:
			result.created++
			logger.Info("created demo account", "email", demo.email, "role", demo.role)
		case errors.Is(err, apperrors.ErrEmailTaken):
			result.existing++
			logger.Debug("demo account exists", "email", demo.email)
		default:
			return result, fmt.Errorf("register %s: %w", demo.email, err)
		}

		if err := approveAccount(ctx, accountRepo, demo.email); err != nil {
			return result, err
		}
		if demo.role == model.RoleRestaurant {
			account, err := accountRepo.FindByEmail(ctx, demo.email)
			if err != nil {
				return result, fmt.Errorf("find %s: %w", demo.email, err)
			}
			restaurant = model.Caller{AccountID: account.ID, Role: account.Role}
		}
	}

	posted, err := donationRepo.CountByRestaurant(ctx, restaurant.AccountID)
	if err != nil {
		return result, fmt.Errorf("count donations: %w", err)
	}
	if posted > 0 {
		return result, nil
	}

	now := time.Now().UTC()
	for i := 0; i < donations; i++ {
		item := demoItems[i%len(demoItems)]
		_, err := donationService.Create(ctx, restaurant, service.CreateDonationInput{
			Title:          item.title,
			Category:       item.category,
			Quantity:       decimal.RequireFromString(item.quantity),
			QuantityUnit:   item.unit,
			ExpiryTime:     now.Add(time.Duration(4+i) * time.Hour),
			PickupLocation: "Demo Kitchen, rear entrance",
		})
		if err != nil {
			return result, fmt.Errorf("post demo donation: %w", err)
		}
		result.donations++
	}
	return result, nil
}
