package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"foodshare/internal/model"
	"foodshare/internal/repository"
)

var approveEmail string

// approveCmd flips a pending account to approved
var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a pending account",
	Long: `Approve a pending account so it can log in.

Examples:
  foodshare-admin approve --email kitchen@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := openDB()
		if err != nil {
			return fmt.Errorf("database init: %w", err)
		}
		repo := repository.NewAccountRepository(gormDB)
		if err := approveAccount(cmd.Context(), repo, approveEmail); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "approved %s\n", strings.ToLower(strings.TrimSpace(approveEmail)))
		return nil
	},
}

// pendingCmd lists accounts awaiting approval
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List accounts awaiting approval",
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := openDB()
		if err != nil {
			return fmt.Errorf("database init: %w", err)
		}
		accounts, err := repository.NewAccountRepository(gormDB).ListByStatus(cmd.Context(), model.AccountStatusPending)
		if err != nil {
			return fmt.Errorf("list pending accounts: %w", err)
		}
		printAccounts(cmd.OutOrStdout(), accounts)
		return nil
	},
}

func init() {
	approveCmd.Flags().StringVar(&approveEmail, "email", "", "Email of the account to approve")
	_ = approveCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(pendingCmd)
}

// approveAccount is idempotent: approving an approved account succeeds.
func approveAccount(ctx context.Context, repo repository.AccountRepository, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email is required")
	}

	account, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return fmt.Errorf("find account: %w", err)
	}
	if account.Approved() {
		return nil
	}

	if _, err := repo.UpdateStatus(ctx, email, model.AccountStatusApproved); err != nil {
		return fmt.Errorf("approve account: %w", err)
	}
	return nil
}

func printAccounts(out io.Writer, accounts []model.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(out, "no pending accounts")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tROLE\tREGISTERED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Email, a.Role, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}
