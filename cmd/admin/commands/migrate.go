package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodshare/internal/db"
)

var reset bool

// migrateCmd brings the schema up to date
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	Long: `Create or update the schema for accounts, profiles and donations.

Examples:
  foodshare-admin migrate            # Apply schema changes
  foodshare-admin migrate --reset    # Drop every table first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		gormDB, err := openDB()
		if err != nil {
			return fmt.Errorf("database init: %w", err)
		}
		if reset {
			logger.Warn("dropping all tables")
			db.Reset(gormDB, logger)
		}
		if err := db.Migrate(gormDB); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Info("schema up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&reset, "reset", false, "Drop all tables before migrating")
	rootCmd.AddCommand(migrateCmd)
}
