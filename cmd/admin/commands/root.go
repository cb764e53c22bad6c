package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"foodshare/internal/config"
	"foodshare/internal/db"
)

var (
	// Global flags
	dsn     string
	verbose bool
)

// openDB connects to the store. Tests replace it with an in-memory database.
var openDB = func() (*gorm.DB, error) {
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dsn = cfg.MySQLDSN
	}
	return db.NewMySQL(dsn)
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "foodshare-admin",
	Short: "Operator tooling for the FoodShare store",
	Long: `Operator tooling for the FoodShare store.

Registration leaves accounts pending; an operator approves them here before
they can log in. The same binary migrates the schema and seeds demo data.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "MySQL DSN (defaults to MYSQL_DSN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
