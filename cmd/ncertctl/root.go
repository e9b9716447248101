package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vytor/ncertflash/internal/config"
	"github.com/vytor/ncertflash/internal/db"
	"github.com/vytor/ncertflash/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "ncertctl",
	Short:         "Maintenance commands for the NCERT Flash database",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger.SetDefault(logger.New(logger.WithLevel(logger.ParseLevel(level)), logger.WithOutput(cmd.ErrOrStderr())))
	},
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().String("db", cfg.DBPath, "Path to the SQLite database file (defaults to DB_PATH)")
	rootCmd.PersistentFlags().String("driver", cfg.DBDriver, "database/sql driver: sqlite3 or sqlite (defaults to DB_DRIVER)")
	rootCmd.PersistentFlags().String("log-level", "WARN", "Log level")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(verifyPDFsCmd)
}

// openDB opens the database named by the persistent flags. Open applies
// pending migrations.
func openDB(ctx context.Context, cmd *cobra.Command) (*db.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	driver, _ := cmd.Flags().GetString("driver")
	return db.Open(ctx, driver, path)
}
