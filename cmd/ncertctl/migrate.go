package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/ncertflash/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		versions, err := db.AppliedMigrations(ctx, database.DB)
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied\n", len(versions))
		return nil
	},
}
