package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedReset bool

// seedCmd inserts the fixture products and exits non-zero on any error
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the fixture products",
	Long: `Insert the six fixture products into the product table.

Seeding is not idempotent: running it twice inserts the fixtures twice.
Use --reset to drop and recreate the table first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := loadApplication()
		if err != nil {
			return err
		}
		defer application.Release()

		n, err := application.SeedProducts(cmd.Context(), seedReset)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database seeded successfully (%d products)\n", n)
		return nil
	},
}

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := loadApplication()
		if err != nil {
			return err
		}
		defer application.Release()

		// Init already migrated; this pass logs the statements
		return application.MigrateDB(true)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Drop and recreate the product table before seeding")
}
