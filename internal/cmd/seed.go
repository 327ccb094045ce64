// internal/cmd/seed.go
package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/javajoker/shopbot/internal/database"
	"github.com/javajoker/shopbot/internal/services"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the product catalog into an empty database",
	Long: `Insert the products of a YAML catalog file when the products table is
empty. Without --file the built-in demo catalog is used. A catalog that
already has products is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(appConfig.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			return err
		}

		path := seedFile
		if path == "" {
			path = appConfig.Catalog.SeedPath
		}
		n, err := seedCatalog(cmd.Context(), db, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog YAML file (defaults to CATALOG_SEED_PATH or the built-in catalog)")
	rootCmd.AddCommand(seedCmd)
}

func seedCatalog(ctx context.Context, db *gorm.DB, path string) (int, error) {
	products, err := database.LoadSeedCatalog(path)
	if err != nil {
		return 0, err
	}

	catalog := services.NewCatalogService(db, services.NewReviewService(db))
	n, err := catalog.SeedIfEmpty(ctx, products)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	if n > 0 {
		logrus.WithField("products", n).Info("Catalog seeded")
	}
	return n, nil
}
