package cmd

import (
	"log"

	"brandstock/core/config"
	"brandstock/core/database"
	"brandstock/core/logger"
	"brandstock/feature/inventory/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the shared store tables. Intended for local
// sqlite runs and fresh environments; production schemas are managed by the
// store's owner.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to shared store", zap.Error(err))
		}

		if err := db.AutoMigrate(&models.Item{}, &models.Size{}, &models.SharedLink{}); err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}
		logg.Info("Migration complete")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
