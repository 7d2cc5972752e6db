package cmd

import (
	"context"
	"log"
	"time"

	"brandstock/core/config"
	"brandstock/core/database"
	"brandstock/core/logger"
	"brandstock/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statusCmd prints a one-shot summary of the brand's remote inventory
// without starting the service.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the brand's remote inventory summary",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to shared store", zap.Error(err))
		}
		remote := inventory.NewGormRemote(db)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		count, err := remote.CountItems(ctx, cfg.Identity.BrandID)
		if err != nil {
			logg.Fatal("Count failed", zap.Error(err))
		}

		items, err := remote.FetchItems(ctx, cfg.Identity.BrandID)
		if err != nil {
			logg.Fatal("Fetch failed", zap.Error(err))
		}

		active, shared := 0, 0
		for _, it := range items {
			if it.IsActive {
				active++
			}
			if it.IsShared {
				shared++
			}
		}

		logg.Info("Inventory status",
			zap.String("brand_id", cfg.Identity.BrandID),
			zap.Int64("visible_items", count),
			zap.Int("active", active),
			zap.Int("shared", shared))

		for _, it := range items {
			q, err := remote.CalculateQuantities(ctx, it.ID)
			if err != nil {
				logg.Warn("Quantity calculation failed", zap.String("item_id", it.ID), zap.Error(err))
				continue
			}
			logg.Info("Item",
				zap.String("id", it.ID),
				zap.String("name", it.Name),
				zap.Bool("active", it.IsActive),
				zap.Bool("shared", it.IsShared),
				zap.Int("available", q.Available),
				zap.Int("in_circulation", q.InCirculation),
				zap.Int("total", q.Total))
		}
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
