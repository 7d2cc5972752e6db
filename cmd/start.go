package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"brandstock/core/config"
	"brandstock/core/database"
	"brandstock/core/loader"
	"brandstock/core/logger"
	"brandstock/core/middleware/auth"
	"brandstock/core/middleware/rayid"
	"brandstock/core/notify"
	"brandstock/core/storage"
	"brandstock/core/stream"
	"brandstock/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory sync service",
	Long:  `Loads the brand's inventory, starts the poll and push invalidation sources and serves the cached view over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		logg = logg.With(zap.String("brand", cfg.Identity.BrandID))

		// 3. Connect to the shared store
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to shared store", zap.Error(err))
		}
		remote := inventory.NewGormRemote(db)

		// 4. Initialize image storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		images := storage.NewImageStore(store, cfg.Storage.Bucket, cfg.Storage.PublicURL)

		// 5. Connect the change feed
		feed, err := stream.NewRedisFeed(cfg.Stream, logg)
		if err != nil {
			logg.Fatal("Failed to connect change feed", zap.Error(err))
		}

		// 6. Build the inventory feature
		sink := notify.NewZapSink(logg)
		feature := inventory.NewFeature(remote, images, sink, cfg.Identity, logg)

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// RayID first so everything downstream is traceable
		app.Use(rayid.New())

		// Request logging with Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Protect the API
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(feature)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start the sync session (initial load, poller, subscriptions)
		session, err := inventory.StartSession(context.Background(), feature.Service(), feed, cfg.Sync, logg)
		if err != nil {
			logg.Fatal("Failed to start sync session", zap.Error(err))
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		session.Close()
		_ = feed.Close()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
