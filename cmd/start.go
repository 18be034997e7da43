package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"maintenance-manager/core/config"
	"maintenance-manager/core/database"
	"maintenance-manager/core/glpi"
	"maintenance-manager/core/loader"
	"maintenance-manager/core/logger"
	"maintenance-manager/core/middleware/auth"
	"maintenance-manager/core/middleware/rayid"
	"maintenance-manager/core/storage"

	"maintenance-manager/feature/inventory"
	"maintenance-manager/feature/inventory/models"
	"maintenance-manager/feature/maintenance"
	"maintenance-manager/feature/notes"
	"maintenance-manager/feature/reports"
	syncfeature "maintenance-manager/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Maintenance Manager API
// @version 1.0
// @description API for tracking GLPI computer inventory and maintenance.
// @host localhost:8000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the maintenance manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize GLPI Client
		glpiClient := glpi.NewClient(cfg.Glpi)

		// 5. Initialize Report Archive (Optional)
		var archive storage.Client
		if cfg.Storage.Enabled {
			archive, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			logg.Info("Report archive enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Register Features
		mgr := loader.NewManager()
		mgr.Register(syncfeature.NewFeature(glpiClient, db, logg, cfg.Sync.PageSize))
		mgr.Register(inventory.NewFeature(db, logg))
		mgr.Register(maintenance.NewFeature(db, logg))
		mgr.Register(notes.NewFeature(db, logg))
		mgr.Register(reports.NewFeature(db, archive, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 3. CORS
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.Origins(),
			AllowHeaders: "Origin, Content-Type, Accept, X-Api-Key",
		}))

		// 4. Auth (Protect API; disabled when no key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features under /api
		api := app.Group("/api")
		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
