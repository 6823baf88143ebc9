package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"filevault/core/database"
	"filevault/core/loader"
	"filevault/core/logger"
	"filevault/core/middleware/auth"
	"filevault/core/middleware/rayid"
	"filevault/core/response"

	"filevault/feature/files"
	"filevault/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "filevault/docs/swagger"
)

// @title filevault API
// @version 1.0
// @description HTTP access to an S3-compatible bucket.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the filevault server",
	Long:    `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and storage
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if cfg.Server.EnsureBucket {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			err := rt.bucket.EnsureBucket(ctx, cfg.Storage.Region)
			cancel()
			if err != nil {
				logg.Fatal("Failed to ensure bucket", zap.Error(err))
			}
		}

		// 2. Connect to Database (Optional)
		var db *gorm.DB
		if cfg.Database.URL == "" && cfg.Database.Host == "" {
			logg.Info("No database configured, skipping")
		} else if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           cfg.Server.ReadTimeout(),
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				if e, ok := err.(*fiber.Error); ok {
					code = e.Code
				}
				return response.Error(c, code, err.Error())
			},
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(health.NewFeature(rt.bucket, db, logg))
		mgr.Register(files.NewFeature(rt.bucket, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		// Health stays public for load balancers
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("bucket", rt.bucket.Name()))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)

		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
