package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-catalog/core/loader"
	"media-catalog/core/logger"
	"media-catalog/core/metrics"
	"media-catalog/core/middleware/auth"
	"media-catalog/core/middleware/rayid"
	"media-catalog/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "media-catalog/docs/swagger"
)

// @title Media Catalog API
// @version 1.0
// @description Read-only API over the media catalog.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Long:  `Starts the HTTP server exposing the catalog, metrics and the API documentation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger and catalog
		rt, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		logg := rt.log
		defer logg.Sync()

		// 2. Fiber app
		app := newServer(rt)

		// 3. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 4. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

// newServer wires the middleware, the public routes and the features.
func newServer(rt *runtime) *fiber.App {
	logg := rt.log

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager(logg)
	ttl := time.Duration(rt.cfg.Server.CacheSeconds) * time.Second
	mgr.Register(catalog.NewFeature(rt.store, ttl, logg))

	// 1. RayID (Must be first to trace everything)
	app.Use(rayid.New())

	// 2. Request logging with the ray id
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

	// 3. Public routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	// 4. Auth for everything else
	app.Use(auth.New(auth.Config{
		ApiKey: rt.cfg.Server.ApiKey,
		Public: []string{"/health", "/metrics", "/swagger"},
	}))

	// 5. Features
	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}
