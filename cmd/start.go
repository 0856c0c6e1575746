package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"extension-host/core/config"
	"extension-host/core/journal"
	"extension-host/core/loader"
	"extension-host/core/logger"
	"extension-host/core/middleware/auth"
	"extension-host/core/middleware/rayid"
	"extension-host/core/surface"
	"extension-host/extension"
	"extension-host/feature/admin"
	"extension-host/feature/commands"
	"extension-host/manifest"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the extension host",
	Long:  `Starts the HTTP server and the extension change detector.`,
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

		// 3. Open the lifecycle journal (optional)
		var events *journal.Store
		if cfg.Journal.Enabled {
			if db, err := journal.Open(cfg.Journal); err != nil {
				logg.Warn("Lifecycle journal unavailable", zap.Error(err))
			} else {
				events = journal.NewStore(db, logg)
				logg.Info("Lifecycle journal opened", zap.String("driver", cfg.Journal.Driver))
			}
		}

		// 4. Build the extension host
		mux := surface.NewMux(logg)
		factory := manifest.NewFactory(logg)
		var recorder extension.Recorder
		if events != nil {
			recorder = events
		}
		host := extension.NewHost(cfg.Modules, factory, mux, recorder, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Shutdown is shared between the signal handler and the admin
		// endpoint; either path stops the detector and the listener.
		hostCtx, cancelHost := context.WithCancel(context.Background())
		stop := make(chan struct{})
		var stopOnce sync.Once
		requestStop := func() {
			stopOnce.Do(func() { close(stop) })
		}

		// Middleware: RayID first so everything is traceable.
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
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		mgr := loader.NewManager()
		mgr.Register(commands.NewFeature(mux, logg))
		mgr.Register(admin.NewFeature(host.Bridge, host.Registry, events, logg, Version, requestStop))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Run the host: detection cycles begin once the server is up.
		ready := make(chan struct{})
		hostDone := make(chan struct{})
		go func() {
			defer close(hostDone)
			if err := host.Run(hostCtx, ready); err != nil {
				logg.Error("Extension host stopped with error", zap.Error(err))
				requestStop()
			}
		}()

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("modules_dir", cfg.Modules.Dir),
			)
			close(ready)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Error("Server failed", zap.Error(err))
				requestStop()
			}
		}()

		// 8. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-stop:
		}
		logg.Info("Shutting down...")
		cancelHost()
		<-hostDone
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
