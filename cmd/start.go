package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-aggregator/core/loader"
	"auction-aggregator/core/logger"
	"auction-aggregator/core/middleware/rayid"
	"auction-aggregator/core/scheduler"
	"auction-aggregator/feature/auctions"
	"auction-aggregator/feature/auctions/pipeline"
	"auction-aggregator/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "auction-aggregator/docs/swagger"
)

// @title Auction Aggregator API
// @version 1.0
// @description Aggregated auction house listings with flipping scores.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server and the run scheduler",
	Long:  `Starts the HTTP server, serves the aggregated dataset and runs the pipeline on the configured schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		cfg := rt.cfg

		if !cfg.Server.IsValidSchedule() {
			return errors.New("invalid server.schedule: " + cfg.Server.Schedule)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		var snapshots auctions.SnapshotReader
		if rt.exporter != nil {
			snapshots = rt.exporter
		}
		feature := auctions.NewFeature(rt.store, snapshots, cfg.Server.CacheTTL(), logg)

		mgr := loader.NewManager(logg)
		mgr.Register(feature)
		mgr.Register(integrity.NewFeature(rt.storage, integrity.StorageTarget{
			Bucket: cfg.Storage.Bucket,
			Region: cfg.Storage.Region,
			Object: cfg.Pipeline.ExportObject,
		}, rt.db, logg))

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request handled",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})))
		app.Get("/swagger/*", swagger.HandlerDefault)

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		p := rt.pipeline()
		trigger := func() {
			scheduledRun(ctx, p, feature.Service(), logg)
		}

		sched := scheduler.New(logg)
		if cfg.Server.Schedule != "" {
			if _, err := sched.Add("pipeline", cfg.Server.Schedule, trigger); err != nil {
				return err
			}
		}
		sched.Start()
		if cfg.Server.RunOnStart {
			go trigger()
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		<-sched.Stop().Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

// scheduledRun executes one pipeline run and refreshes the served dataset on success.
func scheduledRun(ctx context.Context, p *pipeline.Pipeline, svc *auctions.Service, logg *zap.Logger) {
	res, err := p.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrRunInProgress):
		logg.Warn("Pipeline run skipped, previous run still active")
	case err != nil:
		// already logged with its run id
	default:
		svc.Refresh()
		logg.Info("Served dataset refreshed", zap.String("run_id", res.RunID))
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
