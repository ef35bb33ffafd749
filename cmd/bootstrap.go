package cmd

import (
	"context"
	"fmt"
	"time"

	"auction-aggregator/core/config"
	"auction-aggregator/core/database"
	"auction-aggregator/core/logger"
	"auction-aggregator/core/metrics"
	"auction-aggregator/core/storage"
	"auction-aggregator/feature/auctions/export"
	"auction-aggregator/feature/auctions/notify"
	"auction-aggregator/feature/auctions/pipeline"
	"auction-aggregator/feature/auctions/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the services shared by every command.
type services struct {
	cfg       *config.Config
	logger    *zap.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	db        *gorm.DB
	store     *store.Store
	storage   storage.Client
	exporter  *export.Exporter
	publisher notify.Publisher
}

// bootstrap loads configuration, builds the logger and connects the database.
// Object storage is optional: when it is not configured or unreachable, snapshot export is disabled.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	st := store.New(db, cfg.Pipeline.BatchSize, logg, m)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	rt := &services{
		cfg:       cfg,
		logger:    logg,
		registry:  registry,
		metrics:   m,
		db:        db,
		store:     st,
		publisher: notify.New(cfg.Events, logg),
	}
	rt.storage, rt.exporter = connectExporter(ctx, cfg, logg)
	return rt, nil
}

// connectExporter returns the storage client, if one could be created, and the
// snapshot exporter when its bucket is usable.
func connectExporter(ctx context.Context, cfg *config.Config, logg *zap.Logger) (storage.Client, *export.Exporter) {
	if !cfg.Storage.Enabled() {
		logg.Info("Object storage not configured, snapshot export disabled")
		return nil, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Failed to create storage client, snapshot export disabled", zap.Error(err))
		return nil, nil
	}

	timeout := time.Duration(cfg.Storage.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		logg.Warn("Storage bucket unavailable, snapshot export disabled", zap.Error(err))
		return client, nil
	}

	return client, export.NewExporter(client, cfg.Storage.Bucket, cfg.Pipeline.ExportObject, logg)
}

// pipeline builds the aggregation pipeline.
func (rt *services) pipeline() *pipeline.Pipeline {
	var exporter pipeline.SnapshotExporter
	if rt.exporter != nil {
		exporter = rt.exporter
	}
	return pipeline.Build(rt.cfg.PipelineSettings(), rt.store, exporter, rt.publisher, rt.metrics, rt.logger)
}

// close flushes the run event publisher and the logger.
func (rt *services) close() {
	if err := rt.publisher.Close(); err != nil {
		rt.logger.Warn("Failed to close run event publisher", zap.Error(err))
	}
	_ = rt.logger.Sync()
}
