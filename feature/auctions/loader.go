package auctions

import (
	"time"

	"auction-aggregator/core/cache"
	"auction-aggregator/feature/auctions/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new auctions feature. snapshots may be nil.
func NewFeature(reader Reader, snapshots SnapshotReader, cacheTTL time.Duration, logger *zap.Logger) *Feature {
	svc := NewService(reader, snapshots, cache.NewTTL[[]models.AggregatedRecord](cacheTTL), logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auctions"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
