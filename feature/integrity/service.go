package integrity

import (
	"context"
	"errors"

	"auction-aggregator/core/storage"
	"auction-aggregator/feature/auctions/models"
	"auction-aggregator/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// StorageTarget locates the exported snapshot.
type StorageTarget struct {
	Bucket string
	Region string
	Object string
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	target StorageTarget
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when storage is disabled.
func NewService(client storage.Client, target StorageTarget, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		target: target,
		db:     db,
		logger: logger,
	}
}

// CheckSchema verifies the pipeline tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db,
		&models.ReferenceItemRow{},
		&models.ItemMediaCacheRow{},
		&models.AggregatedAuctionRow{},
	)
}

// CheckStorage verifies the snapshot bucket and object.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.target.Bucket, s.target.Object)
}

// FixStorage creates the snapshot bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStorage(ctx, s.client, s.target.Bucket, s.target.Region)
}
