package store

import (
	"context"
	"fmt"

	"auction-aggregator/core/metrics"
	"auction-aggregator/feature/auctions/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize is used when a non-positive batch size is configured.
const DefaultBatchSize = 1000

// Store persists reference items, the media cache and aggregated auction rows.
// Rows are only ever inserted; existing keys are skipped.
type Store struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a store. m may be nil.
func New(db *gorm.DB, batchSize int, logger *zap.Logger, m *metrics.Metrics) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{db: db, batchSize: batchSize, logger: logger, metrics: m}
}

// Migrate creates or updates the tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&models.ReferenceItemRow{},
		&models.ItemMediaCacheRow{},
		&models.AggregatedAuctionRow{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// ReferenceItems reads the whole reference table keyed by item id.
func (s *Store) ReferenceItems(ctx context.Context) (map[int]models.ReferenceItem, error) {
	var rows []models.ReferenceItemRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read reference items: %w", err)
	}

	items := make(map[int]models.ReferenceItem, len(rows))
	for _, r := range rows {
		items[r.ItemID] = r.ToDomain()
	}
	return items, nil
}

// SaveReferenceItems inserts reference items, skipping ids already stored.
func (s *Store) SaveReferenceItems(ctx context.Context, items []models.ReferenceItem) error {
	rows := make([]models.ReferenceItemRow, len(items))
	for i, item := range items {
		rows[i] = models.NewReferenceItemRow(item)
	}
	return insertSkip(ctx, s, models.ReferenceItemRow{}.TableName(), rows)
}

// MediaCache reads the whole media cache keyed by item id.
func (s *Store) MediaCache(ctx context.Context) (map[int]string, error) {
	var rows []models.ItemMediaCacheRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read media cache: %w", err)
	}

	cache := make(map[int]string, len(rows))
	for _, r := range rows {
		cache[r.ItemID] = r.ItemMediaURL
	}
	return cache, nil
}

// SaveMedia inserts media cache entries, skipping ids already cached.
func (s *Store) SaveMedia(ctx context.Context, entries []models.ItemMediaCacheEntry) error {
	rows := make([]models.ItemMediaCacheRow, len(entries))
	for i, e := range entries {
		rows[i] = models.NewItemMediaCacheRow(e)
	}
	return insertSkip(ctx, s, models.ItemMediaCacheRow{}.TableName(), rows)
}

// SaveAggregated inserts aggregated records in sequential batches, skipping duplicate keys.
func (s *Store) SaveAggregated(ctx context.Context, records []models.AggregatedRecord) error {
	rows := make([]models.AggregatedAuctionRow, len(records))
	for i, r := range records {
		rows[i] = models.NewAggregatedAuctionRow(r)
	}
	return insertSkip(ctx, s, models.AggregatedAuctionRow{}.TableName(), rows)
}

// LatestAggregated returns the newest snapshot of every auction house, ordered by region and realm.
func (s *Store) LatestAggregated(ctx context.Context) ([]models.AggregatedRecord, error) {
	latest := s.db.Model(&models.AggregatedAuctionRow{}).
		Select("auction_house_id, MAX(last_modified) AS last_modified").
		Group("auction_house_id")

	var rows []models.AggregatedAuctionRow
	err := s.db.WithContext(ctx).
		Table(models.AggregatedAuctionRow{}.TableName()+" AS a").
		Select("a.*").
		Joins("JOIN (?) AS l ON a.auction_house_id = l.auction_house_id AND a.last_modified = l.last_modified", latest).
		Order("a.region_id, a.realm_id, a.auction_house_id, a.item_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregated snapshot: %w", err)
	}

	records := make([]models.AggregatedRecord, len(rows))
	for i, r := range rows {
		records[i] = r.ToDomain()
	}
	return records, nil
}

// insertSkip writes rows in batches of s.batchSize, one batch after another.
func insertSkip[T any](ctx context.Context, s *Store, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, s.batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	s.metrics.AddRows(table, len(rows))
	s.logger.Debug("Rows written",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Int("batch_size", s.batchSize),
	)
	return nil
}
