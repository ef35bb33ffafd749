package store

import (
	"context"
	"testing"

	"auction-aggregator/core/database"
	"auction-aggregator/feature/auctions/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T, batchSize int) *Store {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	s := New(db, batchSize, zap.NewNop(), nil)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func aggregated(ah, item int, lastModified int64, region, realm int) models.AggregatedRecord {
	return models.AggregatedRecord{
		PricingRecord: models.PricingRecord{
			AuctionHouseID: ah,
			ItemID:         item,
			LastModified:   lastModified,
			RegionID:       region,
			RealmID:        realm,
			MarketValue:    100,
			Historical:     90,
			MinBuyout:      50,
			Quantity:       10,
		},
		ItemMediaURL: "https://render/item.jpg",
		ItemName:     "Item",
	}
}

func TestReferenceItems_InsertSkip(t *testing.T) {
	s := setupSQLite(t, 2)
	ctx := context.Background()

	first := []models.ReferenceItem{
		{ItemID: 1, ItemName: "Linen Cloth", ItemQuality: 1},
		{ItemID: 2, ItemName: "Wool Cloth", ItemQuality: 1},
		{ItemID: 3, ItemName: "Silk Cloth", ItemQuality: 1},
	}
	require.NoError(t, s.SaveReferenceItems(ctx, first))

	second := []models.ReferenceItem{
		{ItemID: 2, ItemName: "Renamed", ItemQuality: 4},
		{ItemID: 4, ItemName: "Mageweave Cloth", ItemQuality: 1},
	}
	require.NoError(t, s.SaveReferenceItems(ctx, second))

	items, err := s.ReferenceItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, "Wool Cloth", items[2].ItemName, "existing rows are not updated")
	assert.Equal(t, "Mageweave Cloth", items[4].ItemName)
}

func TestMediaCache_RoundTrip(t *testing.T) {
	s := setupSQLite(t, 0)
	ctx := context.Background()

	empty, err := s.MediaCache(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.SaveMedia(ctx, []models.ItemMediaCacheEntry{
		{ItemID: 10, MediaURL: "https://render/10.jpg"},
		{ItemID: 11, MediaURL: "https://render/11.jpg"},
	}))
	require.NoError(t, s.SaveMedia(ctx, []models.ItemMediaCacheEntry{{ItemID: 10, MediaURL: "changed"}}))
	require.NoError(t, s.SaveMedia(ctx, nil))

	cache, err := s.MediaCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{10: "https://render/10.jpg", 11: "https://render/11.jpg"}, cache)
}

func TestLatestAggregated(t *testing.T) {
	s := setupSQLite(t, 2)
	ctx := context.Background()

	require.NoError(t, s.SaveAggregated(ctx, []models.AggregatedRecord{
		aggregated(1, 100, 1000, 2, 5),
		aggregated(1, 101, 1000, 2, 5),
		aggregated(2, 100, 1000, 1, 3),
	}))
	require.NoError(t, s.SaveAggregated(ctx, []models.AggregatedRecord{
		aggregated(1, 100, 2000, 2, 5),
		aggregated(1, 100, 2000, 2, 5), // duplicate key within a run
	}))

	records, err := s.LatestAggregated(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].AuctionHouseID)
	assert.Equal(t, int64(1000), records[0].LastModified)
	assert.Equal(t, 1, records[1].AuctionHouseID)
	assert.Equal(t, int64(2000), records[1].LastModified)
	assert.Equal(t, "https://render/item.jpg", records[1].ItemMediaURL)
}

func TestSaveAggregated_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, 2, zap.NewNop(), nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `aggregated_auction_items`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `aggregated_auction_items`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.SaveAggregated(context.Background(), []models.AggregatedRecord{
		aggregated(1, 1, 1, 1, 1),
		aggregated(1, 2, 1, 1, 1),
		aggregated(1, 3, 1, 1, 1),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceItems_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, 0, zap.NewNop(), nil)

	mock.ExpectQuery("SELECT \\* FROM `reference_items`").WillReturnError(assert.AnError)

	_, err := s.ReferenceItems(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
