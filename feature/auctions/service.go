package auctions

import (
	"context"
	"errors"
	"slices"
	"strings"

	"auction-aggregator/core/cache"
	"auction-aggregator/feature/auctions/export"
	"auction-aggregator/feature/auctions/models"
	"auction-aggregator/feature/auctions/score"

	"go.uber.org/zap"
)

// ErrSnapshotsDisabled is returned when no object storage is configured.
var ErrSnapshotsDisabled = errors.New("snapshot export is disabled")

// Reader reads the latest aggregated dataset.
type Reader interface {
	LatestAggregated(ctx context.Context) ([]models.AggregatedRecord, error)
}

// SnapshotReader reads the latest exported snapshot.
type SnapshotReader interface {
	Latest(ctx context.Context) (*export.Snapshot, error)
}

// Query filters listings. Zero values do not filter.
type Query struct {
	Region      string `query:"region"`
	GameVersion string `query:"gameVersion"`
	RealmID     int    `query:"realmId"`
	ItemID      int    `query:"itemId"`
	MinScore    int    `query:"minScore"`
	Limit       int    `query:"limit"`
}

// Listing is an aggregated record with its trading metrics.
type Listing struct {
	models.AggregatedRecord
	FlippingScore           int     `json:"flippingScore"`
	ProfitPerUnit           float64 `json:"profitPerUnit"`
	PriceRatio              float64 `json:"priceRatio"`
	MarketToHistoricalRatio float64 `json:"marketToHistoricalRatio"`
}

// NewListing computes the trading metrics of r.
func NewListing(r models.AggregatedRecord) Listing {
	return Listing{
		AggregatedRecord:        r,
		FlippingScore:           score.Flipping(r.MarketValue, r.Historical, r.MinBuyout, r.Quantity),
		ProfitPerUnit:           r.MarketValue - r.MinBuyout,
		PriceRatio:              ratio(r.MinBuyout, r.MarketValue),
		MarketToHistoricalRatio: ratio(r.MarketValue, r.Historical),
	}
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Service answers listing queries from a cached copy of the latest dataset.
type Service struct {
	reader    Reader
	snapshots SnapshotReader
	cache     *cache.TTL[[]models.AggregatedRecord]
	logger    *zap.Logger
}

// NewService creates a new auctions service. snapshots may be nil.
func NewService(reader Reader, snapshots SnapshotReader, c *cache.TTL[[]models.AggregatedRecord], logger *zap.Logger) *Service {
	return &Service{reader: reader, snapshots: snapshots, cache: c, logger: logger}
}

// Listings returns listings with a non-zero quantity that match q, best score first.
func (s *Service) Listings(ctx context.Context, q Query) ([]Listing, error) {
	records, err := s.cache.Get(ctx, s.reader.LatestAggregated)
	if err != nil {
		return nil, err
	}

	out := make([]Listing, 0)
	for _, r := range records {
		if !q.matches(r) {
			continue
		}
		l := NewListing(r)
		if l.FlippingScore < q.MinScore {
			continue
		}
		out = append(out, l)
	}

	slices.SortStableFunc(out, func(a, b Listing) int { return b.FlippingScore - a.FlippingScore })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (q Query) matches(r models.AggregatedRecord) bool {
	switch {
	case r.Quantity == 0:
		return false
	case q.Region != "" && !strings.EqualFold(q.Region, r.RegionPrefix):
		return false
	case q.GameVersion != "" && !strings.EqualFold(q.GameVersion, r.GameVersion):
		return false
	case q.RealmID != 0 && q.RealmID != r.RealmID:
		return false
	case q.ItemID != 0 && q.ItemID != r.ItemID:
		return false
	}
	return true
}

// Snapshot returns the latest exported snapshot.
func (s *Service) Snapshot(ctx context.Context) (*export.Snapshot, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	return s.snapshots.Latest(ctx)
}

// Refresh drops the cached dataset so the next query reads the store.
func (s *Service) Refresh() {
	s.cache.Invalidate()
}
