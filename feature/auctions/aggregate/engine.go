package aggregate

import (
	"auction-aggregator/core/metrics"
	"auction-aggregator/feature/auctions/models"

	"go.uber.org/zap"
)

// Stage names reported to metrics and logs.
const (
	StageFetched   = "fetched"
	StageValid     = "valid"
	StageVolume    = "volume"
	StageMedia     = "media_joined"
	StageReference = "reference_joined"
)

// Engine runs the aggregation stages in their fixed order and reports stage counts.
type Engine struct {
	minRecords int
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewEngine creates an engine. minRecords is the per auction house volume threshold.
func NewEngine(minRecords int, logger *zap.Logger, m *metrics.Metrics) *Engine {
	return &Engine{minRecords: minRecords, logger: logger, metrics: m}
}

// Prepared is the output of the filter and sort stages.
type Prepared struct {
	Records []models.PricingRecord
	ItemIDs []int
}

// Prepare runs validity filtering, region/realm sorting and the volume threshold.
func (e *Engine) Prepare(records []models.PricingRecord) Prepared {
	e.report(StageFetched, len(records))

	valid := FilterValid(records)
	e.report(StageValid, len(valid))

	retained := FilterVolume(SortByRegionRealm(valid), e.minRecords)
	e.report(StageVolume, len(retained))

	return Prepared{Records: retained, ItemIDs: UniqueItemIDs(retained)}
}

// Join attaches media and reference attributes, dropping records missing either.
func (e *Engine) Join(records []models.PricingRecord, media map[int]string, reference map[int]models.ReferenceItem) []models.AggregatedRecord {
	withMedia := JoinMedia(records, media)
	e.report(StageMedia, len(withMedia))

	out := JoinReference(withMedia, reference)
	e.report(StageReference, len(out))
	return out
}

func (e *Engine) report(stage string, n int) {
	e.metrics.SetStage(stage, n)
	e.logger.Debug("Aggregation stage complete", zap.String("stage", stage), zap.Int("records", n))
}
