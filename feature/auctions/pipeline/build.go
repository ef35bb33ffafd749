package pipeline

import (
	"auction-aggregator/core/credentials"
	"auction-aggregator/core/metrics"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/aggregate"
	"auction-aggregator/feature/auctions/discovery"
	"auction-aggregator/feature/auctions/media"
	"auction-aggregator/feature/auctions/notify"
	"auction-aggregator/feature/auctions/pricing"
	"auction-aggregator/feature/auctions/reference"
	"auction-aggregator/feature/auctions/store"

	"go.uber.org/zap"
)

// Settings groups the configuration sections a pipeline is built from.
type Settings struct {
	Pipeline  Config
	TSM       TSMConfig
	Blizzard  BlizzardConfig
	Reference reference.Config
	Upstream  upstream.Config
}

// Build wires a Pipeline against the real providers. exporter may be nil to disable snapshot export.
func Build(s Settings, st *store.Store, exporter SnapshotExporter, publisher notify.Publisher, m *metrics.Metrics, logger *zap.Logger) *Pipeline {
	client := upstream.NewClient(s.Upstream)

	tsmToken := credentials.NewSource(s.TSM.Credentials(), client)
	blizzardToken := credentials.NewSource(s.Blizzard.Credentials(), client)

	tsmPool := workerpool.New("tsm", s.TSM.Pool, m)
	blizzardPool := workerpool.New("blizzard", s.Blizzard.Pool, m)

	if !s.Pipeline.Export {
		exporter = nil
	}

	return New(Deps{
		TSMToken:      tsmToken,
		BlizzardToken: blizzardToken,
		Reference:     reference.NewRefresher(reference.NewFetcher(client, s.Reference), st, logger),
		Discovery:     discovery.New(client, s.TSM.RealmURL, tsmToken, tsmPool, s.Pipeline.RegionFilter(), logger),
		Pricing:       pricing.NewFetcher(client, s.TSM.PricingURL, tsmToken, tsmPool, logger),
		Media:         media.NewResolver(st, client, s.Blizzard.Media(), blizzardToken, blizzardPool, logger),
		Engine:        aggregate.NewEngine(s.Pipeline.MinAuctionHouseRecords, logger, m),
		Store:         st,
		Exporter:      exporter,
		Publisher:     publisher,
		Metrics:       m,
		Logger:        logger,
	})
}
