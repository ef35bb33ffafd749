package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-aggregator/core/credentials"
	"auction-aggregator/core/logger"
	"auction-aggregator/core/metrics"
	"auction-aggregator/feature/auctions/aggregate"
	"auction-aggregator/feature/auctions/export"
	"auction-aggregator/feature/auctions/media"
	"auction-aggregator/feature/auctions/models"
	"auction-aggregator/feature/auctions/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrCredentials is returned when a provider token cannot be obtained.
	ErrCredentials = errors.New("failed to obtain provider credentials")
	// ErrRunInProgress is returned when Run is called while another run is active.
	ErrRunInProgress = errors.New("pipeline run already in progress")
)

// ReferenceSource yields the reference catalog.
type ReferenceSource interface {
	Refresh(ctx context.Context) (map[int]models.ReferenceItem, error)
}

// RealmSource discovers the realms to aggregate.
type RealmSource interface {
	Discover(ctx context.Context) ([]models.Realm, error)
}

// PricingSource fetches pricing records of realms.
type PricingSource interface {
	Fetch(ctx context.Context, realms []models.Realm) []models.PricingRecord
}

// MediaSource resolves item media URLs.
type MediaSource interface {
	Resolve(ctx context.Context, itemIDs []int) (map[int]string, media.ResolveStats, error)
}

// AggregateStore persists aggregated records.
type AggregateStore interface {
	SaveAggregated(ctx context.Context, records []models.AggregatedRecord) error
}

// SnapshotExporter publishes the aggregated snapshot.
type SnapshotExporter interface {
	Export(ctx context.Context, snap export.Snapshot) error
}

// Deps are the collaborators of a Pipeline. Exporter and Publisher may be nil.
type Deps struct {
	TSMToken      credentials.Provider
	BlizzardToken credentials.Provider
	Reference     ReferenceSource
	Discovery     RealmSource
	Pricing       PricingSource
	Media         MediaSource
	Engine        *aggregate.Engine
	Store         AggregateStore
	Exporter      SnapshotExporter
	Publisher     notify.Publisher
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// RunResult summarises one run.
type RunResult struct {
	RunID         string             `json:"runId"`
	StartedAt     time.Time          `json:"startedAt"`
	FinishedAt    time.Time          `json:"finishedAt"`
	Realms        int                `json:"realms"`
	Fetched       int                `json:"fetched"`
	Retained      int                `json:"retained"`
	Aggregated    int                `json:"aggregated"`
	ReferenceSize int                `json:"referenceSize"`
	Media         media.ResolveStats `json:"media"`
	Exported      bool               `json:"exported"`
	Published     bool               `json:"published"`
}

// Pipeline runs the aggregation end to end. Only one run is active at a time.
type Pipeline struct {
	deps Deps
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a Pipeline.
func New(deps Deps) *Pipeline {
	if deps.Publisher == nil {
		deps.Publisher = notify.Nop{}
	}
	return &Pipeline{deps: deps, now: time.Now}
}

// Run executes one aggregation run and persists its output.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	if !p.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.mu.Unlock()

	res := &RunResult{RunID: uuid.NewString(), StartedAt: p.now()}
	l := logger.WithRunID(p.deps.Logger, res.RunID)
	l.Info("Pipeline run started")

	err := p.run(ctx, l, res)
	res.FinishedAt = p.now()
	p.deps.Metrics.ObserveRun(err, res.FinishedAt.Sub(res.StartedAt))

	if err != nil {
		l.Error("Pipeline run failed", zap.Error(err))
		return nil, err
	}

	l.Info("Pipeline run finished",
		zap.Int("realms", res.Realms),
		zap.Int("fetched", res.Fetched),
		zap.Int("retained", res.Retained),
		zap.Int("aggregated", res.Aggregated),
		zap.Duration("duration", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, l *zap.Logger, res *RunResult) error {
	if err := p.acquireTokens(ctx); err != nil {
		return err
	}

	reference, err := p.deps.Reference.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("reference refresh: %w", err)
	}
	res.ReferenceSize = len(reference)

	realms, err := p.deps.Discovery.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	res.Realms = len(realms)

	prepared := p.prepare(ctx, realms, res)

	mediaURLs, stats, err := p.deps.Media.Resolve(ctx, prepared.ItemIDs)
	if err != nil {
		return fmt.Errorf("media resolution: %w", err)
	}
	res.Media = stats

	records := p.deps.Engine.Join(prepared.Records, mediaURLs, reference)
	res.Aggregated = len(records)

	if err := p.deps.Store.SaveAggregated(ctx, records); err != nil {
		return fmt.Errorf("persist aggregated records: %w", err)
	}

	if p.deps.Exporter != nil {
		snap := export.Snapshot{RunID: res.RunID, GeneratedAt: p.now(), Records: records}
		if err := p.deps.Exporter.Export(ctx, snap); err != nil {
			l.Warn("Snapshot export failed", zap.Error(err))
		} else {
			res.Exported = true
		}
	}

	event := notify.RunEvent{RunID: res.RunID, Records: res.Aggregated, StartedAt: res.StartedAt, FinishedAt: p.now()}
	if err := p.deps.Publisher.Publish(ctx, event); err != nil {
		l.Warn("Run event publish failed", zap.Error(err))
	} else {
		_, nop := p.deps.Publisher.(notify.Nop)
		res.Published = !nop
	}
	return nil
}

// prepare fetches pricing and runs the filter stages. Raw records are released when it returns.
func (p *Pipeline) prepare(ctx context.Context, realms []models.Realm, res *RunResult) aggregate.Prepared {
	raw := p.deps.Pricing.Fetch(ctx, realms)
	res.Fetched = len(raw)

	prepared := p.deps.Engine.Prepare(raw)
	res.Retained = len(prepared.Records)
	return prepared
}

// acquireTokens obtains both provider tokens concurrently.
func (p *Pipeline) acquireTokens(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := p.deps.TSMToken.Token(gctx); err != nil {
			return fmt.Errorf("tsm: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := p.deps.BlizzardToken.Token(gctx); err != nil {
			return fmt.Errorf("blizzard: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrCredentials, err)
	}
	return nil
}
