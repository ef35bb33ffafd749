package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-aggregator/core/credentials"
	"auction-aggregator/feature/auctions/aggregate"
	"auction-aggregator/feature/auctions/discovery"
	"auction-aggregator/feature/auctions/export"
	"auction-aggregator/feature/auctions/media"
	"auction-aggregator/feature/auctions/models"
	"auction-aggregator/feature/auctions/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReference map[int]models.ReferenceItem

func (f fakeReference) Refresh(context.Context) (map[int]models.ReferenceItem, error) {
	return f, nil
}

type fakeDiscovery struct {
	realms []models.Realm
	err    error
}

func (f fakeDiscovery) Discover(context.Context) ([]models.Realm, error) {
	return f.realms, f.err
}

type fakePricing struct {
	records []models.PricingRecord
	entered chan struct{}
	block   chan struct{}
}

func (f fakePricing) Fetch(context.Context, []models.Realm) []models.PricingRecord {
	if f.block != nil {
		close(f.entered)
		<-f.block
	}
	return f.records
}

type fakeMedia map[int]string

func (f fakeMedia) Resolve(_ context.Context, ids []int) (map[int]string, media.ResolveStats, error) {
	return f, media.ResolveStats{Requested: len(ids), Cached: len(f)}, nil
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveAggregated(ctx context.Context, records []models.AggregatedRecord) error {
	return m.Called(ctx, records).Error(0)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, snap export.Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

type recordingPublisher struct {
	events []notify.RunEvent
}

func (r *recordingPublisher) Publish(_ context.Context, e notify.RunEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func testDeps() Deps {
	realm := models.Realm{RealmID: 1, RegionID: 1, Name: "Gehennas", AuctionHouses: []models.AuctionHouseRef{{AuctionHouseID: 10}}}
	return Deps{
		TSMToken:      credentials.Static("tsm"),
		BlizzardToken: credentials.Static("blizzard"),
		Reference:     fakeReference{1: {ItemID: 1, ItemName: "Linen Cloth"}, 2: {ItemID: 2, ItemName: "Wool Cloth"}},
		Discovery:     fakeDiscovery{realms: []models.Realm{realm}},
		Pricing: fakePricing{records: []models.PricingRecord{
			{AuctionHouseID: 10, ItemID: 1, RegionID: 1, RealmID: 1, MarketValue: 100, Historical: 90},
			{AuctionHouseID: 10, ItemID: 2, RegionID: 1, RealmID: 1, MarketValue: 100, Historical: 90},
			{AuctionHouseID: 10, ItemID: 3, RegionID: 1, RealmID: 1, MarketValue: 0, Historical: 90},
		}},
		Media:  fakeMedia{1: "m1", 2: "m2"},
		Engine: aggregate.NewEngine(2, zap.NewNop(), nil),
		Logger: zap.NewNop(),
	}
}

func TestRun(t *testing.T) {
	deps := testDeps()
	st := new(mockStore)
	st.On("SaveAggregated", mock.Anything, mock.MatchedBy(func(r []models.AggregatedRecord) bool { return len(r) == 2 })).Return(nil)
	exp := new(mockExporter)
	exp.On("Export", mock.Anything, mock.MatchedBy(func(s export.Snapshot) bool { return len(s.Records) == 2 })).Return(nil)
	pub := &recordingPublisher{}
	deps.Store, deps.Exporter, deps.Publisher = st, exp, pub

	res, err := New(deps).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Realms)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, 2, res.Retained)
	assert.Equal(t, 2, res.Aggregated)
	assert.Equal(t, 2, res.ReferenceSize)
	assert.True(t, res.Exported)
	assert.True(t, res.Published)
	require.Len(t, pub.events, 1)
	assert.Equal(t, res.RunID, pub.events[0].RunID)
	assert.Equal(t, 2, pub.events[0].Records)
	st.AssertExpectations(t)
	exp.AssertExpectations(t)
}

func TestRun_CredentialFailure(t *testing.T) {
	deps := testDeps()
	deps.BlizzardToken = credentials.Static("")
	st := new(mockStore)
	deps.Store = st

	_, err := New(deps).Run(context.Background())
	assert.ErrorIs(t, err, ErrCredentials)
	assert.ErrorIs(t, err, credentials.ErrTokenUnavailable)
	st.AssertNotCalled(t, "SaveAggregated", mock.Anything, mock.Anything)
}

func TestRun_DiscoveryFailure(t *testing.T) {
	deps := testDeps()
	deps.Discovery = fakeDiscovery{err: discovery.ErrDiscoveryFailed}
	deps.Store = new(mockStore)

	_, err := New(deps).Run(context.Background())
	assert.ErrorIs(t, err, discovery.ErrDiscoveryFailed)
}

func TestRun_ExportFailureIsNotFatal(t *testing.T) {
	deps := testDeps()
	st := new(mockStore)
	st.On("SaveAggregated", mock.Anything, mock.Anything).Return(nil)
	exp := new(mockExporter)
	exp.On("Export", mock.Anything, mock.Anything).Return(assert.AnError)
	deps.Store, deps.Exporter = st, exp

	res, err := New(deps).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Exported)
	assert.False(t, res.Published)
}

func TestRun_PersistFailure(t *testing.T) {
	deps := testDeps()
	st := new(mockStore)
	st.On("SaveAggregated", mock.Anything, mock.Anything).Return(assert.AnError)
	deps.Store = st

	_, err := New(deps).Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRun_SkipsOverlappingRuns(t *testing.T) {
	deps := testDeps()
	block, entered := make(chan struct{}), make(chan struct{})
	pricing := deps.Pricing.(fakePricing)
	pricing.block, pricing.entered = block, entered
	deps.Pricing = pricing
	st := new(mockStore)
	st.On("SaveAggregated", mock.Anything, mock.Anything).Return(nil)
	deps.Store = st

	p := New(deps)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = p.Run(context.Background())
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first run did not start")
	}

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(block)
	wg.Wait()
	assert.NoError(t, firstErr)
}
