package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-aggregator/core/credentials"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFetcher(t *testing.T, handler http.HandlerFunc, jobTimeout time.Duration) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pool := workerpool.New("tsm", workerpool.Config{Workers: 3}, nil)
	f := NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), srv.URL, credentials.Static("tsm-token"), pool, zap.NewNop())
	if jobTimeout > 0 {
		f.client.SetTimeout(jobTimeout)
	}
	return f
}

func realms() []models.Realm {
	return []models.Realm{
		{
			RealmID: 11, RegionID: 1, Name: "Gehennas", RegionPrefix: "eu", GameVersion: "Classic",
			AuctionHouses: []models.AuctionHouseRef{
				{AuctionHouseID: 110, Type: "Horde", LastModified: 1700000000},
				{AuctionHouseID: 111, Type: "Alliance", LastModified: 1700000001},
			},
		},
		{
			RealmID: 41, RegionID: 4, Name: "Whitemane", RegionPrefix: "us", GameVersion: "Classic",
			AuctionHouses: []models.AuctionHouseRef{{AuctionHouseID: 410, Type: "Horde", LastModified: 1700000002}},
		},
	}
}

func TestFetch_StampsRecords(t *testing.T) {
	f := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tsm-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/ah/110":
			_, _ = w.Write([]byte(`[
				{"auctionHouseId":110,"itemId":2589,"petSpeciesId":null,"minBuyout":50,"quantity":10,"marketValue":100,"historical":90,"numAuctions":3},
				{"auctionHouseId":110,"itemId":82800,"petSpeciesId":39,"minBuyout":1,"quantity":1,"marketValue":2,"historical":3,"numAuctions":1}
			]`))
		case "/ah/111":
			_, _ = w.Write([]byte(`[]`))
		case "/ah/410":
			_, _ = w.Write([]byte(`[{"auctionHouseId":410,"itemId":2592,"minBuyout":5,"quantity":1,"marketValue":6,"historical":7,"numAuctions":1}]`))
		}
	}, 0)

	records := f.Fetch(context.Background(), realms())
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, 2589, first.ItemID)
	assert.Nil(t, first.PetSpeciesID)
	assert.Equal(t, "Gehennas", first.RealmName)
	assert.Equal(t, 1, first.RegionID)
	assert.Equal(t, 11, first.RealmID)
	assert.Equal(t, "eu", first.RegionPrefix)
	assert.Equal(t, "Classic", first.GameVersion)
	assert.Equal(t, int64(1700000000), first.LastModified)
	assert.Equal(t, "Horde", first.Type)

	require.NotNil(t, records[1].PetSpeciesID)
	assert.Equal(t, 39, *records[1].PetSpeciesID)

	assert.Equal(t, "Whitemane", records[2].RealmName)
	assert.Equal(t, "us", records[2].RegionPrefix)
}

func TestFetch_PartialFailures(t *testing.T) {
	f := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ah/110":
			w.WriteHeader(http.StatusNotFound)
		case "/ah/111":
			_, _ = w.Write([]byte(`[{"auctionHouseId":111,"itemId":0}]`))
		case "/ah/410":
			_, _ = w.Write([]byte(`[{"auctionHouseId":410,"itemId":2592,"marketValue":6,"historical":7}]`))
		}
	}, 0)

	records := f.Fetch(context.Background(), realms())
	require.Len(t, records, 1)
	assert.Equal(t, 410, records[0].AuctionHouseID)
}

func TestFetch_Timeout(t *testing.T) {
	f := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ah/110":
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`[{"auctionHouseId":110,"itemId":1,"marketValue":1,"historical":1}]`))
		case "/ah/410":
			_, _ = w.Write([]byte(`[{"auctionHouseId":410,"itemId":2,"marketValue":1,"historical":1}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}, 50*time.Millisecond)

	records := f.Fetch(context.Background(), realms())
	require.Len(t, records, 1)
	assert.Equal(t, 410, records[0].AuctionHouseID)
}

func TestFetch_NoRealms(t *testing.T) {
	f := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, 0)

	assert.Empty(t, f.Fetch(context.Background(), nil))
}
