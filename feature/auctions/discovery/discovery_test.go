package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"auction-aggregator/core/credentials"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const regionsBody = `{"items":[
	{"regionId":1,"regionPrefix":"eu","gameVersion":"Classic","lastModified":1},
	{"regionId":2,"regionPrefix":"us","gameVersion":"Retail","lastModified":1},
	{"regionId":3,"regionPrefix":"kr","gameVersion":"Classic","lastModified":1},
	{"regionId":4,"regionPrefix":"us","gameVersion":"Classic","lastModified":1}
]}`

func newDiscovery(t *testing.T, handler http.HandlerFunc) *Discovery {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pool := workerpool.New("tsm", workerpool.Config{Workers: 4, TimeoutSeconds: 5}, nil)
	filter := RegionFilter{Prefixes: []string{"eu", "us"}, ExcludedGameVersion: "Retail"}
	client := upstream.NewClient(upstream.Config{TimeoutSeconds: 5})
	return New(client, srv.URL+"/", credentials.Static("tsm-token"), pool, filter, zap.NewNop())
}

func TestRegionFilter_Match(t *testing.T) {
	f := RegionFilter{Prefixes: []string{"eu", "us"}, ExcludedGameVersion: "Retail"}

	assert.True(t, f.Match(models.Region{Prefix: "eu", GameVersion: "Classic"}))
	assert.True(t, f.Match(models.Region{Prefix: "US", GameVersion: "Classic Era"}))
	assert.False(t, f.Match(models.Region{Prefix: "kr", GameVersion: "Classic"}))
	assert.False(t, f.Match(models.Region{Prefix: "eu", GameVersion: "Retail"}))
	assert.False(t, RegionFilter{}.Match(models.Region{Prefix: "eu", GameVersion: "Classic"}))
}

func TestDiscover(t *testing.T) {
	var (
		mu         sync.Mutex
		realmCalls []string
	)
	d := newDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tsm-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/regions":
			_, _ = w.Write([]byte(regionsBody))
		case "/regions/1/realms":
			mu.Lock()
			realmCalls = append(realmCalls, r.URL.Path)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"items":[
				{"realmId":12,"regionId":1,"name":"Firemaw","auctionHouses":[{"auctionHouseId":120,"type":"Alliance","lastModified":1700000000},{"auctionHouseId":121,"type":"Horde","lastModified":1700000001}]},
				{"realmId":11,"regionId":1,"name":"Gehennas","auctionHouses":[{"auctionHouseId":110,"type":"Horde","lastModified":1700000002}]}
			]}`))
		case "/regions/4/realms":
			mu.Lock()
			realmCalls = append(realmCalls, r.URL.Path)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"items":[{"realmId":41,"regionId":4,"name":"Whitemane","auctionHouses":[]}]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	realms, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, realms, 3)

	assert.Equal(t, "Firemaw", realms[0].Name)
	assert.Equal(t, "eu", realms[0].RegionPrefix)
	assert.Equal(t, "Classic", realms[0].GameVersion)
	assert.Equal(t, []models.AuctionHouseRef{
		{AuctionHouseID: 120, Type: "Alliance", LastModified: 1700000000},
		{AuctionHouseID: 121, Type: "Horde", LastModified: 1700000001},
	}, realms[0].AuctionHouses)
	assert.Equal(t, "Gehennas", realms[1].Name)
	assert.Equal(t, "Whitemane", realms[2].Name)
	assert.Equal(t, "us", realms[2].RegionPrefix)
	assert.Len(t, realmCalls, 2)
}

func TestDiscover_SkipsFailedRegion(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/regions":
			_, _ = w.Write([]byte(regionsBody))
		case "/regions/1/realms":
			w.WriteHeader(http.StatusBadGateway)
		case "/regions/4/realms":
			_, _ = w.Write([]byte(`{"items":[{"realmId":41,"regionId":4,"name":"Whitemane","auctionHouses":[{"auctionHouseId":410,"type":"Horde","lastModified":1}]}]}`))
		}
	})

	realms, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, realms, 1)
	assert.Equal(t, 41, realms[0].RealmID)
}

func TestDiscover_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "regions unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "regions schema mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"items":[{"regionId":0}]}`))
			},
		},
		{
			name: "no region selected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"items":[{"regionId":3,"regionPrefix":"kr","gameVersion":"Classic"}]}`))
			},
		},
		{
			name: "every region fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/regions" {
					_, _ = w.Write([]byte(regionsBody))
					return
				}
				_, _ = w.Write([]byte(`{"items":[{"realmId":-1}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiscovery(t, tt.handler)
			_, err := d.Discover(context.Background())
			assert.ErrorIs(t, err, ErrDiscoveryFailed)
		})
	}
}

func TestDiscover_TokenFailure(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	})
	d.token = credentials.Static("")

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrDiscoveryFailed)
	assert.ErrorIs(t, err, credentials.ErrTokenUnavailable)
}
