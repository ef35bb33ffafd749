package reference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-aggregator/core/database"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/validation"
	"auction-aggregator/feature/auctions/models"
	"auction-aggregator/feature/auctions/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogBody = `{
	"2592": {"itemID": 2592, "itemName": "Wool Cloth", "itemQuality": 1, "item_class": 7, "item_subclass": 5},
	"2589": {"itemID": 2589, "itemName": "Linen Cloth", "itemQuality": 1, "item_class": 7, "item_subclass": 5}
}`

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	s := store.New(db, 0, zap.NewNop(), nil)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func catalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var query map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.Equal(t, float64(1), query["ilvl"])
		assert.Equal(t, float64(-1), query["itemQuality"])
		assert.Equal(t, float64(-1), query["required_level"])
		assert.Equal(t, []any{float64(-1)}, query["item_class"])
		assert.Equal(t, []any{float64(-1)}, query["item_subclass"])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := catalogServer(t, http.StatusOK, catalogBody)
	f := NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), Config{URL: srv.URL})

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.ReferenceItem{
		{ItemID: 2589, ItemName: "Linen Cloth", ItemQuality: 1, ItemClass: 7, ItemSubClass: 5},
		{ItemID: 2592, ItemName: "Wool Cloth", ItemQuality: 1, ItemClass: 7, ItemSubClass: 5},
	}, items)
}

func TestFetch_SchemaMismatch(t *testing.T) {
	srv := catalogServer(t, http.StatusOK, `{"1": {"itemID": 0}}`)
	f := NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), Config{URL: srv.URL})

	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, validation.ErrSchemaMismatch)
}

func TestRefresh(t *testing.T) {
	srv := catalogServer(t, http.StatusOK, catalogBody)
	s := newStore(t)
	r := NewRefresher(NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), Config{URL: srv.URL}), s, zap.NewNop())

	items, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Linen Cloth", items[2589].ItemName)

	again, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestRefresh_FallsBackToStoredCatalog(t *testing.T) {
	srv := catalogServer(t, http.StatusServiceUnavailable, `oops`)
	s := newStore(t)
	require.NoError(t, s.SaveReferenceItems(context.Background(), []models.ReferenceItem{{ItemID: 1, ItemName: "Stored"}}))

	r := NewRefresher(NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), Config{URL: srv.URL}), s, zap.NewNop())

	items, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]models.ReferenceItem{1: {ItemID: 1, ItemName: "Stored"}}, items)
}

func TestRefresh_NoData(t *testing.T) {
	srv := catalogServer(t, http.StatusServiceUnavailable, `oops`)
	r := NewRefresher(NewFetcher(upstream.NewClient(upstream.Config{TimeoutSeconds: 5}), Config{URL: srv.URL}), newStore(t), zap.NewNop())

	_, err := r.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoReferenceData)
}
