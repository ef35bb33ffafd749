package media

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"auction-aggregator/core/credentials"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CacheStore is the persistent media cache.
type CacheStore interface {
	MediaCache(ctx context.Context) (map[int]string, error)
	SaveMedia(ctx context.Context, entries []models.ItemMediaCacheEntry) error
}

// ClientConfig locates the item media endpoint.
type ClientConfig struct {
	BaseURL   string
	Namespace string
	Locale    string
}

type mediaResponse struct {
	Assets []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"assets"`
}

// ResolveStats describes one Resolve call.
type ResolveStats struct {
	Requested int `json:"requested"`
	Cached    int `json:"cached"`
	Fetched   int `json:"fetched"`
	Missing   int `json:"missing"`
}

// Resolver maps item ids to media URLs, fetching only ids missing from the cache.
type Resolver struct {
	store  CacheStore
	client *resty.Client
	cfg    ClientConfig
	token  credentials.Provider
	pool   *workerpool.Pool
	logger *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(store CacheStore, client *resty.Client, cfg ClientConfig, token credentials.Provider, pool *workerpool.Pool, logger *zap.Logger) *Resolver {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Resolver{
		store:  store,
		client: client,
		cfg:    cfg,
		token:  token,
		pool:   pool,
		logger: logger,
	}
}

// Resolve returns the media URL of every item in itemIDs that has one.
// Cached entries are never refetched; new entries are written back to the cache.
func (r *Resolver) Resolve(ctx context.Context, itemIDs []int) (map[int]string, ResolveStats, error) {
	cached, err := r.store.MediaCache(ctx)
	if err != nil {
		return nil, ResolveStats{}, fmt.Errorf("failed to load media cache: %w", err)
	}

	wanted := slices.Clone(itemIDs)
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	resolved := make(map[int]string, len(wanted))
	var toFetch []int
	for _, id := range wanted {
		if url, ok := cached[id]; ok {
			resolved[id] = url
			continue
		}
		toFetch = append(toFetch, id)
	}

	stats := ResolveStats{Requested: len(wanted), Cached: len(resolved)}
	r.logger.Info("Media cache lookup",
		zap.Int("requested", stats.Requested),
		zap.Int("cached", stats.Cached),
		zap.Int("to_fetch", len(toFetch)),
	)

	results := workerpool.Run(ctx, r.pool, toFetch, r.fetchOne)

	var fresh []models.ItemMediaCacheEntry
	for i, res := range results {
		if res.Err != nil || res.Value == "" {
			stats.Missing++
			r.logger.Debug("Item media unavailable", zap.Int("item_id", toFetch[i]), zap.Error(res.Err))
			continue
		}
		resolved[toFetch[i]] = res.Value
		fresh = append(fresh, models.ItemMediaCacheEntry{ItemID: toFetch[i], MediaURL: res.Value})
	}
	stats.Fetched = len(fresh)

	if err := r.store.SaveMedia(ctx, fresh); err != nil {
		r.logger.Warn("Failed to persist media cache entries", zap.Int("entries", len(fresh)), zap.Error(err))
	}

	if stats.Missing > 0 {
		r.logger.Warn("Some item media could not be resolved", zap.Int("missing", stats.Missing))
	}
	return resolved, stats, nil
}

// fetchOne returns the first asset URL of an item, or "" when it has none.
func (r *Resolver) fetchOne(ctx context.Context, itemID int) (string, error) {
	token, err := r.token.Token(ctx)
	if err != nil {
		return "", err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"namespace": r.cfg.Namespace,
			"locale":    r.cfg.Locale,
		}).
		Get(r.cfg.BaseURL + "/data/wow/media/item/" + strconv.Itoa(itemID))
	if err != nil {
		return "", err
	}

	var body mediaResponse
	if err := upstream.Decode(resp, &body); err != nil {
		return "", err
	}
	if len(body.Assets) == 0 {
		return "", nil
	}
	return body.Assets[0].Value, nil
}
