package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"auction-aggregator/core/upstream"
	"auction-aggregator/feature/auctions/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNoReferenceData is returned when the catalog can neither be fetched nor read from the store.
var ErrNoReferenceData = errors.New("no reference data available")

// Config locates the reference catalog.
type Config struct {
	// URL is the item data endpoint.
	URL string `mapstructure:"url" default:"http://api.saddlebagexchange.com/api/wow/itemdata"`
}

// Store persists the reference catalog.
type Store interface {
	ReferenceItems(ctx context.Context) (map[int]models.ReferenceItem, error)
	SaveReferenceItems(ctx context.Context, items []models.ReferenceItem) error
}

// catalogQuery asks for every item regardless of level, quality or class.
type catalogQuery struct {
	ItemLevel     int   `json:"ilvl"`
	ItemQuality   int   `json:"itemQuality"`
	RequiredLevel int   `json:"required_level"`
	ItemClass     []int `json:"item_class"`
	ItemSubClass  []int `json:"item_subclass"`
}

var allItems = catalogQuery{
	ItemLevel:     1,
	ItemQuality:   -1,
	RequiredLevel: -1,
	ItemClass:     []int{-1},
	ItemSubClass:  []int{-1},
}

type catalogEntry struct {
	ItemID       int    `json:"itemID" validate:"gt=0"`
	ItemName     string `json:"itemName"`
	ItemQuality  int    `json:"itemQuality"`
	ItemClass    int    `json:"item_class"`
	ItemSubClass int    `json:"item_subclass"`
}

// catalogResponse is keyed by item id as a string.
type catalogResponse struct {
	Items map[string]catalogEntry `validate:"dive"`
}

func (c *catalogResponse) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Items)
}

// Fetcher downloads the reference catalog.
type Fetcher struct {
	client *resty.Client
	url    string
}

// NewFetcher creates a Fetcher.
func NewFetcher(client *resty.Client, cfg Config) *Fetcher {
	return &Fetcher{client: client, url: strings.TrimSpace(cfg.URL)}
}

// Fetch returns every catalog item ordered by item id.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.ReferenceItem, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(allItems).
		Post(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference catalog: %w", err)
	}

	var body catalogResponse
	if err := upstream.Decode(resp, &body); err != nil {
		return nil, fmt.Errorf("failed to decode reference catalog: %w", err)
	}

	items := make([]models.ReferenceItem, 0, len(body.Items))
	for _, e := range body.Items {
		items = append(items, models.ReferenceItem(e))
	}
	slices.SortFunc(items, func(a, b models.ReferenceItem) int { return a.ItemID - b.ItemID })
	return items, nil
}

// Refresher keeps the persisted catalog up to date.
type Refresher struct {
	fetcher *Fetcher
	store   Store
	logger  *zap.Logger
}

// NewRefresher creates a Refresher.
func NewRefresher(fetcher *Fetcher, store Store, logger *zap.Logger) *Refresher {
	return &Refresher{fetcher: fetcher, store: store, logger: logger}
}

// Refresh fetches the catalog, inserts items not yet stored and returns the full stored catalog.
// When the fetch fails, the previously stored catalog is returned instead.
func (r *Refresher) Refresh(ctx context.Context) (map[int]models.ReferenceItem, error) {
	items, fetchErr := r.fetcher.Fetch(ctx)
	if fetchErr == nil {
		if err := r.store.SaveReferenceItems(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to save reference items: %w", err)
		}
		r.logger.Info("Reference catalog refreshed", zap.Int("items", len(items)))
	} else {
		r.logger.Warn("Reference catalog fetch failed, using stored catalog", zap.Error(fetchErr))
	}

	stored, err := r.store.ReferenceItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 && fetchErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoReferenceData, fetchErr)
	}
	return stored, nil
}
