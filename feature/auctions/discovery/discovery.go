package discovery

import (
	"context"
	"errors"
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

// ErrDiscoveryFailed is returned when no realm could be discovered.
var ErrDiscoveryFailed = errors.New("region and realm discovery failed")

// RegionFilter selects the regions whose realms are aggregated.
type RegionFilter struct {
	// Prefixes lists the accepted region prefixes (e.g. "eu", "us").
	Prefixes []string
	// ExcludedGameVersion is never selected (e.g. "Retail").
	ExcludedGameVersion string
}

// Match reports whether a region passes the filter.
func (f RegionFilter) Match(r models.Region) bool {
	if r.GameVersion == f.ExcludedGameVersion {
		return false
	}
	return slices.ContainsFunc(f.Prefixes, func(p string) bool {
		return strings.EqualFold(strings.TrimSpace(p), r.Prefix)
	})
}

type regionsResponse struct {
	Items []regionEntry `json:"items" validate:"dive"`
}

type regionEntry struct {
	RegionID    int    `json:"regionId" validate:"gt=0"`
	Prefix      string `json:"regionPrefix" validate:"required"`
	GameVersion string `json:"gameVersion" validate:"required"`
}

type realmsResponse struct {
	Items []realmEntry `json:"items" validate:"dive"`
}

type realmEntry struct {
	RealmID       int                 `json:"realmId" validate:"gt=0"`
	RegionID      int                 `json:"regionId" validate:"gt=0"`
	Name          string              `json:"name" validate:"required"`
	AuctionHouses []auctionHouseEntry `json:"auctionHouses" validate:"dive"`
}

type auctionHouseEntry struct {
	AuctionHouseID int    `json:"auctionHouseId" validate:"gt=0"`
	Type           string `json:"type"`
	LastModified   int64  `json:"lastModified"`
}

// Discovery lists regions and realms from the realm API.
type Discovery struct {
	client  *resty.Client
	baseURL string
	token   credentials.Provider
	pool    *workerpool.Pool
	filter  RegionFilter
	logger  *zap.Logger
}

// New creates a Discovery.
func New(client *resty.Client, baseURL string, token credentials.Provider, pool *workerpool.Pool, filter RegionFilter, logger *zap.Logger) *Discovery {
	return &Discovery{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		pool:    pool,
		filter:  filter,
		logger:  logger,
	}
}

// Regions fetches every region known to the realm API.
func (d *Discovery) Regions(ctx context.Context) ([]models.Region, error) {
	var body regionsResponse
	if err := d.get(ctx, "/regions", &body); err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	regions := make([]models.Region, len(body.Items))
	for i, r := range body.Items {
		regions[i] = models.Region(r)
	}
	return regions, nil
}

// Realms fetches the realms of one region and stamps them with the region's prefix and game version.
func (d *Discovery) Realms(ctx context.Context, region models.Region) ([]models.Realm, error) {
	var body realmsResponse
	path := "/regions/" + strconv.Itoa(region.RegionID) + "/realms"
	if err := d.get(ctx, path, &body); err != nil {
		return nil, fmt.Errorf("failed to list realms of region %d: %w", region.RegionID, err)
	}

	realms := make([]models.Realm, len(body.Items))
	for i, r := range body.Items {
		houses := make([]models.AuctionHouseRef, len(r.AuctionHouses))
		for j, ah := range r.AuctionHouses {
			houses[j] = models.AuctionHouseRef(ah)
		}
		realms[i] = models.Realm{
			RealmID:       r.RealmID,
			RegionID:      r.RegionID,
			Name:          r.Name,
			RegionPrefix:  region.Prefix,
			GameVersion:   region.GameVersion,
			AuctionHouses: houses,
		}
	}
	return realms, nil
}

// Discover returns the realms of every selected region, flattened in region order.
// Regions whose realm listing fails are skipped.
func (d *Discovery) Discover(ctx context.Context) ([]models.Realm, error) {
	regions, err := d.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailed, err)
	}

	var selected []models.Region
	for _, r := range regions {
		if d.filter.Match(r) {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no region matches prefixes %v", ErrDiscoveryFailed, d.filter.Prefixes)
	}

	d.logger.Info("Regions selected",
		zap.Int("total", len(regions)),
		zap.Int("selected", len(selected)),
	)

	results := workerpool.Run(ctx, d.pool, selected, d.Realms)

	var realms []models.Realm
	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			d.logger.Warn("Skipping region",
				zap.Int("region_id", selected[i].RegionID),
				zap.String("region_prefix", selected[i].Prefix),
				zap.Error(res.Err),
			)
			continue
		}
		realms = append(realms, res.Value...)
	}

	if failed == len(selected) {
		return nil, fmt.Errorf("%w: all %d selected regions failed", ErrDiscoveryFailed, failed)
	}

	d.logger.Info("Realms discovered",
		zap.Int("realms", len(realms)),
		zap.Int("failed_regions", failed),
	)
	return realms, nil
}

func (d *Discovery) get(ctx context.Context, path string, out any) error {
	token, err := d.token.Token(ctx)
	if err != nil {
		return err
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(d.baseURL + path)
	if err != nil {
		return err
	}
	return upstream.Decode(resp, out)
}
