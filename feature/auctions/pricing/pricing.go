package pricing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"auction-aggregator/core/credentials"
	"auction-aggregator/core/upstream"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type listing struct {
	AuctionHouseID int     `json:"auctionHouseId" validate:"gt=0"`
	ItemID         int     `json:"itemId" validate:"gt=0"`
	PetSpeciesID   *int    `json:"petSpeciesId"`
	MinBuyout      float64 `json:"minBuyout"`
	Quantity       int     `json:"quantity"`
	MarketValue    float64 `json:"marketValue"`
	Historical     float64 `json:"historical"`
	NumAuctions    int     `json:"numAuctions"`
}

// job is one (realm, auction house) pair to fetch.
type job struct {
	realm models.Realm
	house models.AuctionHouseRef
}

// Fetcher downloads the pricing snapshot of every auction house.
type Fetcher struct {
	client  *resty.Client
	baseURL string
	token   credentials.Provider
	pool    *workerpool.Pool
	logger  *zap.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(client *resty.Client, baseURL string, token credentials.Provider, pool *workerpool.Pool, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		pool:    pool,
		logger:  logger,
	}
}

// Fetch returns the records of every auction house of realms, concatenated in realm order.
// An auction house whose fetch fails contributes nothing.
func (f *Fetcher) Fetch(ctx context.Context, realms []models.Realm) []models.PricingRecord {
	var jobs []job
	for _, realm := range realms {
		for _, house := range realm.AuctionHouses {
			jobs = append(jobs, job{realm: realm, house: house})
		}
	}

	results := workerpool.Run(ctx, f.pool, jobs, f.fetchOne)

	var records []models.PricingRecord
	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			f.logger.Warn("Auction house fetch failed",
				zap.Int("auction_house_id", jobs[i].house.AuctionHouseID),
				zap.String("realm", jobs[i].realm.Name),
				zap.Duration("duration", res.Duration),
				zap.Error(res.Err),
			)
			continue
		}
		records = append(records, res.Value...)
	}

	f.logger.Info("Pricing fetched",
		zap.Int("auction_houses", len(jobs)),
		zap.Int("failed", failed),
		zap.Int("records", len(records)),
	)
	return records
}

func (f *Fetcher) fetchOne(ctx context.Context, j job) ([]models.PricingRecord, error) {
	token, err := f.token.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(f.baseURL + "/ah/" + strconv.Itoa(j.house.AuctionHouseID))
	if err != nil {
		return nil, err
	}

	listings, err := upstream.DecodeList[listing](resp)
	if err != nil {
		return nil, fmt.Errorf("auction house %d: %w", j.house.AuctionHouseID, err)
	}

	records := make([]models.PricingRecord, len(listings))
	for i, l := range listings {
		records[i] = models.PricingRecord{
			AuctionHouseID: l.AuctionHouseID,
			ItemID:         l.ItemID,
			PetSpeciesID:   l.PetSpeciesID,
			MinBuyout:      l.MinBuyout,
			Quantity:       l.Quantity,
			MarketValue:    l.MarketValue,
			Historical:     l.Historical,
			NumAuctions:    l.NumAuctions,
			RealmName:      j.realm.Name,
			RegionID:       j.realm.RegionID,
			RealmID:        j.realm.RealmID,
			RegionPrefix:   j.realm.RegionPrefix,
			GameVersion:    j.realm.GameVersion,
			LastModified:   j.house.LastModified,
			Type:           j.house.Type,
		}
	}
	return records, nil
}
