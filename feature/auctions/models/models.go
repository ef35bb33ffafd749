package models

// Region is a geographic/platform grouping of realms.
type Region struct {
	RegionID    int    `json:"regionId"`
	Prefix      string `json:"regionPrefix"`
	GameVersion string `json:"gameVersion"`
}

// AuctionHouseRef identifies one auction house of a realm.
type AuctionHouseRef struct {
	AuctionHouseID int    `json:"auctionHouseId"`
	Type           string `json:"type"`
	LastModified   int64  `json:"lastModified"` // Unix timestamp
}

// Realm is a game server hosting auction houses. RegionPrefix and GameVersion are copied
// from the owning region when the realm is discovered.
type Realm struct {
	RealmID       int               `json:"realmId"`
	RegionID      int               `json:"regionId"`
	Name          string            `json:"name"`
	RegionPrefix  string            `json:"regionPrefix"`
	GameVersion   string            `json:"gameVersion"`
	AuctionHouses []AuctionHouseRef `json:"auctionHouses"`
}

// PricingRecord is one item listing summary of an auction house snapshot.
type PricingRecord struct {
	AuctionHouseID int     `json:"auctionHouseId"`
	ItemID         int     `json:"itemId"`
	PetSpeciesID   *int    `json:"petSpeciesId"`
	MinBuyout      float64 `json:"minBuyout"`
	Quantity       int     `json:"quantity"`
	MarketValue    float64 `json:"marketValue"`
	Historical     float64 `json:"historical"`
	NumAuctions    int     `json:"numAuctions"`
	RealmName      string  `json:"name"`
	RegionID       int     `json:"regionId"`
	RealmID        int     `json:"realmId"`
	RegionPrefix   string  `json:"regionPrefix"`
	GameVersion    string  `json:"gameVersion"`
	LastModified   int64   `json:"lastModified"`
	Type           string  `json:"type"`
}

// ItemMediaCacheEntry maps an item to its display image.
type ItemMediaCacheEntry struct {
	ItemID   int    `json:"itemId"`
	MediaURL string `json:"itemMediaUrl"`
}

// ReferenceItem holds descriptive item attributes from the reference catalog.
type ReferenceItem struct {
	ItemID       int    `json:"itemId"`
	ItemName     string `json:"itemName"`
	ItemQuality  int    `json:"itemQuality"`
	ItemClass    int    `json:"itemClass"`
	ItemSubClass int    `json:"itemSubClass"`
}

// AggregatedRecord is the pipeline output: a pricing record joined with media and reference data.
type AggregatedRecord struct {
	PricingRecord
	ItemMediaURL string `json:"itemMediaUrl"`
	ItemName     string `json:"itemName"`
	ItemQuality  int    `json:"itemQuality"`
	ItemClass    int    `json:"itemClass"`
	ItemSubClass int    `json:"itemSubClass"`
}

// NewAggregatedRecord joins a pricing record with its media URL and reference item.
func NewAggregatedRecord(p PricingRecord, mediaURL string, ref ReferenceItem) AggregatedRecord {
	return AggregatedRecord{
		PricingRecord: p,
		ItemMediaURL:  mediaURL,
		ItemName:      ref.ItemName,
		ItemQuality:   ref.ItemQuality,
		ItemClass:     ref.ItemClass,
		ItemSubClass:  ref.ItemSubClass,
	}
}
