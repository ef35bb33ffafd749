package models

// ReferenceItemRow represents the 'reference_items' table.
type ReferenceItemRow struct {
	ItemID       int    `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	ItemName     string `gorm:"column:item_name;size:255"`
	ItemQuality  int    `gorm:"column:item_quality"`
	ItemClass    int    `gorm:"column:item_class"`
	ItemSubClass int    `gorm:"column:item_sub_class"`
}

// TableName overrides the table name.
func (ReferenceItemRow) TableName() string {
	return "reference_items"
}

// ToDomain converts the row to a ReferenceItem.
func (r ReferenceItemRow) ToDomain() ReferenceItem {
	return ReferenceItem{
		ItemID:       r.ItemID,
		ItemName:     r.ItemName,
		ItemQuality:  r.ItemQuality,
		ItemClass:    r.ItemClass,
		ItemSubClass: r.ItemSubClass,
	}
}

// NewReferenceItemRow converts a ReferenceItem to its row.
func NewReferenceItemRow(item ReferenceItem) ReferenceItemRow {
	return ReferenceItemRow(item)
}

// ItemMediaCacheRow represents the 'item_media_caches' table.
type ItemMediaCacheRow struct {
	ItemID       int    `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	ItemMediaURL string `gorm:"column:item_media_url;size:512;not null"`
}

// TableName overrides the table name.
func (ItemMediaCacheRow) TableName() string {
	return "item_media_caches"
}

// ToDomain converts the row to an ItemMediaCacheEntry.
func (r ItemMediaCacheRow) ToDomain() ItemMediaCacheEntry {
	return ItemMediaCacheEntry{ItemID: r.ItemID, MediaURL: r.ItemMediaURL}
}

// NewItemMediaCacheRow converts a cache entry to its row.
func NewItemMediaCacheRow(e ItemMediaCacheEntry) ItemMediaCacheRow {
	return ItemMediaCacheRow{ItemID: e.ItemID, ItemMediaURL: e.MediaURL}
}

// AggregatedAuctionRow represents the 'aggregated_auction_items' table.
// One row per item per auction house snapshot; PetSpeciesID 0 means "not a pet".
type AggregatedAuctionRow struct {
	AuctionHouseID int     `gorm:"column:auction_house_id;primaryKey;autoIncrement:false"`
	ItemID         int     `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	PetSpeciesID   int     `gorm:"column:pet_species_id;primaryKey;autoIncrement:false"`
	LastModified   int64   `gorm:"column:last_modified;primaryKey;autoIncrement:false"`
	MinBuyout      float64 `gorm:"column:min_buyout"`
	Quantity       int     `gorm:"column:quantity"`
	MarketValue    float64 `gorm:"column:market_value"`
	Historical     float64 `gorm:"column:historical"`
	NumAuctions    int     `gorm:"column:num_auctions"`
	RealmName      string  `gorm:"column:realm_name;size:128"`
	RegionID       int     `gorm:"column:region_id;index"`
	RealmID        int     `gorm:"column:realm_id;index"`
	RegionPrefix   string  `gorm:"column:region_prefix;size:8"`
	GameVersion    string  `gorm:"column:game_version;size:64"`
	Type           string  `gorm:"column:type;size:32"`
	ItemMediaURL   string  `gorm:"column:item_media_url;size:512"`
	ItemName       string  `gorm:"column:item_name;size:255"`
	ItemQuality    int     `gorm:"column:item_quality"`
	ItemClass      int     `gorm:"column:item_class"`
	ItemSubClass   int     `gorm:"column:item_sub_class"`
}

// TableName overrides the table name.
func (AggregatedAuctionRow) TableName() string {
	return "aggregated_auction_items"
}

// NewAggregatedAuctionRow converts an AggregatedRecord to its row.
func NewAggregatedAuctionRow(r AggregatedRecord) AggregatedAuctionRow {
	pet := 0
	if r.PetSpeciesID != nil {
		pet = *r.PetSpeciesID
	}
	return AggregatedAuctionRow{
		AuctionHouseID: r.AuctionHouseID,
		ItemID:         r.ItemID,
		PetSpeciesID:   pet,
		LastModified:   r.LastModified,
		MinBuyout:      r.MinBuyout,
		Quantity:       r.Quantity,
		MarketValue:    r.MarketValue,
		Historical:     r.Historical,
		NumAuctions:    r.NumAuctions,
		RealmName:      r.RealmName,
		RegionID:       r.RegionID,
		RealmID:        r.RealmID,
		RegionPrefix:   r.RegionPrefix,
		GameVersion:    r.GameVersion,
		Type:           r.Type,
		ItemMediaURL:   r.ItemMediaURL,
		ItemName:       r.ItemName,
		ItemQuality:    r.ItemQuality,
		ItemClass:      r.ItemClass,
		ItemSubClass:   r.ItemSubClass,
	}
}

// ToDomain converts the row back to an AggregatedRecord.
func (a AggregatedAuctionRow) ToDomain() AggregatedRecord {
	var pet *int
	if a.PetSpeciesID != 0 {
		p := a.PetSpeciesID
		pet = &p
	}
	return AggregatedRecord{
		PricingRecord: PricingRecord{
			AuctionHouseID: a.AuctionHouseID,
			ItemID:         a.ItemID,
			PetSpeciesID:   pet,
			MinBuyout:      a.MinBuyout,
			Quantity:       a.Quantity,
			MarketValue:    a.MarketValue,
			Historical:     a.Historical,
			NumAuctions:    a.NumAuctions,
			RealmName:      a.RealmName,
			RegionID:       a.RegionID,
			RealmID:        a.RealmID,
			RegionPrefix:   a.RegionPrefix,
			GameVersion:    a.GameVersion,
			LastModified:   a.LastModified,
			Type:           a.Type,
		},
		ItemMediaURL: a.ItemMediaURL,
		ItemName:     a.ItemName,
		ItemQuality:  a.ItemQuality,
		ItemClass:    a.ItemClass,
		ItemSubClass: a.ItemSubClass,
	}
}
