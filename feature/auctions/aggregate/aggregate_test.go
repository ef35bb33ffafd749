package aggregate

import (
	"testing"

	"auction-aggregator/feature/auctions/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func record(ah, item, region, realm int) models.PricingRecord {
	return models.PricingRecord{
		AuctionHouseID: ah,
		ItemID:         item,
		RegionID:       region,
		RealmID:        realm,
		MarketValue:    100,
		Historical:     90,
		MinBuyout:      50,
		Quantity:       10,
	}
}

func repeat(n, ah, region, realm int) []models.PricingRecord {
	out := make([]models.PricingRecord, n)
	for i := range out {
		out[i] = record(ah, i+1, region, realm)
	}
	return out
}

func TestFilterValid(t *testing.T) {
	in := []models.PricingRecord{
		{ItemID: 1, MarketValue: 10, Historical: 10},
		{ItemID: 2, MarketValue: 0, Historical: 10},
		{ItemID: 3, MarketValue: 10, Historical: 0},
		{ItemID: 4, MarketValue: -1, Historical: 5},
		{ItemID: 5, MarketValue: 0.5, Historical: 0.5},
	}

	out := FilterValid(in)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ItemID)
	assert.Equal(t, 5, out[1].ItemID)
}

func TestSortByRegionRealm_Stable(t *testing.T) {
	in := []models.PricingRecord{
		record(1, 10, 2, 5),
		record(1, 11, 1, 7),
		record(1, 12, 1, 3),
		record(1, 13, 2, 5),
		record(1, 14, 1, 3),
	}

	out := SortByRegionRealm(in)

	var items []int
	for _, r := range out {
		items = append(items, r.ItemID)
	}
	assert.Equal(t, []int{12, 14, 11, 10, 13}, items)
	assert.Equal(t, 10, in[0].ItemID, "input must not be reordered")
}

func TestFilterVolume_Boundary(t *testing.T) {
	records := append(repeat(4999, 1, 1, 1), repeat(5000, 2, 1, 2)...)

	out := FilterVolume(records, 5000)

	require.Len(t, out, 5000)
	for _, r := range out {
		assert.Equal(t, 2, r.AuctionHouseID)
	}
}

func TestFilterVolume_ZeroThresholdKeepsAll(t *testing.T) {
	records := repeat(3, 1, 1, 1)
	assert.Len(t, FilterVolume(records, 0), 3)
}

func TestJoinMedia(t *testing.T) {
	records := []models.PricingRecord{record(1, 1, 1, 1), record(1, 2, 1, 1), record(1, 3, 1, 1)}
	media := map[int]string{1: "https://render/1.jpg", 3: ""}

	out := JoinMedia(records, media)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Record.ItemID)
	assert.Equal(t, "https://render/1.jpg", out[0].MediaURL)
}

func TestJoinReference(t *testing.T) {
	joined := []MediaJoined{
		{Record: record(1, 1, 1, 1), MediaURL: "u1"},
		{Record: record(1, 2, 1, 1), MediaURL: "u2"},
	}
	reference := map[int]models.ReferenceItem{
		2: {ItemID: 2, ItemName: "Copper Ore", ItemQuality: 1, ItemClass: 7, ItemSubClass: 7},
	}

	out := JoinReference(joined, reference)

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].ItemID)
	assert.Equal(t, "u2", out[0].ItemMediaURL)
	assert.Equal(t, "Copper Ore", out[0].ItemName)
	assert.Equal(t, 7, out[0].ItemSubClass)
}

func TestUniqueItemIDs(t *testing.T) {
	records := []models.PricingRecord{record(1, 9, 1, 1), record(2, 3, 1, 1), record(3, 9, 1, 1), record(1, 1, 1, 1)}
	assert.Equal(t, []int{1, 3, 9}, UniqueItemIDs(records))
	assert.Empty(t, UniqueItemIDs(nil))
}

func TestEngine_JoinCompleteness(t *testing.T) {
	engine := NewEngine(2, zap.NewNop(), nil)

	in := []models.PricingRecord{
		record(1, 1, 2, 1),
		record(1, 2, 2, 1),
		record(1, 3, 2, 1),
		record(2, 1, 1, 1), // below threshold
		{AuctionHouseID: 1, ItemID: 4, RegionID: 2, RealmID: 1, MarketValue: 0, Historical: 5},
	}

	prepared := engine.Prepare(in)
	require.Len(t, prepared.Records, 3)
	assert.Equal(t, []int{1, 2, 3}, prepared.ItemIDs)

	media := map[int]string{1: "m1", 2: "m2"}
	reference := map[int]models.ReferenceItem{1: {ItemID: 1}, 3: {ItemID: 3}}

	out := engine.Join(prepared.Records, media, reference)

	require.Len(t, out, 1)
	for _, r := range out {
		assert.NotEmpty(t, r.ItemMediaURL)
		_, ok := reference[r.ItemID]
		assert.True(t, ok)
	}
}
