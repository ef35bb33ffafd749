package aggregate

import (
	"slices"
	"sort"

	"auction-aggregator/feature/auctions/models"
)

// FilterValid keeps records with a positive market value and a positive historical price.
func FilterValid(records []models.PricingRecord) []models.PricingRecord {
	out := make([]models.PricingRecord, 0, len(records))
	for _, r := range records {
		if r.MarketValue > 0 && r.Historical > 0 {
			out = append(out, r)
		}
	}
	return out
}

// SortByRegionRealm orders records by region id, then realm id. Equal keys keep their input order.
// The input slice is not modified.
func SortByRegionRealm(records []models.PricingRecord) []models.PricingRecord {
	out := slices.Clone(records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RegionID != out[j].RegionID {
			return out[i].RegionID < out[j].RegionID
		}
		return out[i].RealmID < out[j].RealmID
	})
	return out
}

// FilterVolume drops every record of an auction house that has fewer than threshold records.
func FilterVolume(records []models.PricingRecord, threshold int) []models.PricingRecord {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.AuctionHouseID]++
	}

	out := make([]models.PricingRecord, 0, len(records))
	for _, r := range records {
		if counts[r.AuctionHouseID] >= threshold {
			out = append(out, r)
		}
	}
	return out
}

// MediaJoined is a pricing record paired with its resolved media URL.
type MediaJoined struct {
	Record   models.PricingRecord
	MediaURL string
}

// JoinMedia attaches media URLs and drops records whose item has none.
func JoinMedia(records []models.PricingRecord, media map[int]string) []MediaJoined {
	out := make([]MediaJoined, 0, len(records))
	for _, r := range records {
		url, ok := media[r.ItemID]
		if !ok || url == "" {
			continue
		}
		out = append(out, MediaJoined{Record: r, MediaURL: url})
	}
	return out
}

// JoinReference attaches reference attributes and drops records whose item is not in the catalog.
func JoinReference(records []MediaJoined, reference map[int]models.ReferenceItem) []models.AggregatedRecord {
	out := make([]models.AggregatedRecord, 0, len(records))
	for _, r := range records {
		ref, ok := reference[r.Record.ItemID]
		if !ok {
			continue
		}
		out = append(out, models.NewAggregatedRecord(r.Record, r.MediaURL, ref))
	}
	return out
}

// UniqueItemIDs returns the distinct item ids of records in ascending order.
func UniqueItemIDs(records []models.PricingRecord) []int {
	seen := make(map[int]struct{}, len(records))
	ids := make([]int, 0)
	for _, r := range records {
		if _, ok := seen[r.ItemID]; ok {
			continue
		}
		seen[r.ItemID] = struct{}{}
		ids = append(ids, r.ItemID)
	}
	slices.Sort(ids)
	return ids
}
