// Package aggregate turns raw pricing records into the aggregated dataset.
//
// The stages run in a fixed order:
//
//  1. FilterValid drops records without a positive market value and historical price.
//  2. SortByRegionRealm orders by (region id, realm id), stable.
//  3. FilterVolume drops auction houses below the record threshold.
//  4. JoinMedia drops records without a media URL.
//  5. JoinReference drops records without a reference item.
//
// Engine.Prepare runs stages 1-3 and Engine.Join runs stages 4-5, so media resolution can be
// limited to the item ids that survived the volume threshold.
package aggregate
