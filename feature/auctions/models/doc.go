// Package models defines the auction data model and its database rows.
//
// Domain types (Region, Realm, PricingRecord, AggregatedRecord, ...) carry JSON tags that
// match the upstream and API payloads. Row types carry GORM tags and convert to and from
// the domain types with ToDomain / New*Row.
package models
