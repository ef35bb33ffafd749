// Package auctions serves the aggregated auction dataset over HTTP.
//
// Listings are computed per request from the latest stored snapshot: the flipping score and
// price ratios are never persisted. The dataset itself is cached in memory for a short TTL
// and the cache is dropped after each successful pipeline run.
//
// The aggregation pipeline and its stages live in the sub-packages.
package auctions
