// Package export publishes the aggregated dataset of the last run as a JSON object in
// object storage. Only the latest snapshot is kept.
package export
