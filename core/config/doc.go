// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file. Every field
// carries a `mapstructure` key and a `default` tag; nested keys map to upper-case env vars
// joined with underscores (tsm.client_id -> TSM_CLIENT_ID, tsm.pool.concurrency ->
// TSM_POOL_CONCURRENCY). List values are comma separated.
//
// # Configuration Structure
//
//   - Server: HTTP port, run schedule, query cache TTL
//   - Database: MySQL, PostgreSQL or SQLite connection
//   - Storage: MinIO/S3 snapshot bucket
//   - Log: level, format, optional rotated file
//   - Upstream: shared HTTP timeout, retries and user agent
//   - TSM, Blizzard: provider credentials, endpoints and worker pools
//   - Reference: reference catalog endpoint
//   - Pipeline: region selection, volume threshold, batch size, export
//   - Events: kafka run events
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.MinAuctionHouseRecords)
package config
