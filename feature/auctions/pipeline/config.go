package pipeline

import (
	"auction-aggregator/core/credentials"
	"auction-aggregator/core/workerpool"
	"auction-aggregator/feature/auctions/discovery"
	"auction-aggregator/feature/auctions/media"
)

// Config holds the aggregation settings.
type Config struct {
	// RegionPrefixes lists the regions to aggregate, comma separated in the environment.
	RegionPrefixes []string `mapstructure:"region_prefixes" default:"eu,us"`
	// ExcludedGameVersion is skipped in every region.
	ExcludedGameVersion string `mapstructure:"excluded_game_version" default:"Retail"`
	// MinAuctionHouseRecords is the number of valid records an auction house needs to be kept.
	MinAuctionHouseRecords int `mapstructure:"min_auction_house_records" default:"5000"`
	// BatchSize is the number of rows per insert statement.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
	// Export writes the aggregated snapshot to object storage after each run.
	Export bool `mapstructure:"export" default:"true"`
	// ExportObject is the object key of the exported snapshot.
	ExportObject string `mapstructure:"export_object" default:"snapshots/latest.json"`
}

// RegionFilter returns the discovery filter for this configuration.
func (c Config) RegionFilter() discovery.RegionFilter {
	return discovery.RegionFilter{Prefixes: c.RegionPrefixes, ExcludedGameVersion: c.ExcludedGameVersion}
}

// TSMConfig configures the pricing provider (regions, realms and auction house listings).
type TSMConfig struct {
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	TokenURL     string `mapstructure:"token_url" default:"https://id.tradeskillmaster.com/realms/app/protocol/openid-connect/token"`
	// RealmURL serves /regions and /regions/{id}/realms.
	RealmURL string `mapstructure:"realm_url" default:"https://realm-api.tradeskillmaster.com"`
	// PricingURL serves /ah/{auctionHouseId}.
	PricingURL string `mapstructure:"pricing_url" default:"https://pricing-api.tradeskillmaster.com"`
	// Pool bounds concurrent requests to the provider.
	Pool workerpool.Config `mapstructure:"pool"`
}

// Credentials returns the token settings of the provider.
func (c TSMConfig) Credentials() credentials.Config {
	return credentials.Config{
		ClientID:          c.ClientID,
		ClientSecret:      c.ClientSecret,
		TokenURL:          c.TokenURL,
		AuthStyle:         credentials.AuthStyleParams,
		ExpirySkewSeconds: 60,
	}
}

// BlizzardConfig configures the item media provider.
type BlizzardConfig struct {
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	TokenURL     string `mapstructure:"token_url" default:"https://eu.battle.net/oauth/token"`
	APIURL       string `mapstructure:"api_url" default:"https://us.api.blizzard.com"`
	Namespace    string `mapstructure:"namespace" default:"static-us"`
	Locale       string `mapstructure:"locale" default:"en_US"`
	// Pool bounds concurrent requests to the provider.
	Pool workerpool.Config `mapstructure:"pool"`
}

// Credentials returns the token settings of the provider.
func (c BlizzardConfig) Credentials() credentials.Config {
	return credentials.Config{
		ClientID:          c.ClientID,
		ClientSecret:      c.ClientSecret,
		TokenURL:          c.TokenURL,
		AuthStyle:         credentials.AuthStyleBasic,
		ExpirySkewSeconds: 60,
	}
}

// Media returns the media endpoint settings.
func (c BlizzardConfig) Media() media.ClientConfig {
	return media.ClientConfig{BaseURL: c.APIURL, Namespace: c.Namespace, Locale: c.Locale}
}
