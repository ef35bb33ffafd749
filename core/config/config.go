package config

import (
	"reflect"
	"strings"

	"auction-aggregator/core/database"
	"auction-aggregator/core/logger"
	"auction-aggregator/core/server"
	"auction-aggregator/core/storage"
	"auction-aggregator/core/upstream"
	"auction-aggregator/feature/auctions/notify"
	"auction-aggregator/feature/auctions/pipeline"
	"auction-aggregator/feature/auctions/reference"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server and the run schedule.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage receiving snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Upstream holds HTTP settings shared by all providers.
	Upstream upstream.Config `mapstructure:"upstream"`
	// TSM holds the pricing provider settings.
	TSM pipeline.TSMConfig `mapstructure:"tsm"`
	// Blizzard holds the media provider settings.
	Blizzard pipeline.BlizzardConfig `mapstructure:"blizzard"`
	// Reference holds the reference catalog settings.
	Reference reference.Config `mapstructure:"reference"`
	// Pipeline holds the aggregation settings.
	Pipeline pipeline.Config `mapstructure:"pipeline"`
	// Events holds the run event settings.
	Events notify.Config `mapstructure:"events"`
}

// PipelineSettings returns the sections the pipeline is built from.
func (c *Config) PipelineSettings() pipeline.Settings {
	return pipeline.Settings{
		Pipeline:  c.Pipeline,
		TSM:       c.TSM,
		Blizzard:  c.Blizzard,
		Reference: c.Reference,
		Upstream:  c.Upstream,
	}
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine in production
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// TSM_CLIENT_ID -> tsm.client_id
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues registers every field tagged with 'mapstructure' and its 'default' value,
// recursing into nested structs.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registering empty defaults too makes the key visible to AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
