package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting. Values come from the environment
// (optionally seeded from a .env file); nothing is read ad hoc elsewhere.
type Config struct {
	Port         int    `mapstructure:"PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	AdminToken   string `mapstructure:"ADMIN_TOKEN"`
	AllowOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Base URL that relative video filenames are resolved against.
	VideoBaseURL string `mapstructure:"VIDEO_BASE_URL"`

	// Public base URL for blob-store objects (logos, chat logs).
	CDNBaseURL string `mapstructure:"CDN_BASE_URL"`

	// R2 / S3 blob store.
	R2AccountID       string `mapstructure:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `mapstructure:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `mapstructure:"R2_ACCESS_KEY_SECRET"`
	R2Bucket          string `mapstructure:"R2_BUCKET_NAME"`

	// External league metadata documents live at {base}/{slug}.json.
	LeagueMetadataURL  string        `mapstructure:"LEAGUE_METADATA_URL"`
	LeagueSyncInterval time.Duration `mapstructure:"LEAGUE_SYNC_INTERVAL"`
}

// Load reads the configuration from the environment. A .env file is
// honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", 8000)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LEAGUE_SYNC_INTERVAL", time.Hour)
	v.AutomaticEnv()

	for _, key := range []string{
		"PORT", "DATABASE_URL", "ADMIN_TOKEN", "ALLOWED_ORIGINS",
		"VIDEO_BASE_URL", "CDN_BASE_URL",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_ACCESS_KEY_SECRET", "R2_BUCKET_NAME",
		"LEAGUE_METADATA_URL", "LEAGUE_SYNC_INTERVAL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN is not set")
	}
	return &cfg, nil
}
