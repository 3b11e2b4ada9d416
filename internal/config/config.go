// Package config loads the process-wide settings once at startup.
//
// Settings are immutable after Load and are passed by reference into the
// components that need them; there is no hidden mutable global state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds every tunable of the service. Values come from environment
// variables with the RURAL_ prefix, optionally overridden by a config file.
type Settings struct {
	// HTTP server
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Upload limits (enforced by the transport layer, not the pipeline)
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`

	// Insight enrichment
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	GeminiModel       string        `mapstructure:"gemini_model"`
	EnrichmentEnabled bool          `mapstructure:"enrichment_enabled"`
	EnrichTimeout     time.Duration `mapstructure:"enrich_timeout"`
	EnrichMaxAttempts int           `mapstructure:"enrich_max_attempts"`

	// Report archiving (disabled when bucket is empty)
	ArchiveBucket string `mapstructure:"archive_bucket"`

	// Misc
	CacheTTLHours int    `mapstructure:"cache_ttl_hours"`
	LogLevel      string `mapstructure:"log_level"`
}

// Load reads settings from the environment (prefix RURAL) and, when cfgFile
// is non-empty, from the given config file. File values override defaults;
// environment values override both.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("enrichment_enabled", true)
	v.SetDefault("enrich_timeout", 30*time.Second)
	v.SetDefault("enrich_max_attempts", 3)
	v.SetDefault("archive_bucket", "")
	v.SetDefault("cache_ttl_hours", 24)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("RURAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", cfgFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshal settings: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Settings) validate() error {
	if s.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max_upload_mb must be positive, got %d", s.MaxUploadMB)
	}
	if s.EnrichMaxAttempts < 1 {
		return fmt.Errorf("config: enrich_max_attempts must be at least 1, got %d", s.EnrichMaxAttempts)
	}
	if s.EnrichTimeout <= 0 {
		return fmt.Errorf("config: enrich_timeout must be positive, got %s", s.EnrichTimeout)
	}
	return nil
}

// MaxUploadBytes returns the upload cap in bytes.
func (s *Settings) MaxUploadBytes() int64 {
	return s.MaxUploadMB * 1024 * 1024
}
