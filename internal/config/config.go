package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full scanner configuration loaded from YAML.
type Config struct {
	Scan     ScanPolicy     `yaml:"scan"`
	Source   SourceConfig   `yaml:"source"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// ScanPolicy is the external filtering and ranking policy applied on top of
// the scoring engine. The engine itself knows nothing about these thresholds.
type ScanPolicy struct {
	MinScore      int `yaml:"min_score"`      // floor for any candidate to qualify
	BuyThreshold  int `yaml:"buy_threshold"`  // extra floor for BUY signals
	SellThreshold int `yaml:"sell_threshold"` // extra floor for SELL signals
	TopN          int `yaml:"top_n"`          // ranked candidates to keep, 0 = all
	Workers       int `yaml:"workers"`        // scoring goroutines
}

// SourceConfig points at the candidate feature source.
type SourceConfig struct {
	// File is a JSONL file of SignalCandidate rows. Takes precedence over URL.
	File string `yaml:"file"`
	// URL is the feature API base, e.g. http://features.internal:8080.
	URL string `yaml:"url"`
	// RatePerSec throttles API requests.
	RatePerSec float64 `yaml:"rate_per_sec"`
	TimeoutSec int     `yaml:"timeout_sec"`
}

// PostgresConfig configures optional scan-run persistence.
type PostgresConfig struct {
	DSN     string `yaml:"dsn"`
	Enabled bool   `yaml:"enabled"`
}

// RedisConfig configures the latest-scan cache.
type RedisConfig struct {
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`
	TTLSec  int    `yaml:"ttl_sec"`
	Enabled bool   `yaml:"enabled"`
}

// HTTPConfig configures the status/metrics server.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the production defaults used when no config file is given.
func Default() Config {
	return Config{
		Scan: ScanPolicy{
			MinScore:      40,
			BuyThreshold:  50,
			SellThreshold: 70,
			TopN:          20,
			Workers:       8,
		},
		Source: SourceConfig{
			RatePerSec: 10,
			TimeoutSec: 10,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			TTLSec: 3600,
		},
		HTTP: HTTPConfig{
			Listen: ":8090",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Scan.MinScore < 0 || c.Scan.MinScore > 100 {
		return fmt.Errorf("scan.min_score %d outside [0,100]", c.Scan.MinScore)
	}
	if c.Scan.BuyThreshold < c.Scan.MinScore {
		return fmt.Errorf("scan.buy_threshold %d below scan.min_score %d", c.Scan.BuyThreshold, c.Scan.MinScore)
	}
	if c.Scan.SellThreshold < c.Scan.MinScore {
		return fmt.Errorf("scan.sell_threshold %d below scan.min_score %d", c.Scan.SellThreshold, c.Scan.MinScore)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1, got %d", c.Scan.Workers)
	}
	if c.Scan.TopN < 0 {
		return fmt.Errorf("scan.top_n must not be negative, got %d", c.Scan.TopN)
	}
	return nil
}
