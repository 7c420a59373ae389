// Package config provides configuration loading, defaults, and validation
// for the case-law intelligence toolkit.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultScholarBaseURL = "https://scholar.google.com"
	DefaultPatentsBaseURL = "https://patents.google.com"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	DefaultFetchTimeout   = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryWait      = 5 * time.Second

	DefaultDataDir = "gcl-data"
	DefaultSuffix  = "v1"

	DefaultUSPTOBaseURL = "https://ped.uspto.gov/api"
	DefaultUSPTOTimeout = 60 * time.Second

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "caselaw"
	DefaultDBMaxConns = 25

	DefaultRedisAddr = "localhost:6379"
	DefaultCacheTTL  = 72 * time.Hour

	DefaultWorkerConcurrency = 8

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsAddr = ":9090"
	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills every zero-value field in cfg with the toolkit
// default.  Fields that have already been set by the caller (non-zero
// values) are left unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Fetch ─────────────────────────────────────────────────────────────────
	if cfg.Fetch.ScholarBaseURL == "" {
		cfg.Fetch.ScholarBaseURL = DefaultScholarBaseURL
	}
	if cfg.Fetch.PatentsBaseURL == "" {
		cfg.Fetch.PatentsBaseURL = DefaultPatentsBaseURL
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = DefaultUserAgent
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = DefaultMaxRetries
	}
	if cfg.Fetch.RetryWait == 0 {
		cfg.Fetch.RetryWait = DefaultRetryWait
	}

	// ── Storage ───────────────────────────────────────────────────────────────
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = DefaultDataDir
	}
	if cfg.Storage.Suffix == "" {
		cfg.Storage.Suffix = DefaultSuffix
	}

	// ── USPTO ─────────────────────────────────────────────────────────────────
	if cfg.USPTO.BaseURL == "" {
		cfg.USPTO.BaseURL = DefaultUSPTOBaseURL
	}
	if cfg.USPTO.Timeout == 0 {
		cfg.USPTO.Timeout = DefaultUSPTOTimeout
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultCacheTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "caselaw"
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
