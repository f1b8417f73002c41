package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Storage      StorageConfig   `mapstructure:"storage"`
	Analysis     AnalysisConfig  `mapstructure:"analysis"`
	Pipeline     PipelineConfig  `mapstructure:"pipeline"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StorageConfig contains object storage settings. The endpoint is any
// S3-compatible service; video blobs live in Bucket under per-player keys.
type StorageConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	Region         string        `mapstructure:"region"`
	AccessKey      string        `mapstructure:"access_key"`
	SecretKey      string        `mapstructure:"secret_key"`
	Bucket         string        `mapstructure:"bucket"`
	ForcePathStyle bool          `mapstructure:"force_path_style"`
	SignTTL        time.Duration `mapstructure:"sign_ttl"`
}

// AnalysisConfig contains remote ML analysis service settings
type AnalysisConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PipelineConfig contains ingestion pipeline settings
type PipelineConfig struct {
	MaxConcurrentRuns int           `mapstructure:"max_concurrent_runs"`
	RunRetention      time.Duration `mapstructure:"run_retention"`
}

// RateLimitConfig contains API rate limiting settings
type RateLimitConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	RequestsPerSecond  int  `mapstructure:"requests_per_second"`
	Burst              int  `mapstructure:"burst"`
	UploadsPerMinute   int  `mapstructure:"uploads_per_minute"`
	UploadBurstAllowed int  `mapstructure:"upload_burst_allowed"`
}
