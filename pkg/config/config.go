package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variables override file values
		viper.SetEnvPrefix("MATOBEV")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine, defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured, using in-memory database")
	}

	if viper.GetString("analysis.base_url") == "" {
		fmt.Println("Warning: No analysis service URL configured, uploads will fail at the analysis stage")
	}

	if err := validateCredentials(); err != nil {
		return err
	}

	// Auto-correct invalid concurrency limit
	if viper.GetInt("pipeline.max_concurrent_runs") <= 0 {
		viper.Set("pipeline.max_concurrent_runs", 4)
	}

	return nil
}

// validateCredentials rejects placeholder storage credentials in production
func validateCredentials() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_SECRET_HERE",
		"changeme",
		"CHANGEME",
		"",
	}

	accessKey := viper.GetString("storage.access_key")
	secretKey := viper.GetString("storage.secret_key")

	for _, placeholder := range placeholders {
		if accessKey == placeholder || secretKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid storage credentials: cannot use placeholder values in production")
			}
			fmt.Println("Warning: object storage credentials are using placeholder values")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Pipeline.MaxConcurrentRuns <= 0 {
		c.Pipeline.MaxConcurrentRuns = 4
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", int64(256*1024*1024))

	// Database defaults
	viper.SetDefault("database.path", "./data/matobev.db")
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", time.Hour)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Object storage defaults
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.bucket", "videos")
	viper.SetDefault("storage.force_path_style", true)
	viper.SetDefault("storage.sign_ttl", 10*time.Minute)

	// Analysis service defaults
	viper.SetDefault("analysis.base_url", "http://localhost:8003")
	viper.SetDefault("analysis.timeout", 45*time.Second)

	// Pipeline defaults
	viper.SetDefault("pipeline.max_concurrent_runs", 4)
	viper.SetDefault("pipeline.run_retention", 30*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 10)
	viper.SetDefault("rate_limiting.burst", 20)
	viper.SetDefault("rate_limiting.uploads_per_minute", 6)
	viper.SetDefault("rate_limiting.upload_burst_allowed", 2)
}
