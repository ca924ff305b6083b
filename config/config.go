// Package config reads stockboard settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvDataDir    = "STOCKBOARD_DATA_DIR"
	EnvStorage    = "STOCKBOARD_STORAGE"
	EnvAPIKey     = "STOCKBOARD_EODHD_API_KEY"
	EnvQuotesFile = "STOCKBOARD_QUOTES_FILE"
	EnvCacheTTL   = "STOCKBOARD_CACHE_SECONDS"
	EnvLogLevel   = "STOCKBOARD_LOG_LEVEL"
	EnvLogPretty  = "STOCKBOARD_LOG_PRETTY"
	EnvPort       = "STOCKBOARD_PORT"
	EnvSchedule   = "STOCKBOARD_SCHEDULE"
	EnvBackupDir  = "STOCKBOARD_BACKUP_DIR"
	EnvS3Bucket   = "STOCKBOARD_S3_BUCKET"
	EnvS3Prefix   = "STOCKBOARD_S3_PREFIX"
	EnvS3Region   = "STOCKBOARD_S3_REGION"
	EnvS3Endpoint = "STOCKBOARD_S3_ENDPOINT"
	EnvS3Key      = "STOCKBOARD_S3_ACCESS_KEY"
	EnvS3Secret   = "STOCKBOARD_S3_SECRET_KEY"
)

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds application configuration
type Config struct {
	DataDir      string
	Storage      string
	APIKey       string
	QuotesFile   string // static quotes used instead of EODHD when set
	CacheSeconds int
	LogLevel     string
	LogPretty    bool
	Port         int
	Schedule     string
	BackupDir    string
	S3Bucket     string
	S3Prefix     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv(EnvDataDir, defaultDataDir())
	cfg := &Config{
		DataDir:      dataDir,
		Storage:      getEnv(EnvStorage, StorageJSON),
		APIKey:       getEnv(EnvAPIKey, ""),
		QuotesFile:   getEnv(EnvQuotesFile, ""),
		CacheSeconds: getEnvAsInt(EnvCacheTTL, 60),
		LogLevel:     getEnv(EnvLogLevel, "info"),
		LogPretty:    getEnvAsBool(EnvLogPretty, true),
		Port:         getEnvAsInt(EnvPort, 8080),
		Schedule:     getEnv(EnvSchedule, "0 */5 * * * *"),
		BackupDir:    getEnv(EnvBackupDir, filepath.Join(dataDir, "backups")),
		S3Bucket:     getEnv(EnvS3Bucket, ""),
		S3Prefix:     getEnv(EnvS3Prefix, "stockboard"),
		S3Region:     getEnv(EnvS3Region, ""),
		S3Endpoint:   getEnv(EnvS3Endpoint, ""),
		S3AccessKey:  getEnv(EnvS3Key, ""),
		S3SecretKey:  getEnv(EnvS3Secret, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%s is required", EnvDataDir)
	}
	switch c.Storage {
	case StorageJSON, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("%s: unknown storage %q, want %s, %s or %s", EnvStorage, c.Storage, StorageJSON, StorageSQLite, StorageMemory)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%s: invalid port %d", EnvPort, c.Port)
	}
	return nil
}

// StoragePath is the file holding the preferences for the configured backend.
func (c *Config) StoragePath() string {
	if c.Storage == StorageSQLite {
		return filepath.Join(c.DataDir, "stockboard.db")
	}
	return filepath.Join(c.DataDir, "stockboard.json")
}

// Environ returns the configuration as NAME=value pairs, the way extensions receive it.
func (c *Config) Environ() []string {
	return []string{
		EnvDataDir + "=" + c.DataDir,
		EnvStorage + "=" + c.Storage,
		EnvQuotesFile + "=" + c.QuotesFile,
		EnvLogLevel + "=" + c.LogLevel,
		EnvBackupDir + "=" + c.BackupDir,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stockboard")
	}
	return ".stockboard"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
