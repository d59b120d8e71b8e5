package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	WorkspaceRoot string // directory tree holding per-workspace db documents
	RateLimit     string // ulule/limiter format, e.g. "100-M"

	// Optional JSON files overriding the built-in accounting tables.
	AccountingConfigPath string
	FieldSchemaPath      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("WORKSPACE_ROOT", "workspace")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ACCOUNTING_CONFIG_PATH", "")
	viper.SetDefault("FIELD_SCHEMA_PATH", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		WorkspaceRoot:        viper.GetString("WORKSPACE_ROOT"),
		RateLimit:            viper.GetString("RATE_LIMIT"),
		AccountingConfigPath: viper.GetString("ACCOUNTING_CONFIG_PATH"),
		FieldSchemaPath:      viper.GetString("FIELD_SCHEMA_PATH"),
	}

	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = "workspace"
		log.Printf("Warning: WORKSPACE_ROOT not set. Defaulting to %s\n", cfg.WorkspaceRoot)
	}

	return cfg, nil
}
