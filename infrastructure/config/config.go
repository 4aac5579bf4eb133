package config

import (
	"fmt"
	"os"
	"strconv"

	"inventory-backend/pkg/utils"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds all application configuration. It is read once at process
// start and shared read-only afterwards.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string `validate:"required"`

	// Storage configuration
	StoreBackend     string `validate:"oneof=dynamodb memory"`
	AWSRegion        string
	DynamoDBTable    string `validate:"required_if=StoreBackend dynamodb"`
	IndexName        string `validate:"required_if=StoreBackend dynamodb"`
	DynamoDBEndpoint string

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		StoreBackend:     getEnv("STORE_BACKEND", StoreDynamoDB),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable:    getEnv("TABLE_NAME", ""),
		IndexName:        getEnv("INDEX_NAME", "InventoryIdIndex"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", true),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}
