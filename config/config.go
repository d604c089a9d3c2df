// Package config handles loading and managing application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	GinMode      string        `mapstructure:"gin_mode"` // "debug", "release", or "test"
	BaseURL      string        `mapstructure:"base_url"` // absolute site root for gateway return URLs
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// GatewayConfig holds the payment-method settings and the address of the
// gateway-library bridge. The settings part is the snapshot the flow
// captures per invocation.
type GatewayConfig struct {
	Status             bool   `mapstructure:"status"`
	TestMode           bool   `mapstructure:"test_mode"`
	OrderStatusSuccess string `mapstructure:"order_status_success"`
	APILoginID         string `mapstructure:"api_login_id"`
	TransactionKey     string `mapstructure:"transaction_key"`
	HashSecret         string `mapstructure:"hash_secret"`
	BridgeURL          string `mapstructure:"bridge_url"`
	BridgeAPIKey       string `mapstructure:"bridge_api_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/shopkit-payments")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	v.SetEnvPrefix("SHOPKIT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if key := os.Getenv("SHOPKIT_TRANSACTION_KEY"); key != "" {
		cfg.Gateway.TransactionKey = key
	}
	if secret := os.Getenv("SHOPKIT_HASH_SECRET"); secret != "" {
		cfg.Gateway.HashSecret = secret
	}
	if password := os.Getenv("SHOPKIT_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	return &cfg, nil
}

// Validate checks the configuration a running service cannot do without.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required: gateway return URLs must be absolute")
	}
	if c.Gateway.BridgeURL == "" {
		return fmt.Errorf("gateway.bridge_url is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "shopkit")
	v.SetDefault("database.ssl_mode", "disable")

	// Gateway defaults mirror the module's stock settings: enabled, in
	// test mode, advancing paid orders to "processing".
	v.SetDefault("gateway.status", true)
	v.SetDefault("gateway.test_mode", true)
	v.SetDefault("gateway.order_status_success", "processing")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
