package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)

	// Stock gateway settings: enabled, test mode, paid orders advance to
	// processing.
	assert.True(t, cfg.Gateway.Status)
	assert.True(t, cfg.Gateway.TestMode)
	assert.Equal(t, "processing", cfg.Gateway.OrderStatusSuccess)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.Server.BaseURL = "https://shop.example.com"
	cfg.Gateway.BridgeURL = "http://gateway-bridge:9000"
	assert.NoError(t, cfg.Validate())

	cfg.Server.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Server.BaseURL = "https://shop.example.com"
	cfg.Gateway.BridgeURL = ""
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "shopkit",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=shopkit sslmode=disable",
		db.DSN(),
	)
}
