package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory.local")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CART_KEY", "")

	cfg := LoadConfig()

	assert.Equal(t, "http://inventory.local", cfg.InventoryAPIURL)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "carrito", cfg.CartKey, "cart key falls back to the default")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory.local")
	t.Setenv("APP_PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
}
