package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	InventoryAPIURL string
	RedisURL        string
	AppPort         string
	AppEnv          string
	SecretKey       string
	CartKey         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		InventoryAPIURL: os.Getenv("INVENTORY_API_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		CartKey:         os.Getenv("CART_KEY"),
	}

	if cfg.InventoryAPIURL == "" {
		log.Fatal("INVENTORY_API_URL is not set")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CartKey == "" {
		cfg.CartKey = "carrito"
	}

	return cfg
}
