package main

import (
	"context"
	"errors"
	"net/http"

	"ecomarket/internal/cart"
	"ecomarket/internal/checkout"
	"ecomarket/internal/config"
	"ecomarket/internal/identity"
	"ecomarket/internal/inventory"
	"ecomarket/internal/logger"
	"ecomarket/internal/server"
	"ecomarket/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	log := logger.L()
	ctx := context.Background()

	var blobs storage.BlobStore
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		blobs = redisStore
	} else {
		log.Warn("REDIS_URL not set, cart persistence is in-memory only")
		blobs = storage.NewMemoryStore()
	}

	remote := inventory.NewClient(cfg.InventoryAPIURL)
	inventoryStore := inventory.NewStore(remote)

	cartStore := cart.NewStore(inventoryStore)
	inventoryStore.Subscribe(cartStore.Reconcile)

	// Restore the persisted cart before the first refresh so the initial
	// reconciliation re-clamps it against live stock.
	if data, err := blobs.Load(ctx, cfg.CartKey); err == nil {
		if lines, err := cart.Decode(data); err == nil {
			cartStore.Restore(lines)
		} else {
			log.Warn("discarding corrupt persisted cart", zap.Error(err))
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Warn("failed to load persisted cart", zap.Error(err))
	}

	inventoryStore.Bootstrap(ctx)

	srv := &server.Server{
		Inventory: inventoryStore,
		Cart:      cartStore,
		Finalizer: checkout.NewFinalizer(cartStore, inventoryStore),
		Identity:  identity.ContextProvider{},
		Blobs:     blobs,
		CartKey:   cfg.CartKey,
		SecretKey: cfg.SecretKey,
	}

	log.Info("storefront listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, srv.Handler()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
