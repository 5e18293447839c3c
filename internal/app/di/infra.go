package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_compare/internal/feature/comparison/adapters"
	"stock_compare/internal/platform/config"
	"stock_compare/internal/platform/db"
	infraredis "stock_compare/internal/platform/redis"
)

// OpenRedis connects to Redis when configured. Connection failures are logged and
// reported as a nil client so the service runs without cache.
func OpenRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	rcfg := infraredis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if !rcfg.Enabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, rcfg)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		return nil
	}
	return rdb
}

// OpenDiagnostics opens the diagnostics database when a driver is configured, otherwise returns nil.
func OpenDiagnostics(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.DiagnosticsEnabled() {
		return nil, nil
	}
	return db.OpenDB(db.Config{
		Driver:     cfg.Database.Driver,
		DSN:        cfg.Database.DSN,
		SQLitePath: cfg.Database.SQLitePath,
		Migrate:    cfg.MigrateEnabled(),
	}, adapters.Models()...)
}
