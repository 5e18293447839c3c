package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"stock_compare/internal/app/di"
	"stock_compare/internal/app/router"
	comparisonhandler "stock_compare/internal/feature/comparison/transport/handler"
	"stock_compare/internal/platform/config"
	"stock_compare/internal/platform/http/handler"
	"stock_compare/internal/platform/logging"
)

func main() {
	// .env はローカル開発用。存在しなくてもよい
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("[ERROR] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[ERROR] invalid config: %v", err)
	}
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	// Redis
	rdb := di.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 診断ログ用DB
	db, err := di.OpenDiagnostics(cfg)
	if err != nil {
		log.Fatalf("[ERROR] open diagnostics db: %v", err)
	}

	// Provider（Redisキャッシュでラップ）
	provider, err := di.NewPriceProvider(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	provider = di.WithCache(provider, rdb, cfg.Redis.TTL)

	// Usecase
	comparisonUC, err := di.NewComparisonUsecase(cfg, provider, di.NewRecorder(db), nil)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	// Handler
	comparisonH := comparisonhandler.NewComparisonHandler(comparisonUC)

	// ルータ生成
	r := router.NewRouter(comparisonH, router.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		Info: handler.ServiceInfo{
			Provider:    provider.Name(),
			PrimaryTier: cfg.Market.PrimaryTier,
			Fallback:    cfg.FallbackEnabled(),
			Cache:       rdb != nil,
			Diagnostics: db != nil,
		},
	})

	if cfg.Auth.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Comparison endpoints are served without authentication.")
	}

	log.Printf("[INFO] listening on %s (provider=%s)", cfg.Server.Addr, provider.Name())
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
