// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_compare/internal/feature/comparison/usecase"
	"stock_compare/internal/platform/cache"
	"stock_compare/internal/platform/config"
	"stock_compare/internal/platform/externalapi/alphavantage"
	"stock_compare/internal/platform/externalapi/twelvedata"
	infrahttp "stock_compare/internal/platform/http"
)

// NewPriceProvider creates the configured market data provider with its HTTP client.
func NewPriceProvider(cfg *config.Config) (usecase.PriceProvider, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.Market.Timeout)

	switch cfg.Market.Provider {
	case config.ProviderAlphaVantage:
		return alphavantage.NewAlphaVantageMarket(alphavantage.Config{
			APIKey:            cfg.Market.APIKey,
			BaseURL:           cfg.Market.BaseURL,
			Timeout:           cfg.Market.Timeout,
			RequestsPerMinute: cfg.Market.RequestsPerMinute,
		}, httpClient), nil
	case config.ProviderTwelveData:
		return twelvedata.NewTwelveDataMarket(twelvedata.Config{
			TwelveDataAPIKey:  cfg.Market.APIKey,
			BaseURL:           cfg.Market.BaseURL,
			Timeout:           cfg.Market.Timeout,
			RequestsPerMinute: cfg.Market.RequestsPerMinute,
		}, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported market provider %q", cfg.Market.Provider)
	}
}

// WithCache wraps provider with a Redis response cache. A nil client returns provider unchanged.
// A zero ttl keeps entries until the next US market close.
func WithCache(provider usecase.PriceProvider, rdb *redis.Client, ttl time.Duration) usecase.PriceProvider {
	if rdb == nil {
		return provider
	}
	return cache.NewCachingPriceProvider(rdb, ttl, provider, "prices")
}
