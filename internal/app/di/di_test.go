package di

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_compare/internal/feature/comparison/adapters"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/platform/cache"
	"stock_compare/internal/platform/config"
)

type fakeProvider struct{}

func (fakeProvider) Name() string { return "fake" }

func (fakeProvider) DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	return entity.RawPriceSeries{
		Symbol: symbol,
		Column: "close",
		Points: []entity.PricePoint{
			{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Price: 10},
			{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Price: 11},
		},
	}, nil
}

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Market.Provider = config.ProviderAlphaVantage
	cfg.Market.APIKey = "key"
	cfg.Market.Timeout = time.Second
	cfg.Market.PrimaryTier = "adjusted"
	cfg.Symbols.Alphabet = "strict"
	return cfg
}

func TestNewPriceProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{config.ProviderAlphaVantage, "alphavantage", false},
		{config.ProviderTwelveData, "twelvedata", false},
		{"yahoo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Parallel()

			cfg := baseConfig()
			cfg.Market.Provider = tt.provider

			p, err := NewPriceProvider(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	inner := fakeProvider{}
	assert.Equal(t, inner, WithCache(inner, nil, 0), "nil client leaves provider unwrapped")

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wrapped := WithCache(inner, rdb, time.Minute)
	assert.IsType(t, &cache.CachingPriceProvider{}, wrapped)
	assert.Equal(t, "fake", wrapped.Name())
}

func TestNewRecorder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, adapters.NewNoopRecorder(), NewRecorder(nil))
}

func TestNewComparisonUsecase(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC) }

	uc, err := NewComparisonUsecase(baseConfig(), fakeProvider{}, nil, now)
	require.NoError(t, err)

	res := uc.Compare(context.Background(), "nvda", "amd", "2025-01-01", "2025-01-31")
	require.True(t, res.OK(), res.Message)
	require.Len(t, res.Series, 2)
	assert.Equal(t, entity.Symbol("NVDA"), res.Series[0].Symbol)
	assert.Equal(t, entity.TierAdjusted, res.Series[0].Source.Tier)
}

func TestNewComparisonUsecase_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Market.PrimaryTier = "premium"
	_, err := NewComparisonUsecase(cfg, fakeProvider{}, nil, nil)
	assert.Error(t, err)

	cfg = baseConfig()
	cfg.Symbols.Alphabet = "unicode"
	_, err = NewComparisonUsecase(cfg, fakeProvider{}, nil, nil)
	assert.Error(t, err)
}

func TestOpenDiagnostics(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	db, err := OpenDiagnostics(cfg)
	require.NoError(t, err)
	assert.Nil(t, db, "no driver means no database")

	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "diag.db")
	db, err = OpenDiagnostics(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.True(t, db.Migrator().HasTable(&adapters.ComparisonModel{}))
	assert.True(t, db.Migrator().HasTable(&adapters.ComparisonSourceModel{}))
}

func TestOpenRedis_Disabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, OpenRedis(context.Background(), baseConfig()))
}
