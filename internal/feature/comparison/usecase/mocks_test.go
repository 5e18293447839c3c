package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// errTransport はモックと期待値の間で共有される通信エラーです。
var errTransport = errors.New("dial tcp: i/o timeout")

type fetchCall struct {
	Symbol entity.Symbol
	Tier   entity.Tier
}

// mockPriceProvider は PriceProvider インターフェースのモック実装です。
type mockPriceProvider struct {
	DailySeriesFunc func(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error)

	mu    sync.Mutex
	Calls []fetchCall
}

func (m *mockPriceProvider) Name() string { return "mock" }

// DailySeries は DailySeriesFunc を呼び出し、呼び出しを記録します。
func (m *mockPriceProvider) DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fetchCall{Symbol: symbol, Tier: tier})
	m.mu.Unlock()
	if m.DailySeriesFunc != nil {
		return m.DailySeriesFunc(ctx, symbol, tier)
	}
	return entity.RawPriceSeries{}, errors.New("DailySeriesFunc is not implemented")
}

func (m *mockPriceProvider) calls() []fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]fetchCall(nil), m.Calls...)
}

// tieredMarket は銘柄ごとにティアの挙動を切り替えられる簡易マーケットです。
//   - premiumDenied: adjusted ティアがプラン制限で拒否される銘柄
//   - unknown: プロバイダーが存在しないと回答する銘柄
//   - broken: 通信障害となる銘柄
type tieredMarket struct {
	prices        map[entity.Symbol][]entity.PricePoint
	premiumDenied map[entity.Symbol]bool
	unknown       map[entity.Symbol]bool
	broken        map[entity.Symbol]bool
}

func (m tieredMarket) fetch(_ context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	switch {
	case m.broken[symbol]:
		return entity.RawPriceSeries{}, errTransport
	case m.unknown[symbol]:
		return entity.RawPriceSeries{}, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, symbol)
	case tier == entity.TierAdjusted && m.premiumDenied[symbol]:
		return entity.RawPriceSeries{}, fmt.Errorf("%w: premium endpoint", domain.ErrCapability)
	}
	column := "5. adjusted close"
	if tier == entity.TierBasic {
		column = "4. close"
	}
	return entity.RawPriceSeries{Symbol: symbol, Column: column, Points: m.prices[symbol]}, nil
}

// trading は start から n 営業日分（週末を除く）の価格を生成します。
func trading(start string, prices ...float64) []entity.PricePoint {
	d := day(start)
	out := make([]entity.PricePoint, 0, len(prices))
	for _, p := range prices {
		for d.Weekday() == 0 || d.Weekday() == 6 {
			d = d.AddDate(0, 0, 1)
		}
		out = append(out, entity.PricePoint{Date: d, Price: p})
		d = d.AddDate(0, 0, 1)
	}
	return out
}
