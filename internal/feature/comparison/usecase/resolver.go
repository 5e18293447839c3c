package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// PriceProvider は日次株価データを取得する外部プロバイダーのインターフェイスです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
//
// 実装は、契約プランに含まれないエンドポイントに対して domain.ErrCapability を、
// 銘柄が存在しないことが確定した場合に domain.ErrSymbolNotFound をラップして返します。
// それ以外のエラーは通信障害として扱われます。
type PriceProvider interface {
	Name() string
	DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error)
}

// ParseTier は設定値を entity.Tier に変換します。空文字は adjusted とみなします。
func ParseTier(s string) (entity.Tier, error) {
	switch entity.Tier(strings.ToLower(strings.TrimSpace(s))) {
	case "", entity.TierAdjusted:
		return entity.TierAdjusted, nil
	case entity.TierBasic:
		return entity.TierBasic, nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

// ResolverConfig はデータソース選択の方針を表します。
//   - Primary=adjusted, Fallback=true  : adjusted を試し、プラン制限なら basic へ1回だけ切り替える
//   - Primary=adjusted, Fallback=false : adjusted のみ
//   - Primary=basic                    : basic のみ（Fallback は無視される）
type ResolverConfig struct {
	Primary  entity.Tier
	Fallback bool
}

// SourceResolver は銘柄ごとに取得元のティアを選び、価格系列を取得します。
type SourceResolver struct {
	provider PriceProvider
	cfg      ResolverConfig
}

// NewSourceResolver は新しい SourceResolver を生成します。
func NewSourceResolver(provider PriceProvider, cfg ResolverConfig) *SourceResolver {
	if cfg.Primary != entity.TierBasic {
		cfg.Primary = entity.TierAdjusted
	}
	return &SourceResolver{provider: provider, cfg: cfg}
}

// Resolve は銘柄の価格系列と、実際に使われたデータソースを返します。
//
// プライマリがプラン制限（domain.ErrCapability）で拒否された場合に限り、basic ティアへ
// 一度だけフォールバックします。通信障害はフォールバックせず domain.ErrProviderUnavailable
// として返します。観測値がない場合やフォールバック先も利用できない場合は domain.ErrNoData です。
func (r *SourceResolver) Resolve(ctx context.Context, symbol entity.Symbol) (entity.RawPriceSeries, entity.SourceSelection, error) {
	series, sel, err := r.fetch(ctx, symbol, r.cfg.Primary)
	if err == nil {
		slog.Info("using market data", "symbol", symbol, "provider", sel.Provider, "tier", sel.Tier, "column", sel.Column)
		return series, sel, nil
	}

	if !errors.Is(err, domain.ErrCapability) || !r.canFallback() {
		return entity.RawPriceSeries{}, entity.SourceSelection{}, r.classify(symbol, err)
	}

	slog.Warn("premium endpoint not available, using basic daily data", "symbol", symbol, "provider", r.provider.Name(), "error", err)
	series, sel, err = r.fetch(ctx, symbol, entity.TierBasic)
	if err != nil {
		return entity.RawPriceSeries{}, entity.SourceSelection{}, r.classify(symbol, err)
	}
	sel.FellBack = true
	return series, sel, nil
}

func (r *SourceResolver) canFallback() bool {
	return r.cfg.Fallback && r.cfg.Primary == entity.TierAdjusted
}

func (r *SourceResolver) fetch(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, entity.SourceSelection, error) {
	series, err := r.provider.DailySeries(ctx, symbol, tier)
	if err != nil {
		return entity.RawPriceSeries{}, entity.SourceSelection{}, err
	}
	if len(series.Points) == 0 {
		return entity.RawPriceSeries{}, entity.SourceSelection{}, fmt.Errorf("%w: %s returned no observations for %s (%s)",
			domain.ErrNoData, r.provider.Name(), symbol, tier)
	}
	series.Symbol = symbol
	return series, entity.SourceSelection{
		Provider: r.provider.Name(),
		Tier:     tier,
		Column:   series.Column,
	}, nil
}

// classify はプロバイダーのエラーを取得結果の分類に変換します。
func (r *SourceResolver) classify(symbol entity.Symbol, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoData):
		return err
	case errors.Is(err, domain.ErrSymbolNotFound), errors.Is(err, domain.ErrCapability):
		return fmt.Errorf("%w: %s: %w", domain.ErrNoData, symbol, err)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrProviderUnavailable, symbol, err)
	}
}
