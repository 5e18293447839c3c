package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/usecase"
	"stock_compare/internal/platform/externalapi/alphavantage/dto"
	"stock_compare/internal/shared/ratelimiter"
)

const (
	functionDailyAdjusted = "TIME_SERIES_DAILY_ADJUSTED"
	functionDaily         = "TIME_SERIES_DAILY"

	// ColumnAdjustedClose is the price column read from the adjusted tier.
	ColumnAdjustedClose = "5. adjusted close"
	// ColumnClose is the price column read from the basic tier.
	ColumnClose = "4. close"
)

var (
	// ErrRateLimited is returned when Alpha Vantage answers with a call frequency notice.
	ErrRateLimited = errors.New("alphavantage rate limit or information note")
	// ErrInvalidAPIKey is returned when Alpha Vantage rejects the API key.
	ErrInvalidAPIKey = errors.New("alphavantage rejected the api key")
)

// AlphaVantageMarket はAlpha Vantage外部APIから日次株価を取得するPriceProvider実装です。
type AlphaVantageMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// AlphaVantageMarketがPriceProviderを実装していることをコンパイル時に検証します。
var _ usecase.PriceProvider = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は指定された設定とHTTPクライアントでAlphaVantageMarketの新しいインスタンスを生成します。
func NewAlphaVantageMarket(cfg Config, client *http.Client) *AlphaVantageMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &AlphaVantageMarket{
		cfg:     cfg,
		client:  client,
		limiter: ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute),
	}
}

// Name はプロバイダー名を返します。
func (a *AlphaVantageMarket) Name() string { return "alphavantage" }

// DailySeries はティアに応じたエンドポイントから日次の価格系列を取得します。
//   - adjusted: TIME_SERIES_DAILY_ADJUSTED, outputsize=full, "5. adjusted close"
//   - basic:    TIME_SERIES_DAILY, outputsize=compact, "4. close"
func (a *AlphaVantageMarket) DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	function, outputsize, column := functionDailyAdjusted, "full", ColumnAdjustedClose
	if tier == entity.TierBasic {
		function, outputsize, column = functionDaily, "compact", ColumnClose
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return entity.RawPriceSeries{}, err
	}

	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol.String())
	q.Set("outputsize", outputsize)
	q.Set("datatype", "json")
	q.Set("apikey", a.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.RawPriceSeries{}, err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return entity.RawPriceSeries{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.RawPriceSeries{}, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body dto.DailyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.RawPriceSeries{}, fmt.Errorf("decode %s response: %w", function, err)
	}
	if err := classify(body); err != nil {
		return entity.RawPriceSeries{}, err
	}

	out := entity.RawPriceSeries{Symbol: symbol, Column: column, Points: make([]entity.PricePoint, 0, len(body.TimeSeries))}
	for date, fields := range body.TimeSeries {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return entity.RawPriceSeries{}, fmt.Errorf("parse date %q: %w", date, err)
		}
		raw, ok := fields[column]
		if !ok {
			return entity.RawPriceSeries{}, fmt.Errorf("missing column %q on %s", column, date)
		}
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return entity.RawPriceSeries{}, fmt.Errorf("parse %s %q: %w", column, raw, err)
		}
		if p <= 0 {
			return entity.RawPriceSeries{}, fmt.Errorf("non-positive %s %q on %s", column, raw, date)
		}
		out.Points = append(out.Points, entity.PricePoint{Date: d, Price: p})
	}
	return out, nil
}

// classify はAlpha Vantageが200で返すエラー本文を分類します。
func classify(body dto.DailyResponse) error {
	switch {
	case body.ErrorMessage != "":
		if strings.Contains(strings.ToLower(body.ErrorMessage), "apikey") {
			return fmt.Errorf("%w: %s", ErrInvalidAPIKey, body.ErrorMessage)
		}
		return fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, body.ErrorMessage)
	case body.Information != "":
		// 回数制限の案内にも "premium plans" が含まれるため先に判定する
		info := strings.ToLower(body.Information)
		if strings.Contains(info, "rate limit") || strings.Contains(info, "call frequency") {
			return fmt.Errorf("%w: %s", ErrRateLimited, body.Information)
		}
		if strings.Contains(info, "premium") {
			return fmt.Errorf("%w: %s", domain.ErrCapability, body.Information)
		}
		return fmt.Errorf("%w: %s", ErrRateLimited, body.Information)
	case body.Note != "":
		return fmt.Errorf("%w: %s", ErrRateLimited, body.Note)
	case body.TimeSeries == nil:
		return errors.New("alphavantage response has no daily time series")
	}
	return nil
}
