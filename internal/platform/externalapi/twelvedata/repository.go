package twelvedata

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
	"stock_compare/internal/platform/externalapi/twelvedata/dto"
	"stock_compare/internal/shared/ratelimiter"
)

const (
	// adjustedOutputSize はadjustedティアで取得する最大件数です（APIの上限）。
	adjustedOutputSize = 5000
	// basicOutputSize はbasicティアで取得する件数です。
	basicOutputSize = 100

	// ColumnAdjustedClose is the price column read from the adjusted tier.
	ColumnAdjustedClose = "close (adjust=all)"
	// ColumnClose is the price column read from the basic tier.
	ColumnClose = "close"
)

// ErrRateLimited is returned when Twelve Data reports that API credits are exhausted.
var ErrRateLimited = errors.New("twelvedata rate limit")

// TwelveDataMarket はTwelve Data外部APIから日次株価を取得するPriceProvider実装です。
type TwelveDataMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataMarketがPriceProviderを実装していることをコンパイル時に検証します。
var _ usecase.PriceProvider = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &TwelveDataMarket{
		cfg:     cfg,
		client:  client,
		limiter: ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute),
	}
}

// Name はプロバイダー名を返します。
func (t *TwelveDataMarket) Name() string { return "twelvedata" }

// DailySeries はTwelve Data APIから日足の終値系列を取得します。
//   - adjusted: adjust=all（分割・配当調整済み）、outputsize=5000
//   - basic:    adjust=none、outputsize=100
func (t *TwelveDataMarket) DailySeries(ctx context.Context, symbol entity.Symbol, tier entity.Tier) (entity.RawPriceSeries, error) {
	adjust, outputsize, column := "all", adjustedOutputSize, ColumnAdjustedClose
	if tier == entity.TierBasic {
		adjust, outputsize, column = "none", basicOutputSize, ColumnClose
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return entity.RawPriceSeries{}, err
	}

	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol.String())
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("adjust", adjust)
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	// URLを生成
	u := fmt.Sprintf("%s/time_series?%s", strings.TrimRight(t.cfg.BaseURL, "/"), q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.RawPriceSeries{}, err
	}

	// リクエストを実行
	res, err := t.client.Do(req)
	if err != nil {
		return entity.RawPriceSeries{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// JSONレスポンスをDTOにデコード（エラー時も本文にcodeが入る）
	var body dto.TimeSeriesResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)

	if body.Status == "error" {
		return entity.RawPriceSeries{}, classify(body)
	}
	if res.StatusCode >= 400 {
		return entity.RawPriceSeries{}, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return entity.RawPriceSeries{}, decodeErr
	}

	out := entity.RawPriceSeries{Symbol: symbol, Column: column, Points: make([]entity.PricePoint, 0, len(body.Values))}
	for _, v := range body.Values {
		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return entity.RawPriceSeries{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return entity.RawPriceSeries{}, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		if c <= 0 {
			return entity.RawPriceSeries{}, fmt.Errorf("non-positive close %q on %s", v.Close, v.Datetime)
		}
		out.Points = append(out.Points, entity.PricePoint{Date: entity.CivilDate(tm), Price: c})
	}
	return out, nil
}

// classify はTwelve Dataのエラーコードをプロバイダー境界のエラーに変換します。
func classify(body dto.TimeSeriesResponse) error {
	switch body.Code {
	case http.StatusForbidden:
		return fmt.Errorf("%w: twelvedata: %s", domain.ErrCapability, body.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: twelvedata: %s", domain.ErrSymbolNotFound, body.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, body.Message)
	default:
		return fmt.Errorf("twelvedata: %s", body.Message)
	}
}
