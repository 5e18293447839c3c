package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/transport/handler"
	"stock_compare/internal/feature/comparison/usecase"
)

// mockComparisonUsecase はComparisonUsecaseインターフェースのモック実装です。
type mockComparisonUsecase struct {
	CompareFunc     func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult
	CompareManyFunc func(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult
}

func (m *mockComparisonUsecase) Compare(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
	return m.CompareFunc(ctx, symbol1, symbol2, start, end)
}

func (m *mockComparisonUsecase) CompareMany(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult {
	return m.CompareManyFunc(ctx, symbols, start, end)
}

func day(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

func okResult(symbols ...string) entity.ComparisonResult {
	res := entity.ComparisonResult{}
	for _, s := range symbols {
		res.Series = append(res.Series, entity.ReturnSeries{
			Symbol: entity.Symbol(s),
			Source: entity.SourceSelection{Provider: "alphavantage", Tier: entity.TierAdjusted, Column: "5. adjusted close"},
			Points: []entity.ReturnPoint{{Date: day(2), GainPct: 0}, {Date: day(3), GainPct: 10}},
		})
	}
	return res
}

func rejected(kind domain.Kind) entity.ComparisonResult {
	return entity.ComparisonResult{Kind: kind, Message: kind.Message()}
}

func newRouter(uc handler.ComparisonUsecase) *gin.Engine {
	h := handler.NewComparisonHandler(uc)
	router := gin.New()
	router.GET("/compare", h.CompareHandler)
	router.GET("/gains/:code", h.GainsHandler)
	return router
}

// TestComparisonHandler_CompareHandler はCompareHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestComparisonHandler_CompareHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		compare        func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult
		compareMany    func(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: pair comparison",
			url:  "/compare?symbol1=nvda&symbol2=AMD&start=2025-01-01&end=2025-10-29",
			compare: func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
				assert.Equal(t, "nvda", symbol1)
				assert.Equal(t, "AMD", symbol2)
				assert.Equal(t, "2025-01-01", start)
				assert.Equal(t, "2025-10-29", end)
				return okResult("NVDA", "AMD")
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"series":[
				{"symbol":"NVDA","source":{"provider":"alphavantage","tier":"adjusted","column":"5. adjusted close","fell_back":false},
				 "points":[{"date":"2025-01-02","gain_pct":0},{"date":"2025-01-03","gain_pct":10}]},
				{"symbol":"AMD","source":{"provider":"alphavantage","tier":"adjusted","column":"5. adjusted close","fell_back":false},
				 "points":[{"date":"2025-01-02","gain_pct":0},{"date":"2025-01-03","gain_pct":10}]}]}`,
		},
		{
			name: "success: symbols list uses CompareMany",
			url:  "/compare?symbols=NVDA,%20AMD,INTC&start=2025-01-01&end=2025-10-29",
			compareMany: func(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult {
				assert.Equal(t, []string{"NVDA", "AMD", "INTC"}, symbols)
				res := okResult("NVDA")
				res.Notes = []string{"Premium endpoint not available for NVDA. Using basic daily data."}
				return res
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"series":[
				{"symbol":"NVDA","source":{"provider":"alphavantage","tier":"adjusted","column":"5. adjusted close","fell_back":false},
				 "points":[{"date":"2025-01-02","gain_pct":0},{"date":"2025-01-03","gain_pct":10}]}],
				"notes":["Premium endpoint not available for NVDA. Using basic daily data."]}`,
		},
		{
			name: "error: invalid symbol",
			url:  "/compare?symbol1=123&symbol2=AMD&start=2025-01-01&end=2025-10-29",
			compare: func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
				return rejected(domain.KindInvalidSymbol)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid ticker symbols. Please use Latin letters only.","kind":"invalid_symbol"}`,
		},
		{
			name: "error: no data",
			url:  "/compare?symbol1=NVDA&symbol2=ZZZZINVALID&start=2025-01-01&end=2025-10-29",
			compare: func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
				return rejected(domain.KindNoData)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"No data returned. Check ticker symbols or date range.","kind":"no_data"}`,
		},
		{
			name: "error: provider unavailable",
			url:  "/compare?symbol1=NVDA&symbol2=AMD&start=2025-01-01&end=2025-10-29",
			compare: func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
				return rejected(domain.KindProviderUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Market data provider is unavailable. Please try again later.","kind":"provider_unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockComparisonUsecase{
				CompareFunc: func(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
					t.Fatal("Compare should not be called")
					return entity.ComparisonResult{}
				},
				CompareManyFunc: func(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult {
					t.Fatal("CompareMany should not be called")
					return entity.ComparisonResult{}
				},
			}
			if tt.compare != nil {
				mockUC.CompareFunc = tt.compare
			}
			if tt.compareMany != nil {
				mockUC.CompareManyFunc = tt.compareMany
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			newRouter(mockUC).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestComparisonHandler_GainsHandler は1銘柄の系列取得をテストします。
func TestComparisonHandler_GainsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockComparisonUsecase{
		CompareManyFunc: func(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult {
			assert.Equal(t, []string{"BRK.B"}, symbols)
			assert.Equal(t, "2025-01-01", start)
			assert.Equal(t, "2025-01-31", end)
			return okResult("BRK.B")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gains/BRK.B?start=2025-01-01&end=2025-01-31", nil)
	newRouter(mockUC).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"symbol":"BRK.B"`)
}

// TestStatusFor は全ての拒否分類がHTTPステータスに対応付けられていることを検証します。
func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, handler.StatusFor(domain.KindNone))
	assert.Equal(t, http.StatusBadRequest, handler.StatusFor(domain.KindInvalidSymbol))
	assert.Equal(t, http.StatusBadRequest, handler.StatusFor(domain.KindInvalidDateFormat))
	assert.Equal(t, http.StatusBadRequest, handler.StatusFor(domain.KindFutureDate))
	assert.Equal(t, http.StatusNotFound, handler.StatusFor(domain.KindNoData))
	assert.Equal(t, http.StatusBadGateway, handler.StatusFor(domain.KindProviderUnavailable))
}

// stubResolver は固定の価格系列を返すResolverです。
type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, symbol entity.Symbol) (entity.RawPriceSeries, entity.SourceSelection, error) {
	raw := entity.RawPriceSeries{
		Symbol: symbol,
		Column: "4. close",
		Points: []entity.PricePoint{{Date: day(2), Price: 100}, {Date: day(3), Price: 200}, {Date: day(6), Price: 400}},
	}
	return raw, entity.SourceSelection{Provider: "stub", Tier: entity.TierBasic, Column: "4. close"}, nil
}

// TestComparisonHandler_WithUsecase は実際のusecaseを通して入力検証とステータスの対応を検証します。
func TestComparisonHandler_WithUsecase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := usecase.NewComparisonUsecase(stubResolver{}, usecase.Options{
		Now: func() time.Time { return time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC) },
	})
	router := newRouter(uc)

	tests := []struct {
		name   string
		url    string
		status int
		kind   string
	}{
		{"ok", "/compare?symbol1=nvda&symbol2=amd&start=2025-01-01&end=2025-01-31", http.StatusOK, ""},
		{"digits only symbol", "/compare?symbol1=123&symbol2=amd&start=2025-01-01&end=2025-01-31", http.StatusBadRequest, "invalid_symbol"},
		{"bad date", "/compare?symbol1=nvda&symbol2=amd&start=01/01/2025&end=2025-01-31", http.StatusBadRequest, "invalid_date_format"},
		{"missing dates", "/compare?symbol1=nvda&symbol2=amd", http.StatusBadRequest, "invalid_date_format"},
		{"future date", "/compare?symbol1=nvda&symbol2=amd&start=2025-01-01&end=2030-01-01", http.StatusBadRequest, "future_date"},
		{"inverted window", "/compare?symbol1=nvda&symbol2=amd&start=2025-01-31&end=2025-01-01", http.StatusNotFound, "no_data"},
		{"gains ok", "/gains/nvda?start=2025-01-01&end=2025-01-31", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.kind != "" {
				assert.Contains(t, w.Body.String(), `"kind":"`+tt.kind+`"`)
			} else {
				assert.Contains(t, w.Body.String(), `"gain_pct":100`)
				assert.Contains(t, w.Body.String(), `"gain_pct":300`)
			}
		})
	}
}
