// Package handler はcomparisonフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/transport/http/dto"
)

// ComparisonUsecase は累積リターン比較のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ComparisonUsecase interface {
	Compare(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult
	CompareMany(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult
}

// ComparisonHandler は累積リターン比較のHTTPリクエストを処理します。
type ComparisonHandler struct {
	uc ComparisonUsecase
}

// NewComparisonHandler は指定されたusecaseでComparisonHandlerの新しいインスタンスを生成します。
func NewComparisonHandler(uc ComparisonUsecase) *ComparisonHandler {
	return &ComparisonHandler{uc: uc}
}

// StatusFor は拒否の分類をHTTPステータスに変換します。
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNone:
		return http.StatusOK
	case domain.KindInvalidSymbol, domain.KindInvalidDateFormat, domain.KindFutureDate:
		return http.StatusBadRequest
	case domain.KindNoData:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// CompareHandler は2銘柄（または symbols で指定した複数銘柄）の累積リターンをJSONで返します。
//
// エンドポイント例:
// GET /compare?symbol1=NVDA&symbol2=AMD&start=2025-01-01&end=2025-10-29
// GET /compare?symbols=NVDA,AMD,INTC&start=2025-01-01&end=2025-10-29
func (h *ComparisonHandler) CompareHandler(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	var res entity.ComparisonResult
	if list, ok := c.GetQuery("symbols"); ok {
		res = h.uc.CompareMany(c.Request.Context(), splitSymbols(list), start, end)
	} else {
		res = h.uc.Compare(c.Request.Context(), c.Query("symbol1"), c.Query("symbol2"), start, end)
	}
	render(c, res)
}

// GainsHandler は1銘柄の累積リターン系列をJSONで返します。
//
// エンドポイント例:
// GET /gains/NVDA?start=2025-01-01&end=2025-10-29
func (h *ComparisonHandler) GainsHandler(c *gin.Context) {
	res := h.uc.CompareMany(c.Request.Context(), []string{c.Param("code")}, c.Query("start"), c.Query("end"))
	render(c, res)
}

func render(c *gin.Context, res entity.ComparisonResult) {
	if !res.OK() {
		c.JSON(StatusFor(res.Kind), dto.ErrorResponse{Error: res.Message, Kind: string(res.Kind)})
		return
	}
	c.JSON(http.StatusOK, dto.FromResult(res))
}

// splitSymbols はカンマ区切りの銘柄リストを分割します。空要素もそのまま渡し、usecase側で検証させます。
func splitSymbols(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
