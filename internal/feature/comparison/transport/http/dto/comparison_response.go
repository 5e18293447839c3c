package dto

import (
	"stock_compare/internal/feature/comparison/domain/entity"
)

// ComparisonResponse は比較成功時のレスポンスDTOです。
type ComparisonResponse struct {
	Series []SeriesResponse `json:"series"`          // リクエスト順の系列
	Notes  []string         `json:"notes,omitempty"` // ティア切り替えなどの補足
}

// SeriesResponse は1銘柄の累積リターン系列です。
type SeriesResponse struct {
	Symbol string                 `json:"symbol"`
	Source entity.SourceSelection `json:"source"`
	Points []PointResponse        `json:"points"`
}

// PointResponse は1取引日の累積リターンです。
type PointResponse struct {
	Date    string  `json:"date"`     // 日付（YYYY-MM-DD）
	GainPct float64 `json:"gain_pct"` // 初日比の累積リターン（%）
}

// ErrorResponse は比較が拒否された場合のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`          // 利用者向けメッセージ
	Kind  string `json:"kind,omitempty"` // 拒否の分類
}

// FromResult は成功した ComparisonResult をレスポンスDTOに変換します。
func FromResult(res entity.ComparisonResult) ComparisonResponse {
	out := ComparisonResponse{
		Series: make([]SeriesResponse, 0, len(res.Series)),
		Notes:  res.Notes,
	}
	for _, s := range res.Series {
		points := make([]PointResponse, 0, len(s.Points))
		for _, p := range s.Points {
			points = append(points, PointResponse{
				Date:    p.Date.UTC().Format(entity.DateLayout),
				GainPct: p.GainPct,
			})
		}
		out.Series = append(out.Series, SeriesResponse{
			Symbol: s.Symbol.String(),
			Source: s.Source,
			Points: points,
		})
	}
	return out
}
