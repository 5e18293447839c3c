package usecase

import (
	"fmt"
	"math"
	"slices"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// Transform は生の価格系列を、期間の初日を 0% とする累積リターン（%）系列に変換します。
//
// 手順:
//  1. 日付の昇順に並べ替える（プロバイダーの並び順は保証されない）
//  2. [window.Start, window.End] に含まれる観測値のみに絞り込む（空なら空の系列を返す）
//  3. 各日の単純リターン r_i = (p_i - p_{i-1}) / p_{i-1} を計算する（期間内の初日は 0）
//  4. g_i = (Π(1 + r_k) - 1) * 100 を累積する
//
// 期間内に 0 以下または有限でない価格が含まれる場合は domain.ErrProviderUnavailable を返します。
func Transform(raw entity.RawPriceSeries, window entity.DateWindow) (entity.ReturnSeries, error) {
	out := entity.ReturnSeries{Symbol: raw.Symbol}

	points := slices.Clone(raw.Points)
	slices.SortStableFunc(points, func(a, b entity.PricePoint) int {
		return a.Date.Compare(b.Date)
	})

	in := make([]entity.PricePoint, 0, len(points))
	for _, p := range points {
		if window.Contains(p.Date) {
			in = append(in, p)
		}
	}
	if len(in) == 0 {
		return out, nil
	}

	out.Points = make([]entity.ReturnPoint, 0, len(in))
	growth := 1.0
	for i, p := range in {
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return entity.ReturnSeries{}, fmt.Errorf("%w: %s has unusable price %v on %s",
				domain.ErrProviderUnavailable, raw.Symbol, p.Price, p.Date.Format(entity.DateLayout))
		}
		r := 0.0
		if i > 0 {
			prev := in[i-1].Price
			r = (p.Price - prev) / prev
		}
		growth *= 1 + r
		out.Points = append(out.Points, entity.ReturnPoint{
			Date:    entity.CivilDate(p.Date),
			GainPct: (growth - 1) * 100,
		})
	}
	return out, nil
}
