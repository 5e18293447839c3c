package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// Resolver は銘柄の価格系列を取得するコンポーネントのインターフェイスです。
type Resolver interface {
	Resolve(ctx context.Context, symbol entity.Symbol) (entity.RawPriceSeries, entity.SourceSelection, error)
}

// ComparisonRecord は1回の比較リクエストの診断情報です。価格データは含みません。
type ComparisonRecord struct {
	RequestedAt time.Time
	Symbols     []string // 入力された銘柄（正規化前）
	Start       string
	End         string
	Kind        domain.Kind
	Sources     []entity.SourceSelection // 成功時のみ、銘柄順
}

// Recorder は比較結果の診断情報を記録します。
type Recorder interface {
	RecordComparison(ctx context.Context, rec ComparisonRecord) error
}

// Options は ComparisonUsecase の動作設定です。
type Options struct {
	Alphabet Alphabet         // 銘柄の文字集合
	Parallel bool             // 銘柄ごとの取得を並行して行うか
	Now      func() time.Time // 未来日判定に使う現在時刻。nil なら time.Now
	Recorder Recorder         // nil なら記録しない
}

// ComparisonUsecase は複数銘柄の累積リターンを比較するユースケースです。
type ComparisonUsecase struct {
	sanitizer Sanitizer
	resolver  Resolver
	parallel  bool
	now       func() time.Time
	recorder  Recorder
}

// NewComparisonUsecase は新しい ComparisonUsecase を生成します。
func NewComparisonUsecase(resolver Resolver, opts Options) *ComparisonUsecase {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ComparisonUsecase{
		sanitizer: NewSanitizer(opts.Alphabet),
		resolver:  resolver,
		parallel:  opts.Parallel,
		now:       now,
		recorder:  opts.Recorder,
	}
}

// Compare は2銘柄の累積リターン系列を比較します。
func (uc *ComparisonUsecase) Compare(ctx context.Context, symbol1, symbol2, start, end string) entity.ComparisonResult {
	return uc.CompareMany(ctx, []string{symbol1, symbol2}, start, end)
}

// CompareMany は任意個の銘柄について、指定期間の累積リターン系列を返します。
//
// 入力の正規化と期間検証は通信の前にすべて行います。いずれかの銘柄が失敗した場合は
// 系列を返さず、入力順で最初に見つかった失敗の分類とメッセージを返します。
func (uc *ComparisonUsecase) CompareMany(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult {
	requestedAt := uc.now()
	res := uc.compare(ctx, symbols, start, end, requestedAt)

	if uc.recorder != nil {
		rec := ComparisonRecord{
			RequestedAt: requestedAt,
			Symbols:     symbols,
			Start:       start,
			End:         end,
			Kind:        res.Kind,
		}
		for _, s := range res.Series {
			rec.Sources = append(rec.Sources, s.Source)
		}
		if err := uc.recorder.RecordComparison(ctx, rec); err != nil {
			slog.Warn("failed to record comparison", "symbols", symbols, "error", err)
		}
	}
	return res
}

func (uc *ComparisonUsecase) compare(ctx context.Context, symbols []string, start, end string, today time.Time) entity.ComparisonResult {
	if len(symbols) == 0 {
		return reject(fmt.Errorf("%w: no symbols requested", domain.ErrInvalidSymbol))
	}

	// 1) 正規化と期間検証（銘柄順、通信なし）
	canon := make([]entity.Symbol, len(symbols))
	var window entity.DateWindow
	for i, raw := range symbols {
		sym, err := uc.sanitizer.Sanitize(raw)
		if err != nil {
			return reject(err)
		}
		canon[i] = sym
		if i == 0 {
			if window, err = ValidateWindow(start, end, today); err != nil {
				return reject(err)
			}
		}
	}

	// 2) 取得と変換
	series := make([]entity.ReturnSeries, len(canon))
	errs := make([]error, len(canon))
	run := func(i int) {
		series[i], errs[i] = uc.evaluate(ctx, canon[i], window)
	}
	if uc.parallel && len(canon) > 1 {
		var g errgroup.Group
		for i := range canon {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range canon {
			run(i)
		}
	}

	// 3) 入力順で最初の失敗を返す
	for i, err := range errs {
		if err != nil {
			return reject(err)
		}
		if series[i].Empty() {
			return reject(fmt.Errorf("%w: %s has no observations in %s", domain.ErrNoData, canon[i], window))
		}
	}

	res := entity.ComparisonResult{Series: series}
	for _, s := range series {
		if s.Source.FellBack {
			res.Notes = append(res.Notes, fmt.Sprintf("Premium endpoint not available for %s. Using basic daily data.", s.Symbol))
		}
	}
	return res
}

func (uc *ComparisonUsecase) evaluate(ctx context.Context, symbol entity.Symbol, window entity.DateWindow) (entity.ReturnSeries, error) {
	raw, sel, err := uc.resolver.Resolve(ctx, symbol)
	if err != nil {
		return entity.ReturnSeries{}, err
	}
	out, err := Transform(raw, window)
	if err != nil {
		return entity.ReturnSeries{}, err
	}
	out.Symbol = symbol
	out.Source = sel
	return out, nil
}

func reject(err error) entity.ComparisonResult {
	kind := domain.KindOf(err)
	slog.Info("comparison rejected", "kind", kind, "error", err)
	return entity.ComparisonResult{Kind: kind, Message: kind.Message()}
}
