package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// ValidateWindow は開始日・終了日の文字列を検証し、DateWindow を生成します。
//
// 各値は前後の空白を除いた先頭10文字を YYYY-MM-DD として解釈します
// （"2025-01-01 00:00:00" のような日時文字列も受け付けるため）。
// どちらかが today より後の日付なら domain.ErrFutureDate を返します。
// 一方の解析に失敗していても、もう一方が未来日であれば ErrFutureDate を優先します。
// 開始日が終了日より後でもエラーにはしません（空の系列になります）。
func ValidateWindow(start, end string, today time.Time) (entity.DateWindow, error) {
	today = entity.CivilDate(today)

	s, startErr := parseDate(start)
	e, endErr := parseDate(end)

	if startErr == nil && s.After(today) {
		return entity.DateWindow{}, fmt.Errorf("%w: start %s is after %s", domain.ErrFutureDate,
			s.Format(entity.DateLayout), today.Format(entity.DateLayout))
	}
	if endErr == nil && e.After(today) {
		return entity.DateWindow{}, fmt.Errorf("%w: end %s is after %s", domain.ErrFutureDate,
			e.Format(entity.DateLayout), today.Format(entity.DateLayout))
	}
	if err := errors.Join(startErr, endErr); err != nil {
		return entity.DateWindow{}, err
	}
	return entity.NewDateWindow(s, e), nil
}

func parseDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if len(v) > len(entity.DateLayout) {
		v = v[:len(entity.DateLayout)]
	}
	t, err := time.Parse(entity.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, raw)
	}
	return t, nil
}
