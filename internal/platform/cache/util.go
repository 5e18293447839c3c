package cache

import (
	"time"
)

// usCloseHour is the regular session close of US equity markets (New York time).
const usCloseHour = 16

// minTTL keeps entries written right at the close from expiring immediately.
const minTTL = time.Minute

func newYork() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// TimeUntilNextUSClose は now から次の米国市場の終値確定（ニューヨーク時間16時、平日）までの期間を返します。
// 日次データは終値確定まで変化しないため、キャッシュの有効期限として使います。
func TimeUntilNextUSClose(now time.Time) time.Duration {
	loc := newYork()
	local := now.In(loc)

	next := time.Date(local.Year(), local.Month(), local.Day(), usCloseHour, 0, 0, 0, loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	// 土日は取引がないため月曜の終値まで延ばす
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	d := next.Sub(now)
	if d < minTTL {
		return minTTL
	}
	return d
}
