package entity

import "time"

// Tier identifies a provider capability tier.
type Tier string

const (
	// TierAdjusted is the premium tier: full history, adjusted-close column.
	TierAdjusted Tier = "adjusted"
	// TierBasic is the basic tier: compact recent history, raw close column.
	TierBasic Tier = "basic"
)

// PricePoint is a single daily observation.
type PricePoint struct {
	Date  time.Time // Trading day (midnight UTC)
	Price float64   // Price in the provider's native currency
}

// RawPriceSeries is the daily price series of one symbol as returned by a provider.
// Points are not guaranteed to be sorted.
type RawPriceSeries struct {
	Symbol Symbol
	Column string // Provider column the prices were read from (e.g., "5. adjusted close")
	Points []PricePoint
}

// SourceSelection records which provider endpoint and column produced a series.
// It is carried for diagnostics only.
type SourceSelection struct {
	Provider string `json:"provider"`
	Tier     Tier   `json:"tier"`
	Column   string `json:"column"`
	FellBack bool   `json:"fell_back"`
}

// ReturnPoint is the cumulative gain at one trading day.
type ReturnPoint struct {
	Date    time.Time
	GainPct float64 // Compounded gain since the first in-window observation, in percent
}

// ReturnSeries is a baseline-relative cumulative return series restricted to a DateWindow.
// The first point, if any, always has GainPct == 0.
type ReturnSeries struct {
	Symbol Symbol
	Source SourceSelection
	Points []ReturnPoint
}

// Empty reports whether the series has no observations.
func (s ReturnSeries) Empty() bool { return len(s.Points) == 0 }
