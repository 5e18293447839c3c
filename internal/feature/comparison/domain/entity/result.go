package entity

import "stock_compare/internal/feature/comparison/domain"

// ComparisonResult is produced once per comparison request and handed to a renderer.
// On success Series holds one ReturnSeries per requested symbol, in request order, and
// Kind and Message are empty. On rejection Series is nil and Message explains why.
type ComparisonResult struct {
	Series  []ReturnSeries
	Kind    domain.Kind // Rejection kind; empty on success
	Message string      // Human-readable diagnostic; empty on success
	Notes   []string    // Informational notes such as tier fallbacks
}

// OK reports whether the comparison succeeded.
func (r ComparisonResult) OK() bool { return r.Kind == domain.KindNone }
