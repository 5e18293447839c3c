package di

import (
	"time"

	"gorm.io/gorm"

	"stock_compare/internal/feature/comparison/adapters"
	"stock_compare/internal/feature/comparison/usecase"
	"stock_compare/internal/platform/config"
)

// NewRecorder returns a diagnostics recorder on db, or a no-op recorder when db is nil.
func NewRecorder(db *gorm.DB) usecase.Recorder {
	if db == nil {
		return adapters.NewNoopRecorder()
	}
	return adapters.NewComparisonRecorder(db)
}

// NewComparisonUsecase builds the resolver and the comparison usecase from configuration.
// now may be nil to use the wall clock.
func NewComparisonUsecase(cfg *config.Config, provider usecase.PriceProvider, recorder usecase.Recorder, now func() time.Time) (*usecase.ComparisonUsecase, error) {
	tier, err := usecase.ParseTier(cfg.Market.PrimaryTier)
	if err != nil {
		return nil, err
	}
	alphabet, err := usecase.ParseAlphabet(cfg.Symbols.Alphabet)
	if err != nil {
		return nil, err
	}

	resolver := usecase.NewSourceResolver(provider, usecase.ResolverConfig{
		Primary:  tier,
		Fallback: cfg.FallbackEnabled(),
	})
	return usecase.NewComparisonUsecase(resolver, usecase.Options{
		Alphabet: alphabet,
		Parallel: cfg.ParallelEnabled(),
		Now:      now,
		Recorder: recorder,
	}), nil
}
