package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/usecase"
)

// ComparisonModel is the GORM model for the comparisons table.
// One row per request; price data is never stored.
type ComparisonModel struct {
	ID          uint                    `gorm:"primaryKey"`
	RequestedAt time.Time               `gorm:"index;not null"`
	Symbols     string                  `gorm:"size:255;not null"` // comma separated, as requested
	Start       string                  `gorm:"size:32"`
	End         string                  `gorm:"size:32"`
	Kind        string                  `gorm:"size:32;index"` // empty on success
	Sources     []ComparisonSourceModel `gorm:"foreignKey:ComparisonID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (ComparisonModel) TableName() string {
	return "comparisons"
}

// ComparisonSourceModel records which provider tier served one symbol of a successful comparison.
type ComparisonSourceModel struct {
	ID           uint   `gorm:"primaryKey"`
	ComparisonID uint   `gorm:"index;not null"`
	Position     int    `gorm:"not null"`
	Provider     string `gorm:"size:32;not null"`
	Tier         string `gorm:"size:16;not null"`
	Column       string `gorm:"size:64"`
	FellBack     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM.
func (ComparisonSourceModel) TableName() string {
	return "comparison_sources"
}

// Models lists the tables owned by this package, for migrations.
func Models() []any {
	return []any{&ComparisonModel{}, &ComparisonSourceModel{}}
}

type comparisonGorm struct {
	db *gorm.DB
}

var _ usecase.Recorder = (*comparisonGorm)(nil)

// NewComparisonRecorder returns a Recorder backed by db.
func NewComparisonRecorder(db *gorm.DB) *comparisonGorm {
	return &comparisonGorm{db: db}
}

func toModel(rec usecase.ComparisonRecord) ComparisonModel {
	m := ComparisonModel{
		RequestedAt: rec.RequestedAt.UTC(),
		Symbols:     strings.Join(rec.Symbols, ","),
		Start:       rec.Start,
		End:         rec.End,
		Kind:        string(rec.Kind),
	}
	for i, s := range rec.Sources {
		m.Sources = append(m.Sources, ComparisonSourceModel{
			Position: i,
			Provider: s.Provider,
			Tier:     string(s.Tier),
			Column:   s.Column,
			FellBack: s.FellBack,
		})
	}
	return m
}

func (m ComparisonModel) toRecord() usecase.ComparisonRecord {
	rec := usecase.ComparisonRecord{
		RequestedAt: m.RequestedAt,
		Start:       m.Start,
		End:         m.End,
		Kind:        domain.Kind(m.Kind),
	}
	if m.Symbols != "" {
		rec.Symbols = strings.Split(m.Symbols, ",")
	}
	for _, s := range m.Sources {
		rec.Sources = append(rec.Sources, entity.SourceSelection{
			Provider: s.Provider,
			Tier:     entity.Tier(s.Tier),
			Column:   s.Column,
			FellBack: s.FellBack,
		})
	}
	return rec
}

// RecordComparison stores one comparison outcome together with its source selections.
func (r *comparisonGorm) RecordComparison(ctx context.Context, rec usecase.ComparisonRecord) error {
	m := toModel(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert comparison: %w", err)
	}
	return nil
}

// Recent returns the latest limit comparisons, newest first.
func (r *comparisonGorm) Recent(ctx context.Context, limit int) ([]usecase.ComparisonRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []ComparisonModel
	err := r.db.WithContext(ctx).
		Preload("Sources", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("requested_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	out := make([]usecase.ComparisonRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toRecord())
	}
	return out, nil
}
