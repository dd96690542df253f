package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taxengine/internal/model"
)

// ThresholdRepository persists Threshold rows and resolves a fiscal
// year's full threshold map for the engine.
type ThresholdRepository interface {
	Upsert(ctx context.Context, t *model.Threshold) error
	List(ctx context.Context, fiscalYearID string) ([]model.Threshold, error)
	// GetMap returns the fiscal year's thresholds keyed by code, with
	// comparands already materialized to COP (including the reserved
	// uvt_value entry, derived from the fiscal year itself).
	GetMap(ctx context.Context, fiscalYear model.FiscalYear) (map[string]decimal.Decimal, error)
}

type thresholdRepository struct {
	db *gorm.DB
}

// NewThresholdRepository returns a new ThresholdRepository.
func NewThresholdRepository(db *gorm.DB) ThresholdRepository {
	return &thresholdRepository{db: db}
}

func (r *thresholdRepository) Upsert(ctx context.Context, t *model.Threshold) error {
	return GetDB(ctx, r.db).
		Where("fiscal_year_id = ? AND code = ?", t.FiscalYearID, t.Code).
		Assign(t).
		FirstOrCreate(t).Error
}

func (r *thresholdRepository) List(ctx context.Context, fiscalYearID string) ([]model.Threshold, error) {
	var out []model.Threshold
	if err := GetDB(ctx, r.db).Where("fiscal_year_id = ?", fiscalYearID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *thresholdRepository) GetMap(ctx context.Context, fiscalYear model.FiscalYear) (map[string]decimal.Decimal, error) {
	thresholds, err := r.List(ctx, fiscalYear.ID.String())
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(thresholds)+1)
	out[model.ReservedUVTCode] = fiscalYear.UVTValue
	for _, t := range thresholds {
		out[t.Code] = t.Comparand(fiscalYear.UVTValue)
	}
	return out, nil
}
