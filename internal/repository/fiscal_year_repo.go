package repository

import (
	"context"

	"gorm.io/gorm"

	"taxengine/internal/model"
)

// FiscalYearRepository persists FiscalYear aggregates.
type FiscalYearRepository interface {
	Create(ctx context.Context, fy *model.FiscalYear) error
	Update(ctx context.Context, fy *model.FiscalYear) error
	GetByID(ctx context.Context, id string) (*model.FiscalYear, error)
	GetByYear(ctx context.Context, year int) (*model.FiscalYear, error)
	List(ctx context.Context, page, limit int) ([]model.FiscalYear, int64, error)
}

type fiscalYearRepository struct {
	db *gorm.DB
}

// NewFiscalYearRepository returns a new FiscalYearRepository.
func NewFiscalYearRepository(db *gorm.DB) FiscalYearRepository {
	return &fiscalYearRepository{db: db}
}

func (r *fiscalYearRepository) Create(ctx context.Context, fy *model.FiscalYear) error {
	return GetDB(ctx, r.db).Create(fy).Error
}

func (r *fiscalYearRepository) Update(ctx context.Context, fy *model.FiscalYear) error {
	return GetDB(ctx, r.db).Save(fy).Error
}

func (r *fiscalYearRepository) GetByID(ctx context.Context, id string) (*model.FiscalYear, error) {
	var fy model.FiscalYear
	if err := GetDB(ctx, r.db).First(&fy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fy, nil
}

func (r *fiscalYearRepository) GetByYear(ctx context.Context, year int) (*model.FiscalYear, error) {
	var fy model.FiscalYear
	if err := GetDB(ctx, r.db).First(&fy, "year = ?", year).Error; err != nil {
		return nil, err
	}
	return &fy, nil
}

func (r *fiscalYearRepository) List(ctx context.Context, page, limit int) ([]model.FiscalYear, int64, error) {
	var out []model.FiscalYear
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.FiscalYear{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).Order("year desc").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}
