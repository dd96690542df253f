package repository

import (
	"context"

	"gorm.io/gorm"

	"taxengine/internal/model"
)

// ObligationRepository manages the global obligation catalog and its
// per-fiscal-year periodicity rows.
type ObligationRepository interface {
	Create(ctx context.Context, o *model.ObligationType) error
	Update(ctx context.Context, o *model.ObligationType) error
	GetByID(ctx context.Context, id string) (*model.ObligationType, error)
	ListActive(ctx context.Context) ([]model.ObligationType, error)
	List(ctx context.Context) ([]model.ObligationType, error)
	UpsertPeriodicity(ctx context.Context, p *model.ObligationPeriodicity) error
	PeriodicityMap(ctx context.Context, fiscalYearID string) (map[string]model.ObligationPeriodicity, error)
}

type obligationRepository struct {
	db *gorm.DB
}

// NewObligationRepository returns a new ObligationRepository.
func NewObligationRepository(db *gorm.DB) ObligationRepository {
	return &obligationRepository{db: db}
}

func (r *obligationRepository) Create(ctx context.Context, o *model.ObligationType) error {
	return GetDB(ctx, r.db).Create(o).Error
}

func (r *obligationRepository) Update(ctx context.Context, o *model.ObligationType) error {
	return GetDB(ctx, r.db).Save(o).Error
}

func (r *obligationRepository) GetByID(ctx context.Context, id string) (*model.ObligationType, error) {
	var o model.ObligationType
	if err := GetDB(ctx, r.db).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListActive returns active obligation types ordered by display_order,
// the same ordering an Evaluation's results are presented in.
func (r *obligationRepository) ListActive(ctx context.Context) ([]model.ObligationType, error) {
	var out []model.ObligationType
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("display_order asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *obligationRepository) List(ctx context.Context) ([]model.ObligationType, error) {
	var out []model.ObligationType
	if err := GetDB(ctx, r.db).Order("display_order asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *obligationRepository) UpsertPeriodicity(ctx context.Context, p *model.ObligationPeriodicity) error {
	return GetDB(ctx, r.db).
		Where("obligation_type_id = ? AND fiscal_year_id = ?", p.ObligationTypeID, p.FiscalYearID).
		Assign(p).
		FirstOrCreate(p).Error
}

// PeriodicityMap returns the fiscal year's periodicities keyed by
// obligation_type_id (as a string), for layering onto engine outcomes.
func (r *obligationRepository) PeriodicityMap(ctx context.Context, fiscalYearID string) (map[string]model.ObligationPeriodicity, error) {
	var rows []model.ObligationPeriodicity
	if err := GetDB(ctx, r.db).Where("fiscal_year_id = ?", fiscalYearID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.ObligationPeriodicity, len(rows))
	for _, p := range rows {
		out[p.ObligationTypeID.String()] = p
	}
	return out, nil
}
