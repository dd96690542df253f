package repository

import (
	"context"

	"gorm.io/gorm"

	"taxengine/internal/model"
)

// ProfileRepository persists TaxProfile aggregates.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.TaxProfile) error
	Update(ctx context.Context, p *model.TaxProfile) error
	GetByID(ctx context.Context, id string) (*model.TaxProfile, error)
	ListByUser(ctx context.Context, tenantID, userID string) ([]model.TaxProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *model.TaxProfile) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *profileRepository) Update(ctx context.Context, p *model.TaxProfile) error {
	return GetDB(ctx, r.db).Save(p).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.TaxProfile, error) {
	var p model.TaxProfile
	if err := GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) ListByUser(ctx context.Context, tenantID, userID string) ([]model.TaxProfile, error) {
	var out []model.TaxProfile
	if err := GetDB(ctx, r.db).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at desc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
