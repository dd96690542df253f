package repository

import (
	"context"

	"gorm.io/gorm"

	"taxengine/internal/model"
)

// EvaluationRepository persists immutable Evaluation audit artifacts.
// There is deliberately no Update/Delete: an Evaluation, once created,
// is never mutated.
type EvaluationRepository interface {
	Create(ctx context.Context, e *model.Evaluation) error
	GetByID(ctx context.Context, id string) (*model.Evaluation, error)
	ListByProfile(ctx context.Context, profileID string) ([]model.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository returns a new EvaluationRepository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, e *model.Evaluation) error {
	return GetDB(ctx, r.db).Create(e).Error
}

func (r *evaluationRepository) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	var e model.Evaluation
	if err := GetDB(ctx, r.db).Preload("Results").First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evaluationRepository) ListByProfile(ctx context.Context, profileID string) ([]model.Evaluation, error) {
	var out []model.Evaluation
	if err := GetDB(ctx, r.db).
		Where("profile_id = ?", profileID).
		Order("created_at desc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
