package repository

import (
	"context"

	"gorm.io/gorm"

	"taxengine/internal/model"
)

// CalendarRepository persists the mutable compliance-calendar entries
// materialized from an Evaluation's results.
type CalendarRepository interface {
	Create(ctx context.Context, entry *model.CalendarEntry) error
	ListByProfile(ctx context.Context, profileID string) ([]model.CalendarEntry, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository returns a new CalendarRepository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, entry *model.CalendarEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *calendarRepository) ListByProfile(ctx context.Context, profileID string) ([]model.CalendarEntry, error) {
	var out []model.CalendarEntry
	if err := GetDB(ctx, r.db).
		Where("profile_id = ?", profileID).
		Order("due_date asc nulls last").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *calendarRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return GetDB(ctx, r.db).Model(&model.CalendarEntry{}).Where("id = ?", id).Update("status", status).Error
}
