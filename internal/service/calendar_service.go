package service

import (
	"context"
	"errors"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

var validCalendarStatuses = map[string]bool{
	model.CalendarEntryPending:   true,
	model.CalendarEntryCompleted: true,
	model.CalendarEntryDismissed: true,
}

// CalendarService exposes the compliance calendar materialized by
// EvaluationService. It never writes new entries itself; it only lists
// and transitions the status of entries the engine already created.
type CalendarService interface {
	ListByProfile(ctx context.Context, profileID string) ([]model.CalendarEntry, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type calendarService struct {
	repo repository.CalendarRepository
}

// NewCalendarService returns a new CalendarService.
func NewCalendarService(repo repository.CalendarRepository) CalendarService {
	return &calendarService{repo: repo}
}

func (s *calendarService) ListByProfile(ctx context.Context, profileID string) ([]model.CalendarEntry, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

func (s *calendarService) UpdateStatus(ctx context.Context, id, status string) error {
	if !validCalendarStatuses[status] {
		return errors.New("invalid calendar entry status")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
