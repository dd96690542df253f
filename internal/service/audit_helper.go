package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

// logAuditBestEffort writes an AuditLog row and swallows any error: an
// audit-trail failure must never fail the caller's primary write.
func logAuditBestEffort(ctx context.Context, repo repository.AuditRepository, actorID uuid.UUID, action, entityID string, payload interface{}) {
	details, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := &model.AuditLog{
		UserID:    &actorID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(details),
		CreatedAt: time.Now(),
	}
	_ = repo.Log(ctx, entry)
}
