package model

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry status constants.
const (
	CalendarEntryPending   = "pending"
	CalendarEntryCompleted = "completed"
	CalendarEntryDismissed = "dismissed"
)

// CalendarEntry is a compliance-calendar row seeded from an Evaluation
// result whose outcome is "applies" or "conditional". Entries are the
// only mutable downstream artifact of an Evaluation — the Evaluation
// itself never changes.
type CalendarEntry struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProfileID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	EvaluationID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"evaluation_id"`
	EvaluationResultID uuid.UUID  `gorm:"type:uuid;not null" json:"evaluation_result_id"`
	ObligationTypeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"obligation_type_id"`
	FiscalYearID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"fiscal_year_id"`
	DueDate            *time.Time `json:"due_date"`
	Frequency          string     `gorm:"type:varchar(30)" json:"frequency"`
	Status             string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes              string     `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
