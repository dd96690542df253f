package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateFiscalYear  = "CREATE_FISCAL_YEAR"
	ActionUpdateFiscalYear  = "UPDATE_FISCAL_YEAR"
	ActionUpsertThreshold   = "UPSERT_THRESHOLD"
	ActionCreateObligation  = "CREATE_OBLIGATION_TYPE"
	ActionUpdateObligation  = "UPDATE_OBLIGATION_TYPE"
	ActionCreateRuleSet     = "CREATE_RULE_SET"
	ActionUpdateRuleSet     = "UPDATE_RULE_SET"
	ActionPublishRuleSet    = "PUBLISH_RULE_SET"
	ActionDeprecateRuleSet  = "DEPRECATE_RULE_SET"
	ActionCreateProfile     = "CREATE_TAX_PROFILE"
	ActionUpdateProfile     = "UPDATE_TAX_PROFILE"
	ActionCreateEvaluation  = "CREATE_EVALUATION"
	ActionMaterializeCalendar = "MATERIALIZE_CALENDAR_ENTRY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
