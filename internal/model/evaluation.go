package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Evaluation is the immutable audit artifact produced by one run of the
// rules engine against one profile. Once persisted, an Evaluation and its
// Results are never updated or deleted.
type Evaluation struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProfileID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"profile_id"`
	FiscalYearID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"fiscal_year_id"`
	RuleSetID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"rule_set_id"`
	RuleSetVersion  int              `gorm:"not null" json:"rule_set_version"`
	RequestedBy     uuid.UUID        `gorm:"type:uuid;not null" json:"requested_by"`
	ProfileSnapshot JSONMap          `gorm:"type:jsonb;not null" json:"profile_snapshot"`
	Results         []EvaluationResult `gorm:"foreignKey:EvaluationID" json:"results,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Summary tallies results by outcome, mirroring the counts shown in an
// evaluation's audit header.
func (e Evaluation) Summary() map[string]int {
	counts := map[string]int{
		ResultApplies:       0,
		ResultDoesNotApply:  0,
		ResultConditional:   0,
		ResultNeedsMoreInfo: 0,
	}
	for _, r := range e.Results {
		counts[r.Result]++
	}
	return counts
}

// EvaluationResult is the per-obligation outcome of one Evaluation,
// carrying the full condition trace and rendered explanation that justify
// it.
type EvaluationResult struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EvaluationID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"evaluation_id"`
	ObligationTypeID uuid.UUID        `gorm:"type:uuid;not null;index" json:"obligation_type_id"`
	Result           string           `gorm:"type:varchar(20);not null" json:"result"`
	TriggeredRuleID  *uuid.UUID       `gorm:"type:uuid" json:"triggered_rule_id"`
	Explanation      string           `gorm:"type:text;not null" json:"explanation"`
	LegalReferences  JSONMap          `gorm:"type:jsonb" json:"legal_references,omitempty"`
	ConditionTrace   ConditionTraceList `gorm:"type:jsonb" json:"condition_trace,omitempty"`
}

// ConditionTrace is one evaluated condition, kept regardless of whether
// it passed, so the full reasoning behind a result can be audited.
type ConditionTrace struct {
	RuleID         uuid.UUID `json:"rule_id"`
	Field          string    `json:"field"`
	Operator       string    `json:"operator"`
	ProfileValue   string    `json:"profile_value"`
	ThresholdCode  string    `json:"threshold_code,omitempty"`
	ThresholdValue string    `json:"threshold_value,omitempty"`
	Passes         bool      `json:"passes"`
	Description    string    `json:"description,omitempty"`
}

// ConditionTraceList is a jsonb-backed slice of ConditionTrace.
type ConditionTraceList []ConditionTrace

func (c ConditionTraceList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

func (c *ConditionTraceList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("model: ConditionTraceList.Scan: unsupported type")
	}
	if len(raw) == 0 {
		*c = nil
		return nil
	}
	var out []ConditionTrace
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*c = out
	return nil
}
