package model

import (
	"time"

	"github.com/google/uuid"
)

// RuleSet status constants.
const (
	RuleSetStatusDraft      = "draft"
	RuleSetStatusActive     = "active"
	RuleSetStatusDeprecated = "deprecated"
)

// Logic operators a Rule combines its conditions with.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// Obligation results a Rule can stamp when it fires.
const (
	ResultApplies       = "applies"
	ResultDoesNotApply  = "does_not_apply"
	ResultConditional   = "conditional"
	ResultNeedsMoreInfo = "needs_more_info"
)

// Condition operators.
const (
	OpGT     = "gt"
	OpGTE    = "gte"
	OpLT     = "lt"
	OpLTE    = "lte"
	OpEQ     = "eq"
	OpNEQ    = "neq"
	OpIn     = "in"
	OpNotIn  = "not_in"
	OpBetween = "between"
	OpIsTrue  = "is_true"
	OpIsFalse = "is_false"
)

// Condition value types — how RuleCondition.Value is to be resolved.
const (
	ValueTypeLiteral     = "literal"
	ValueTypeThresholdRef = "threshold_ref"
	ValueTypeUVTExpr     = "uvt_expr"
)

// RuleSet is a versioned collection of rules bound to one fiscal year.
// At most one rule set per fiscal year has status "active" at any instant
// (enforced by the rule-set lifecycle, not by a DB constraint alone).
type RuleSet struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FiscalYearID uuid.UUID  `gorm:"type:uuid;not null;index:idx_ruleset_fy_version,unique,priority:1" json:"fiscal_year_id"`
	Version      int        `gorm:"not null;index:idx_ruleset_fy_version,unique,priority:2" json:"version"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	PublishedAt  *time.Time `json:"published_at"`
	Changelog    string     `gorm:"type:text" json:"changelog"`
	Rules        []Rule     `gorm:"foreignKey:RuleSetID" json:"rules,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Rule is a named, prioritized conjunction/disjunction of conditions
// that, when satisfied, assigns its obligation a result.
type Rule struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RuleSetID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_rule_set_obl_priority,priority:1" json:"rule_set_id"`
	ObligationTypeID uuid.UUID       `gorm:"type:uuid;not null;index:idx_rule_set_obl_priority,priority:2" json:"obligation_type_id"`
	Code             string          `gorm:"type:varchar(100);not null" json:"code"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	LogicOperator    string          `gorm:"type:varchar(5);not null;default:'AND'" json:"logic_operator"`
	Priority         int             `gorm:"not null;default:0;index:idx_rule_set_obl_priority,priority:3" json:"priority"`
	ResultIfTrue     string          `gorm:"type:varchar(20);not null;default:'applies'" json:"result_if_true"`
	IsActive         bool            `gorm:"not null;default:true" json:"is_active"`
	Conditions       []RuleCondition `gorm:"foreignKey:RuleID" json:"conditions,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// RuleCondition is one clause of a Rule: a field on the profile compared
// against a resolved value via an operator.
type RuleCondition struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RuleID         uuid.UUID `gorm:"type:uuid;not null;index" json:"rule_id"`
	Sequence       int       `gorm:"not null;default:0" json:"-"` // stored condition order
	Field          string    `gorm:"type:varchar(100);not null" json:"field"`
	Operator       string    `gorm:"type:varchar(20);not null" json:"operator"`
	ValueType      string    `gorm:"type:varchar(20);not null" json:"value_type"`
	Value          string    `gorm:"type:text" json:"value"`
	ValueSecondary *string   `gorm:"type:text" json:"value_secondary"`
	Description    string    `gorm:"type:text" json:"description"`
}
