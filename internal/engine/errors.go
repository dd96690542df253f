package engine

import (
	"errors"
	"fmt"
)

// ErrNoActiveRuleSet is returned when a fiscal year has no rule set in
// "active" status to evaluate against.
var ErrNoActiveRuleSet = errors.New("engine: no active rule set for fiscal year")

// ThresholdMissingError is returned by the resolver when a condition
// references a threshold_ref code absent from the resolved threshold map.
// It is a configuration error, not a user-input error: it never panics
// and never silently resolves to false.
type ThresholdMissingError struct {
	Code string
}

func (e *ThresholdMissingError) Error() string {
	return fmt.Sprintf("engine: threshold not found: %s", e.Code)
}

// UvtMissingError is returned when a uvt_expr condition is resolved but
// the fiscal year's threshold map carries no reserved uvt_value entry.
type UvtMissingError struct{}

func (e *UvtMissingError) Error() string {
	return "engine: uvt_value not found in threshold map"
}

// InvalidUvtExprError is returned when a uvt_expr condition's value is
// not a bare decimal multiplier.
type InvalidUvtExprError struct {
	Raw string
}

func (e *InvalidUvtExprError) Error() string {
	return fmt.Sprintf("engine: invalid uvt_expr value: %q", e.Raw)
}

// IsConfigurationError reports whether err represents a rule/threshold
// authoring defect that should downgrade an obligation's result to
// needs_more_info rather than abort the whole evaluation.
func IsConfigurationError(err error) bool {
	var tm *ThresholdMissingError
	var um *UvtMissingError
	var ue *InvalidUvtExprError
	return errors.As(err, &tm) || errors.As(err, &um) || errors.As(err, &ue)
}
