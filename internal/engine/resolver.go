package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"taxengine/internal/model"
)

// ThresholdResolver resolves a RuleCondition's declared value into the
// concrete comparand the operator library consumes, given one fiscal
// year's threshold map.
type ThresholdResolver struct {
	thresholds map[string]decimal.Decimal
}

// NewThresholdResolver wraps a fiscal year's threshold map. The caller is
// responsible for including the reserved uvt_value entry.
func NewThresholdResolver(thresholds map[string]decimal.Decimal) *ThresholdResolver {
	return &ThresholdResolver{thresholds: thresholds}
}

// Resolve returns the comparand for cond.Value per cond.ValueType.
func (r *ThresholdResolver) Resolve(cond model.RuleCondition) (interface{}, error) {
	return r.resolveValue(cond.ValueType, cond.Value)
}

// ResolveSecondary resolves the "between" upper bound carried in
// ValueSecondary, the same way Resolve resolves the primary value: a
// threshold_ref or uvt_expr secondary is looked up through the threshold
// map just like the primary bound, not treated as a bare literal.
func (r *ThresholdResolver) ResolveSecondary(cond model.RuleCondition) (interface{}, error) {
	if cond.ValueSecondary == nil {
		return nil, nil
	}
	return r.resolveValue(cond.ValueType, *cond.ValueSecondary)
}

func (r *ThresholdResolver) resolveValue(valueType, value string) (interface{}, error) {
	switch valueType {
	case model.ValueTypeThresholdRef:
		v, ok := r.thresholds[value]
		if !ok {
			return nil, &ThresholdMissingError{Code: value}
		}
		return v, nil
	case model.ValueTypeUVTExpr:
		uvt, ok := r.thresholds[model.ReservedUVTCode]
		if !ok {
			return nil, &UvtMissingError{}
		}
		multiplier, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, &InvalidUvtExprError{Raw: value}
		}
		return multiplier.Mul(uvt), nil
	default: // literal, or anything else: passed through verbatim
		return value, nil
	}
}
