package engine

import (
	"fmt"

	"taxengine/internal/model"
)

// ConditionResult is one evaluated RuleCondition, kept whether it passed
// or not so the full trace behind a rule's verdict is reconstructable.
type ConditionResult struct {
	Condition      model.RuleCondition
	ProfileValue   interface{}
	ThresholdValue interface{}
	Passes         bool
}

// RuleEvaluation is one Rule's verdict plus the full trace of every
// condition it was built from.
type RuleEvaluation struct {
	Rule       model.Rule
	Passes     bool
	Conditions []ConditionResult
	// FailedCondition is set when evaluation aborted because resolving
	// this condition returned a configuration error.
	FailedCondition *model.RuleCondition
}

// RuleEvaluator evaluates a single rule's conditions against a profile,
// never short-circuiting: every condition is evaluated and recorded even
// once the combined verdict is already decided, because the full trace
// is audit evidence.
type RuleEvaluator struct {
	resolver *ThresholdResolver
}

// NewRuleEvaluator builds a RuleEvaluator bound to one fiscal year's
// threshold resolver.
func NewRuleEvaluator(resolver *ThresholdResolver) *RuleEvaluator {
	return &RuleEvaluator{resolver: resolver}
}

// EvaluateRule runs every condition of rule against profile and combines
// them per rule.LogicOperator. A configuration error (missing threshold,
// missing uvt_value, bad uvt_expr) from resolving any single condition
// aborts this rule's evaluation and is returned to the caller, which
// decides how to treat the obligation as a whole.
func (e *RuleEvaluator) EvaluateRule(rule model.Rule, profile model.TaxProfile) (RuleEvaluation, error) {
	results := make([]ConditionResult, 0, len(rule.Conditions))
	for i := range rule.Conditions {
		cond := rule.Conditions[i]
		result, err := e.evaluateCondition(cond, profile)
		if err != nil {
			return RuleEvaluation{Rule: rule, Conditions: results, FailedCondition: &cond}, err
		}
		results = append(results, result)
	}

	var passes bool
	switch rule.LogicOperator {
	case model.LogicOr:
		passes = false
		for _, r := range results {
			if r.Passes {
				passes = true
				break
			}
		}
		if len(results) == 0 {
			passes = false
		}
	default: // AND, and any unrecognized operator defaults to conjunction
		passes = true
		for _, r := range results {
			if !r.Passes {
				passes = false
			}
		}
		if len(results) == 0 {
			passes = false
		}
	}

	return RuleEvaluation{Rule: rule, Passes: passes, Conditions: results}, nil
}

func (e *RuleEvaluator) evaluateCondition(cond model.RuleCondition, profile model.TaxProfile) (ConditionResult, error) {
	profileValue, _ := FieldValue(profile, cond.Field)

	threshold, err := e.resolver.Resolve(cond)
	if err != nil {
		return ConditionResult{}, err
	}

	var secondary interface{}
	if cond.Operator == model.OpBetween {
		secondary, err = e.resolver.ResolveSecondary(cond)
		if err != nil {
			return ConditionResult{}, err
		}
	}

	passes := applyOperator(cond.Operator, profileValue, threshold, secondary)

	return ConditionResult{
		Condition:      cond,
		ProfileValue:   profileValue,
		ThresholdValue: threshold,
		Passes:         passes,
	}, nil
}

func renderValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
