package engine

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxengine/internal/model"
)

// Engine orchestrates one evaluation run: for every obligation in scope
// it walks that obligation's active rules in priority order, stops at
// the first rule whose conditions are satisfied, and otherwise falls
// back to does_not_apply.
type Engine struct {
	evaluator *RuleEvaluator
	explainer *ExplanationBuilder
}

// New builds an Engine bound to one fiscal year's threshold map.
func New(thresholds map[string]decimal.Decimal, fiscalYear model.FiscalYear) *Engine {
	resolver := NewThresholdResolver(thresholds)
	return &Engine{
		evaluator: NewRuleEvaluator(resolver),
		explainer: NewExplanationBuilder(fiscalYear),
	}
}

// ObligationOutcome is one obligation's result within a run, ready to be
// persisted as a model.EvaluationResult.
type ObligationOutcome struct {
	ObligationType  model.ObligationType
	Result          string
	TriggeredRuleID *uuid.UUID
	Explanation     string
	LegalReferences []string
	Trace           []model.ConditionTrace
}

// Evaluate runs every obligation in obligations against profile, using
// rulesByObligation to find that obligation's candidate rules. Rules are
// evaluated in ascending Priority order; the first rule whose verdict
// passes decides the obligation's result. A configuration error
// encountered while evaluating any rule of an obligation downgrades that
// obligation (only) to needs_more_info — it never aborts the run.
func (e *Engine) Evaluate(profile model.TaxProfile, obligations []model.ObligationType, rulesByObligation map[uuid.UUID][]model.Rule) []ObligationOutcome {
	outcomes := make([]ObligationOutcome, 0, len(obligations))
	for _, obl := range obligations {
		outcomes = append(outcomes, e.evaluateObligation(obl, rulesByObligation[obl.ID], profile))
	}
	return outcomes
}

func (e *Engine) evaluateObligation(obl model.ObligationType, rules []model.Rule, profile model.TaxProfile) ObligationOutcome {
	sorted := make([]model.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	var trace []model.ConditionTrace
	var triggered *model.Rule
	var triggeredEval RuleEvaluation
	var configErr error

	for i := range sorted {
		rule := sorted[i]
		if !rule.IsActive {
			continue
		}

		evalResult, err := e.evaluator.EvaluateRule(rule, profile)
		if err != nil {
			trace = append(trace, conditionsToTrace(rule.ID, evalResult.Conditions)...)
			if evalResult.FailedCondition != nil {
				trace = append(trace, configErrorTrace(rule.ID, *evalResult.FailedCondition, err))
			}
			configErr = err
			break
		}

		trace = append(trace, conditionsToTrace(rule.ID, evalResult.Conditions)...)

		if evalResult.Passes {
			triggered = &sorted[i]
			triggeredEval = evalResult
			break
		}
	}

	if triggered == nil && configErr != nil {
		return ObligationOutcome{
			ObligationType:  obl,
			Result:          model.ResultNeedsMoreInfo,
			Explanation:     e.explainer.Build(obl, model.ResultNeedsMoreInfo, nil, nil),
			LegalReferences: obl.LegalReferences(),
			Trace:           trace,
		}
	}

	if triggered == nil {
		return ObligationOutcome{
			ObligationType:  obl,
			Result:          model.ResultDoesNotApply,
			Explanation:     e.explainer.Build(obl, model.ResultDoesNotApply, nil, nil),
			LegalReferences: obl.LegalReferences(),
			Trace:           trace,
		}
	}

	result := triggered.ResultIfTrue
	id := triggered.ID
	return ObligationOutcome{
		ObligationType:  obl,
		Result:          result,
		TriggeredRuleID: &id,
		Explanation:     e.explainer.Build(obl, result, triggered, triggeredEval.Conditions),
		LegalReferences: obl.LegalReferences(),
		Trace:           trace,
	}
}

func conditionsToTrace(ruleID uuid.UUID, results []ConditionResult) []model.ConditionTrace {
	out := make([]model.ConditionTrace, 0, len(results))
	for _, r := range results {
		out = append(out, model.ConditionTrace{
			RuleID:         ruleID,
			Field:          r.Condition.Field,
			Operator:       r.Condition.Operator,
			ProfileValue:   renderValue(r.ProfileValue),
			ThresholdCode:  thresholdCode(r.Condition),
			ThresholdValue: renderValue(r.ThresholdValue),
			Passes:         r.Passes,
			Description:    r.Condition.Description,
		})
	}
	return out
}

func thresholdCode(cond model.RuleCondition) string {
	if cond.ValueType == model.ValueTypeThresholdRef {
		return cond.Value
	}
	return ""
}

// configErrorTrace renders the condition whose resolution failed as a
// trace entry carrying the missing code, so a needs_more_info outcome's
// trace always records what configuration was absent.
func configErrorTrace(ruleID uuid.UUID, cond model.RuleCondition, err error) model.ConditionTrace {
	code := thresholdCode(cond)
	var tm *ThresholdMissingError
	var um *UvtMissingError
	var ue *InvalidUvtExprError
	switch {
	case errors.As(err, &tm):
		code = tm.Code
	case errors.As(err, &um):
		code = model.ReservedUVTCode
	case errors.As(err, &ue):
		code = ue.Raw
	}
	return model.ConditionTrace{
		RuleID:        ruleID,
		Field:         cond.Field,
		Operator:      cond.Operator,
		ThresholdCode: code,
		Passes:        false,
		Description:   err.Error(),
	}
}
