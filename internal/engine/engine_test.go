package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxengine/internal/model"
)

func testFiscalYear() model.FiscalYear {
	return model.FiscalYear{
		ID:       uuid.New(),
		Year:     2025,
		Status:   model.FiscalYearActive,
		UVTValue: decimal.NewFromInt(47065),
	}
}

func testObligation() model.ObligationType {
	return model.ObligationType{
		ID:        uuid.New(),
		Code:      "renta",
		Name:      "Declaración de renta",
		Category:  model.ObligationCategoryNacional,
		LegalBase: "Estatuto Tributario Art. 591",
		IsActive:  true,
	}
}

func ruleWithPriority(obligationID uuid.UUID, priority int, resultIfTrue string, active bool, conditions ...model.RuleCondition) model.Rule {
	return model.Rule{
		ID:               uuid.New(),
		ObligationTypeID: obligationID,
		LogicOperator:    model.LogicAnd,
		Priority:         priority,
		ResultIfTrue:     resultIfTrue,
		IsActive:         active,
		Conditions:       conditions,
	}
}

// The first rule (by ascending priority) whose conditions pass decides the
// obligation's result; later rules are never consulted once one fires.
func TestEngine_FirstMatchingRuleByPriorityWins(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()

	alwaysTrue := condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, "")

	low := ruleWithPriority(obl.ID, 10, model.ResultDoesNotApply, true, alwaysTrue)
	high := ruleWithPriority(obl.ID, 1, model.ResultApplies, true, alwaysTrue)

	eng := New(thresholdMap(), fy)
	outcomes := eng.Evaluate(testProfile(), []model.ObligationType{obl}, map[uuid.UUID][]model.Rule{
		obl.ID: {low, high},
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, model.ResultApplies, outcomes[0].Result)
	assert.Equal(t, high.ID, *outcomes[0].TriggeredRuleID)
}

func TestEngine_InactiveRulesAreSkipped(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()
	alwaysTrue := condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, "")

	inactive := ruleWithPriority(obl.ID, 1, model.ResultApplies, false, alwaysTrue)
	active := ruleWithPriority(obl.ID, 2, model.ResultConditional, true, alwaysTrue)

	eng := New(thresholdMap(), fy)
	outcomes := eng.Evaluate(testProfile(), []model.ObligationType{obl}, map[uuid.UUID][]model.Rule{
		obl.ID: {inactive, active},
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, model.ResultConditional, outcomes[0].Result)
}

func TestEngine_NoMatchingRuleFallsBackToDoesNotApply(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()
	alwaysFalse := condition("has_employees", model.OpIsTrue, model.ValueTypeLiteral, "")

	rule := ruleWithPriority(obl.ID, 1, model.ResultApplies, true, alwaysFalse)

	eng := New(thresholdMap(), fy)
	outcomes := eng.Evaluate(testProfile(), []model.ObligationType{obl}, map[uuid.UUID][]model.Rule{
		obl.ID: {rule},
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, model.ResultDoesNotApply, outcomes[0].Result)
	assert.Nil(t, outcomes[0].TriggeredRuleID)
}

// An obligation whose every active rule hits a configuration error is
// downgraded to needs_more_info rather than aborting the whole run.
func TestEngine_ConfigurationErrorDowngradesToNeedsMoreInfo(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()
	broken := condition("ingresos_brutos_cop", model.OpGT, model.ValueTypeThresholdRef, "undeclared_threshold")

	rule := ruleWithPriority(obl.ID, 1, model.ResultApplies, true, broken)

	other := testObligation()
	otherRule := ruleWithPriority(other.ID, 1, model.ResultApplies, true,
		condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, ""))

	eng := New(thresholdMap(), fy)
	outcomes := eng.Evaluate(testProfile(), []model.ObligationType{obl, other}, map[uuid.UUID][]model.Rule{
		obl.ID:   {rule},
		other.ID: {otherRule},
	})

	require.Len(t, outcomes, 2)
	assert.Equal(t, model.ResultNeedsMoreInfo, outcomes[0].Result, "the broken obligation is downgraded")
	assert.Equal(t, model.ResultApplies, outcomes[1].Result, "a sibling obligation's evaluation is unaffected")

	require.Len(t, outcomes[0].Trace, 1, "the failed condition is recorded even though it never resolved")
	assert.Equal(t, "undeclared_threshold", outcomes[0].Trace[0].ThresholdCode, "the missing code is diagnosable from the trace")
	assert.False(t, outcomes[0].Trace[0].Passes)
}

func TestEngine_Deterministic(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()
	rule := ruleWithPriority(obl.ID, 1, model.ResultApplies, true,
		condition("ingresos_brutos_cop", model.OpGT, model.ValueTypeThresholdRef, "vat_responsible_income"))

	profile := testProfile()
	rules := map[uuid.UUID][]model.Rule{obl.ID: {rule}}

	eng := New(thresholdMap(), fy)
	first := eng.Evaluate(profile, []model.ObligationType{obl}, rules)
	second := eng.Evaluate(profile, []model.ObligationType{obl}, rules)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Result, second[0].Result)
	assert.Equal(t, first[0].Explanation, second[0].Explanation)
	assert.Equal(t, first[0].Trace, second[0].Trace)
}

func TestEngine_TraceIncludesEveryConditionEvenWhenRuleFailsEarly(t *testing.T) {
	obl := testObligation()
	fy := testFiscalYear()

	firstRule := ruleWithPriority(obl.ID, 1, model.ResultApplies, true,
		condition("has_employees", model.OpIsTrue, model.ValueTypeLiteral, ""),
		condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, ""),
	)

	eng := New(thresholdMap(), fy)
	outcomes := eng.Evaluate(testProfile(), []model.ObligationType{obl}, map[uuid.UUID][]model.Rule{
		obl.ID: {firstRule},
	})

	require.Len(t, outcomes, 1)
	assert.Len(t, outcomes[0].Trace, 2, "trace carries both conditions though the AND rule fails")
	assert.Equal(t, model.ResultDoesNotApply, outcomes[0].Result)
}
