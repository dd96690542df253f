package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxengine/internal/model"
)

func testProfile() model.TaxProfile {
	digit := 6
	return model.TaxProfile{
		ID:                uuid.New(),
		NitLastDigit:      &digit,
		Regime:            model.RegimeOrdinario,
		IngresosBrutosCop: decimal.NewFromInt(5000000000),
		IsIvaResponsable:  true,
		HasEmployees:      false,
	}
}

func condition(field, operator, valueType, value string) model.RuleCondition {
	return model.RuleCondition{
		Field:     field,
		Operator:  operator,
		ValueType: valueType,
		Value:     value,
	}
}

func TestRuleEvaluator_AndRequiresEveryCondition(t *testing.T) {
	resolver := NewThresholdResolver(thresholdMap())
	eval := NewRuleEvaluator(resolver)

	rule := model.Rule{
		LogicOperator: model.LogicAnd,
		Conditions: []model.RuleCondition{
			condition("has_employees", model.OpIsTrue, model.ValueTypeLiteral, ""),
			condition("ingresos_brutos_cop", model.OpGT, model.ValueTypeThresholdRef, "vat_responsible_income"),
			condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, ""),
		},
	}

	result, err := eval.EvaluateRule(rule, testProfile())
	require.NoError(t, err)
	assert.False(t, result.Passes, "one failing AND clause must fail the whole rule")
	assert.Len(t, result.Conditions, 3, "every condition is recorded, not short-circuited")
}

func TestRuleEvaluator_OrPassesOnAnyCondition(t *testing.T) {
	resolver := NewThresholdResolver(thresholdMap())
	eval := NewRuleEvaluator(resolver)

	rule := model.Rule{
		LogicOperator: model.LogicOr,
		Conditions: []model.RuleCondition{
			condition("is_iva_responsable", model.OpIsTrue, model.ValueTypeLiteral, ""),
			condition("has_employees", model.OpIsTrue, model.ValueTypeLiteral, ""),
		},
	}

	result, err := eval.EvaluateRule(rule, testProfile())
	require.NoError(t, err)
	assert.True(t, result.Passes)
	assert.Len(t, result.Conditions, 2, "every condition is still evaluated under OR")
}

func TestRuleEvaluator_NoConditionsNeverPasses(t *testing.T) {
	resolver := NewThresholdResolver(thresholdMap())
	eval := NewRuleEvaluator(resolver)

	andRule := model.Rule{LogicOperator: model.LogicAnd}
	result, err := eval.EvaluateRule(andRule, testProfile())
	require.NoError(t, err)
	assert.False(t, result.Passes)

	orRule := model.Rule{LogicOperator: model.LogicOr}
	result, err = eval.EvaluateRule(orRule, testProfile())
	require.NoError(t, err)
	assert.False(t, result.Passes)
}

// A missing threshold_ref aborts this rule's evaluation with a typed
// configuration error rather than silently treating the condition as false.
func TestRuleEvaluator_MissingThresholdAbortsRule(t *testing.T) {
	resolver := NewThresholdResolver(thresholdMap())
	eval := NewRuleEvaluator(resolver)

	rule := model.Rule{
		LogicOperator: model.LogicAnd,
		Conditions: []model.RuleCondition{
			condition("ingresos_brutos_cop", model.OpGT, model.ValueTypeThresholdRef, "undeclared_threshold"),
		},
	}

	_, err := eval.EvaluateRule(rule, testProfile())
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestRuleEvaluator_BetweenUsesSecondaryBound(t *testing.T) {
	resolver := NewThresholdResolver(thresholdMap())
	eval := NewRuleEvaluator(resolver)

	high := "10000000"
	rule := model.Rule{
		LogicOperator: model.LogicAnd,
		Conditions: []model.RuleCondition{
			{
				Field:          "compras_consumos_cop",
				Operator:       model.OpBetween,
				ValueType:      model.ValueTypeLiteral,
				Value:          "0",
				ValueSecondary: &high,
			},
		},
	}

	profile := testProfile()
	consumos := decimal.NewFromInt(5000000)
	profile.ComprasConsumosCop = &consumos

	result, err := eval.EvaluateRule(rule, profile)
	require.NoError(t, err)
	assert.True(t, result.Passes)
}
