package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxengine/internal/model"
)

func thresholdMap() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		model.ReservedUVTCode:    decimal.NewFromInt(47065),
		"vat_responsible_income": decimal.NewFromInt(4420000000),
	}
}

func TestThresholdResolver_Literal(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())
	v, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeLiteral, Value: "regimen_simple"})
	require.NoError(t, err)
	assert.Equal(t, "regimen_simple", v)
}

func TestThresholdResolver_ThresholdRef(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())
	v, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeThresholdRef, Value: "vat_responsible_income"})
	require.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.NewFromInt(4420000000)))
}

// A threshold_ref code absent from the fiscal year's map is a configuration
// error, never a silent zero or panic.
func TestThresholdResolver_ThresholdRefMissing(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())
	_, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeThresholdRef, Value: "does_not_exist"})
	require.Error(t, err)
	var missing *ThresholdMissingError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "does_not_exist", missing.Code)
	assert.True(t, IsConfigurationError(err))
}

func TestThresholdResolver_UVTExpr(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())
	v, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeUVTExpr, Value: "3500"})
	require.NoError(t, err)
	want := decimal.NewFromInt(3500).Mul(decimal.NewFromInt(47065))
	assert.True(t, v.(decimal.Decimal).Equal(want))
}

func TestThresholdResolver_UVTExprMissingUVTValue(t *testing.T) {
	r := NewThresholdResolver(map[string]decimal.Decimal{})
	_, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeUVTExpr, Value: "3500"})
	require.Error(t, err)
	var missing *UvtMissingError
	assert.ErrorAs(t, err, &missing)
	assert.True(t, IsConfigurationError(err))
}

func TestThresholdResolver_UVTExprInvalidMultiplier(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())
	_, err := r.Resolve(model.RuleCondition{ValueType: model.ValueTypeUVTExpr, Value: "not-a-number"})
	require.Error(t, err)
	var invalid *InvalidUvtExprError
	assert.ErrorAs(t, err, &invalid)
	assert.True(t, IsConfigurationError(err))
}

func TestThresholdResolver_ResolveSecondary(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())

	v, err := r.ResolveSecondary(model.RuleCondition{ValueSecondary: nil})
	require.NoError(t, err)
	assert.Nil(t, v)

	high := "100"
	v, err = r.ResolveSecondary(model.RuleCondition{ValueType: model.ValueTypeLiteral, ValueSecondary: &high})
	require.NoError(t, err)
	assert.Equal(t, "100", v)
}

// A between condition's upper bound must resolve through the threshold map
// the same way the primary value does, not pass through as a raw literal.
func TestThresholdResolver_ResolveSecondaryThresholdRef(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())

	code := "vat_responsible_income"
	v, err := r.ResolveSecondary(model.RuleCondition{ValueType: model.ValueTypeThresholdRef, ValueSecondary: &code})
	require.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.NewFromInt(4420000000)))
}

func TestThresholdResolver_ResolveSecondaryUVTExpr(t *testing.T) {
	r := NewThresholdResolver(thresholdMap())

	multiplier := "3500"
	v, err := r.ResolveSecondary(model.RuleCondition{ValueType: model.ValueTypeUVTExpr, ValueSecondary: &multiplier})
	require.NoError(t, err)
	want := decimal.NewFromInt(3500).Mul(decimal.NewFromInt(47065))
	assert.True(t, v.(decimal.Decimal).Equal(want))
}
