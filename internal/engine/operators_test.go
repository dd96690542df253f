package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyOperator_Comparisons(t *testing.T) {
	assert.True(t, applyOperator("gt", decimal.NewFromInt(100), decimal.NewFromInt(50), nil))
	assert.False(t, applyOperator("gt", decimal.NewFromInt(50), decimal.NewFromInt(50), nil))
	assert.True(t, applyOperator("gte", decimal.NewFromInt(50), decimal.NewFromInt(50), nil))
	assert.True(t, applyOperator("lt", decimal.NewFromInt(10), decimal.NewFromInt(50), nil))
	assert.True(t, applyOperator("lte", decimal.NewFromInt(50), decimal.NewFromInt(50), nil))
}

// Boundary values must satisfy gte/lte (inclusive) but not gt/lt.
func TestApplyOperator_BoundaryInclusivity(t *testing.T) {
	threshold := decimal.NewFromInt(95000000)
	assert.False(t, applyOperator("gt", threshold, threshold, nil))
	assert.True(t, applyOperator("gte", threshold, threshold, nil))
	assert.False(t, applyOperator("lt", threshold, threshold, nil))
	assert.True(t, applyOperator("lte", threshold, threshold, nil))
}

func TestApplyOperator_EqNeqAreNegations(t *testing.T) {
	cases := []struct {
		a, b interface{}
	}{
		{"regimen_simple", "regimen_simple"},
		{"regimen_simple", "regimen_comun"},
		{decimal.NewFromInt(10), decimal.NewFromInt(10)},
		{decimal.NewFromInt(10), decimal.NewFromInt(20)},
		{true, true},
		{true, false},
	}
	for _, c := range cases {
		eq := applyOperator("eq", c.a, c.b, nil)
		neq := applyOperator("neq", c.a, c.b, nil)
		assert.NotEqual(t, eq, neq, "eq and neq must be exact negations for %v vs %v", c.a, c.b)
	}
}

func TestApplyOperator_EqIsCaseInsensitiveOnStrings(t *testing.T) {
	assert.True(t, applyOperator("eq", "Regimen_Simple", "regimen_simple", nil))
}

func TestApplyOperator_InNotInAreNegations(t *testing.T) {
	list := "[regimen_simple, regimen_comun]"
	assert.True(t, applyOperator("in", "regimen_simple", list, nil))
	assert.False(t, applyOperator("not_in", "regimen_simple", list, nil))

	assert.False(t, applyOperator("in", "regimen_especial", list, nil))
	assert.True(t, applyOperator("not_in", "regimen_especial", list, nil))
}

func TestApplyOperator_InAcceptsPlainCommaList(t *testing.T) {
	assert.True(t, applyOperator("in", "bogota", "bogota,medellin,cali", nil))
}

func TestApplyOperator_Between(t *testing.T) {
	assert.True(t, applyOperator("between", decimal.NewFromInt(50), decimal.NewFromInt(0), decimal.NewFromInt(100)))
	assert.True(t, applyOperator("between", decimal.NewFromInt(0), decimal.NewFromInt(0), decimal.NewFromInt(100)))
	assert.True(t, applyOperator("between", decimal.NewFromInt(100), decimal.NewFromInt(0), decimal.NewFromInt(100)))
	assert.False(t, applyOperator("between", decimal.NewFromInt(101), decimal.NewFromInt(0), decimal.NewFromInt(100)))
}

func TestApplyOperator_IsTrueIsFalse(t *testing.T) {
	assert.True(t, applyOperator("is_true", true, nil, nil))
	assert.False(t, applyOperator("is_true", false, nil, nil))
	assert.True(t, applyOperator("is_false", false, nil, nil))
	assert.False(t, applyOperator("is_false", true, nil, nil))
	assert.True(t, applyOperator("is_true", "yes", nil, nil))
	assert.True(t, applyOperator("is_true", "1", nil, nil))
	assert.False(t, applyOperator("is_true", "si", nil, nil), "si is not in the truthy token set")
}

// A profile value that cannot be coerced into the operator's expected type
// must compare false, never error or panic.
func TestApplyOperator_CoercionFailureIsFalseNotError(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.False(t, applyOperator("gt", "not-a-number", decimal.NewFromInt(10), nil))
		assert.False(t, applyOperator("is_true", "not-a-bool-token", nil, nil))
		assert.False(t, applyOperator("between", "not-a-number", decimal.Zero, decimal.NewFromInt(10)))
	})
}

func TestApplyOperator_NilProfileValueIsFalse(t *testing.T) {
	assert.False(t, applyOperator("gt", nil, decimal.NewFromInt(10), nil))
	assert.False(t, applyOperator("eq", nil, "x", nil))
}

func TestApplyOperator_UnknownOperatorPanics(t *testing.T) {
	assert.Panics(t, func() {
		applyOperator("unknown_op", decimal.Zero, decimal.Zero, nil)
	})
}
