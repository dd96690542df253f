package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taxengine/internal/model"
)

func TestExplanationBuilder_GenericTemplatesInterpolateYearAndName(t *testing.T) {
	fy := testFiscalYear()
	b := NewExplanationBuilder(fy)
	obl := model.ObligationType{Code: "unregistered_code", Name: "Declaración de renta"}

	out := b.Build(obl, model.ResultDoesNotApply, nil, nil)

	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "Declaración de renta")
	assert.Contains(t, out, "no aplica")
}

func TestExplanationBuilder_ObligationSpecificTemplateTakesPrecedence(t *testing.T) {
	fy := testFiscalYear()
	b := NewExplanationBuilder(fy)
	explanationTemplates["renta_applies"] = "Plantilla específica para {obligation_name} en {fiscal_year}."
	defer delete(explanationTemplates, "renta_applies")

	obl := model.ObligationType{Code: "renta", Name: "Declaración de renta"}
	out := b.Build(obl, model.ResultApplies, nil, nil)

	assert.Contains(t, out, "Plantilla específica")
}

func TestExplanationBuilder_LegalNoteListsCitations(t *testing.T) {
	fy := testFiscalYear()
	b := NewExplanationBuilder(fy)
	obl := model.ObligationType{
		Code:      "renta",
		Name:      "Declaración de renta",
		LegalBase: "Estatuto Tributario Art. 591; Decreto 1625 de 2016",
	}

	out := b.Build(obl, model.ResultDoesNotApply, nil, nil)

	assert.Contains(t, out, "Estatuto Tributario Art. 591")
	assert.Contains(t, out, "Decreto 1625 de 2016")
}

func TestExplanationBuilder_ReasonCitesPassedConditions(t *testing.T) {
	fy := testFiscalYear()
	b := NewExplanationBuilder(fy)
	obl := model.ObligationType{Code: "renta", Name: "Declaración de renta"}

	conditions := []ConditionResult{
		{
			Condition:      model.RuleCondition{Field: "ingresos_brutos_cop", Operator: model.OpGT},
			ProfileValue:   "5000000000",
			ThresholdValue: "4420000000",
			Passes:         true,
		},
		{
			Condition: model.RuleCondition{Field: "has_employees", Operator: model.OpIsTrue},
			Passes:    false,
		},
	}

	out := b.Build(obl, model.ResultApplies, nil, conditions)

	assert.Contains(t, out, "ingresos brutos cop", "field names render with underscores replaced by spaces")
	assert.Contains(t, out, "5,000,000,000", "the profile value is cited alongside the threshold")
	assert.Contains(t, out, "4,420,000,000")
	assert.NotContains(t, out, "has_employees", "a failing condition must not be cited as a reason")
}

func TestFormatCOP_GroupsThousands(t *testing.T) {
	assert.Equal(t, "$1,234,567 COP", formatCOP("1234567"))
	assert.Equal(t, "$500 COP", formatCOP("500"))
	assert.Equal(t, "-$1,000 COP", formatCOP("-1000"))
}

func TestFormatCOP_NonNumericPassesThrough(t *testing.T) {
	assert.Equal(t, "regimen_simple", formatCOP("regimen_simple"))
}

func TestExplanationBuilder_UnknownResultFallsBackToDoesNotApply(t *testing.T) {
	fy := testFiscalYear()
	b := NewExplanationBuilder(fy)
	obl := model.ObligationType{Code: "renta", Name: "Declaración de renta"}

	out := b.Build(obl, "some_unregistered_result", nil, nil)
	assert.Contains(t, out, "no aplica")
}
