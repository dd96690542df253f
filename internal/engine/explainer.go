package engine

import (
	"fmt"
	"strconv"
	"strings"

	"taxengine/internal/model"
)

// explanationTemplates maps "{obligation_code}_{result}" to a Spanish
// template; "generic_{result}" is the fallback when no obligation-specific
// template is registered. Ported from the original engine's Spanish copy.
var explanationTemplates = map[string]string{
	"generic_applies":        "Para el año fiscal {fiscal_year}, la obligación \"{obligation_name}\" aplica. {reason} {legal_note}",
	"generic_does_not_apply": "Para el año fiscal {fiscal_year}, la obligación \"{obligation_name}\" no aplica según la información declarada. {legal_note}",
	"generic_conditional":    "Para el año fiscal {fiscal_year}, la obligación \"{obligation_name}\" aplica de forma condicional. {reason} {legal_note}",
	"generic_needs_more_info": "No fue posible determinar si la obligación \"{obligation_name}\" aplica para el año fiscal {fiscal_year}: falta información de configuración (umbral o UVT) necesaria para evaluarla. {legal_note}",
}

// ExplanationBuilder renders the Spanish, legally-cited explanation for
// one obligation outcome.
type ExplanationBuilder struct {
	fiscalYear model.FiscalYear
}

// NewExplanationBuilder binds an ExplanationBuilder to the fiscal year
// being evaluated, whose year number is interpolated into every template.
func NewExplanationBuilder(fiscalYear model.FiscalYear) *ExplanationBuilder {
	return &ExplanationBuilder{fiscalYear: fiscalYear}
}

// Build renders the explanation for obl's result. triggeredRule and
// conditions are nil/empty for does_not_apply and needs_more_info.
func (b *ExplanationBuilder) Build(obl model.ObligationType, result string, triggeredRule *model.Rule, conditions []ConditionResult) string {
	template, ok := explanationTemplates[obl.Code+"_"+result]
	if !ok {
		template, ok = explanationTemplates["generic_"+result]
	}
	if !ok {
		template = explanationTemplates["generic_does_not_apply"]
	}

	reason := b.buildReason(conditions)
	legalNote := b.legalNote(obl)

	out := template
	out = strings.ReplaceAll(out, "{fiscal_year}", strconv.Itoa(b.fiscalYear.Year))
	out = strings.ReplaceAll(out, "{obligation_name}", obl.Name)
	out = strings.ReplaceAll(out, "{reason}", reason)
	out = strings.ReplaceAll(out, "{legal_note}", legalNote)
	return strings.TrimSpace(collapseSpaces(out))
}

// buildReason synthesizes a human-readable justification from the
// conditions that passed, grouped loosely by operator family. Fields are
// presented with underscores replaced by spaces.
func (b *ExplanationBuilder) buildReason(conditions []ConditionResult) string {
	var parts []string
	for _, c := range conditions {
		if !c.Passes {
			continue
		}
		field := strings.ReplaceAll(c.Condition.Field, "_", " ")
		switch c.Condition.Operator {
		case model.OpGT, model.OpGTE:
			parts = append(parts, fmt.Sprintf("su %s (%s) supera el tope de %s", field, formatCOP(c.ProfileValue), formatCOP(c.ThresholdValue)))
		case model.OpLT, model.OpLTE:
			parts = append(parts, fmt.Sprintf("su %s (%s) está por debajo del tope de %s", field, formatCOP(c.ProfileValue), formatCOP(c.ThresholdValue)))
		case model.OpEQ:
			parts = append(parts, fmt.Sprintf("su %s es %v", field, c.ProfileValue))
		case model.OpIsTrue:
			parts = append(parts, fmt.Sprintf("cumple con %s", field))
		case model.OpIsFalse:
			parts = append(parts, fmt.Sprintf("no cumple con %s", field))
		default:
			if c.Condition.Description != "" {
				parts = append(parts, c.Condition.Description)
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + "."
}

func (b *ExplanationBuilder) legalNote(obl model.ObligationType) string {
	refs := obl.LegalReferences()
	if len(refs) == 0 {
		return ""
	}
	return "Referencia legal: " + strings.Join(refs, "; ") + "."
}

// formatCOP renders a decimal/string value as a thousands-separated COP
// amount, e.g. "$1,234,567 COP". Non-numeric values are passed through.
func formatCOP(v interface{}) string {
	s := renderValue(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	if dot := strings.Index(s, "."); dot >= 0 {
		intPart = s[:dot]
	}
	if intPart == "" || !isAllDigits(intPart) {
		return s
	}
	grouped := groupThousands(intPart)
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s COP", sign, grouped)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if n > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < n; i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < n {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
