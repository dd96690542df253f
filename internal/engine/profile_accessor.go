package engine

import "taxengine/internal/model"

// FieldValue resolves a named field off a tax profile, checking the
// typed columns first and falling back to AdditionalData. A field that
// is neither a known column nor present in AdditionalData returns
// (nil, false) — the caller (the operator library) treats that as a
// coercion failure, never as an error.
func FieldValue(profile model.TaxProfile, field string) (interface{}, bool) {
	switch field {
	case "persona_type":
		return profile.PersonaType, true
	case "regime":
		return profile.Regime, true
	case "is_iva_responsable":
		return profile.IsIvaResponsable, true
	case "ingresos_brutos_cop":
		return profile.IngresosBrutosCop, true
	case "patrimonio_bruto_cop":
		if profile.PatrimonioBrutoCop == nil {
			return nil, false
		}
		return *profile.PatrimonioBrutoCop, true
	case "consignaciones_cop":
		if profile.ConsignacionesCop == nil {
			return nil, false
		}
		return *profile.ConsignacionesCop, true
	case "compras_consumos_cop":
		if profile.ComprasConsumosCop == nil {
			return nil, false
		}
		return *profile.ComprasConsumosCop, true
	case "has_employees":
		return profile.HasEmployees, true
	case "employee_count":
		return profile.EmployeeCount, true
	case "economic_activity_ciiu":
		return profile.EconomicActivityCiiu, true
	case "economic_activities":
		return []string(profile.EconomicActivities), true
	case "city":
		return profile.City, true
	case "department":
		return profile.Department, true
	case "has_rut":
		return profile.HasRut, true
	case "has_comercio_registration":
		return profile.HasComercioRegistration, true
	case "nit_last_digit":
		if profile.NitLastDigit == nil {
			return nil, false
		}
		return *profile.NitLastDigit, true
	default:
		v, ok := profile.AdditionalData[field]
		return v, ok
	}
}
