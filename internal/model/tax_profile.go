package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persona types.
const (
	PersonaNatural  = "natural"
	PersonaJuridica = "juridica"
)

// Tax regime constants.
const (
	RegimeSimple    = "simple"
	RegimeOrdinario = "ordinario"
	RegimeEspecial  = "especial"
)

// TaxProfile is the declared financial and legal snapshot of one taxpayer
// for one fiscal year. Every evaluation runs against exactly one profile
// and is owned by that profile's user.
type TaxProfile struct {
	ID                      uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID                uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID                  uuid.UUID        `gorm:"type:uuid;not null;index;index:idx_profile_user_fy,unique,priority:1" json:"user_id"`
	FiscalYearID            uuid.UUID        `gorm:"type:uuid;not null;index;index:idx_profile_user_fy,unique,priority:2" json:"fiscal_year_id"`
	PersonaType             string           `gorm:"type:varchar(20);not null" json:"persona_type"`
	Regime                  string           `gorm:"type:varchar(30);not null" json:"regime"`
	IsIvaResponsable        bool             `gorm:"not null;default:false" json:"is_iva_responsable"`
	IngresosBrutosCop       decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"ingresos_brutos_cop"`
	PatrimonioBrutoCop      *decimal.Decimal `gorm:"type:decimal(18,2)" json:"patrimonio_bruto_cop"`
	ConsignacionesCop       *decimal.Decimal `gorm:"type:decimal(18,2)" json:"consignaciones_cop"`
	ComprasConsumosCop      *decimal.Decimal `gorm:"type:decimal(18,2)" json:"compras_consumos_cop"`
	HasEmployees            bool             `gorm:"not null;default:false" json:"has_employees"`
	EmployeeCount           int              `gorm:"not null;default:0" json:"employee_count"`
	EconomicActivityCiiu    string           `gorm:"type:varchar(20)" json:"economic_activity_ciiu"`
	EconomicActivities      StringList       `gorm:"type:jsonb" json:"economic_activities,omitempty"`
	City                    string           `gorm:"type:varchar(100)" json:"city"`
	Department              string           `gorm:"type:varchar(100)" json:"department"`
	HasRut                  bool             `gorm:"not null;default:false" json:"has_rut"`
	HasComercioRegistration bool             `gorm:"not null;default:false" json:"has_comercio_registration"`
	NitLastDigit            *int             `json:"nit_last_digit"`
	AdditionalData          JSONMap          `gorm:"type:jsonb" json:"additional_data,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// ToSnapshot renders the profile as a plain map suitable for embedding
// verbatim in an Evaluation's immutable profile_snapshot. Decimal fields
// are kept as strings so the snapshot round-trips exactly without float
// rounding.
func (p TaxProfile) ToSnapshot() JSONMap {
	snap := JSONMap{
		"id":                        p.ID.String(),
		"persona_type":              p.PersonaType,
		"regime":                    p.Regime,
		"is_iva_responsable":        p.IsIvaResponsable,
		"ingresos_brutos_cop":       p.IngresosBrutosCop.String(),
		"has_employees":             p.HasEmployees,
		"employee_count":            p.EmployeeCount,
		"economic_activity_ciiu":    p.EconomicActivityCiiu,
		"economic_activities":       []string(p.EconomicActivities),
		"city":                      p.City,
		"department":                p.Department,
		"has_rut":                   p.HasRut,
		"has_comercio_registration": p.HasComercioRegistration,
	}
	if p.PatrimonioBrutoCop != nil {
		snap["patrimonio_bruto_cop"] = p.PatrimonioBrutoCop.String()
	}
	if p.ConsignacionesCop != nil {
		snap["consignaciones_cop"] = p.ConsignacionesCop.String()
	}
	if p.ComprasConsumosCop != nil {
		snap["compras_consumos_cop"] = p.ComprasConsumosCop.String()
	}
	if p.NitLastDigit != nil {
		snap["nit_last_digit"] = *p.NitLastDigit
	}
	for k, v := range p.AdditionalData {
		if _, exists := snap[k]; !exists {
			snap[k] = v
		}
	}
	return snap
}
