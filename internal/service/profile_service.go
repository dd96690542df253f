package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

// CreateProfileRequest declares one taxpayer's financial/legal profile
// for a fiscal year.
type CreateProfileRequest struct {
	FiscalYearID            uuid.UUID        `json:"fiscal_year_id" binding:"required"`
	PersonaType             string           `json:"persona_type" binding:"required"`
	Regime                  string           `json:"regime" binding:"required"`
	IsIvaResponsable        bool             `json:"is_iva_responsable"`
	IngresosBrutosCop       decimal.Decimal  `json:"ingresos_brutos_cop"`
	PatrimonioBrutoCop      *decimal.Decimal `json:"patrimonio_bruto_cop"`
	ConsignacionesCop       *decimal.Decimal `json:"consignaciones_cop"`
	ComprasConsumosCop      *decimal.Decimal `json:"compras_consumos_cop"`
	HasEmployees            bool             `json:"has_employees"`
	EmployeeCount           int              `json:"employee_count"`
	EconomicActivityCiiu    string           `json:"economic_activity_ciiu"`
	EconomicActivities      []string         `json:"economic_activities"`
	City                    string           `json:"city"`
	Department              string           `json:"department"`
	HasRut                  bool             `json:"has_rut"`
	HasComercioRegistration bool             `json:"has_comercio_registration"`
	NitLastDigit            *int             `json:"nit_last_digit"`
	AdditionalData          model.JSONMap    `json:"additional_data"`
}

// UpdateProfileRequest mirrors CreateProfileRequest for full replacement
// updates; a profile's fiscal year is immutable once declared.
type UpdateProfileRequest struct {
	PersonaType             string           `json:"persona_type" binding:"required"`
	Regime                  string           `json:"regime" binding:"required"`
	IsIvaResponsable        bool             `json:"is_iva_responsable"`
	IngresosBrutosCop       decimal.Decimal  `json:"ingresos_brutos_cop"`
	PatrimonioBrutoCop      *decimal.Decimal `json:"patrimonio_bruto_cop"`
	ConsignacionesCop       *decimal.Decimal `json:"consignaciones_cop"`
	ComprasConsumosCop      *decimal.Decimal `json:"compras_consumos_cop"`
	HasEmployees            bool             `json:"has_employees"`
	EmployeeCount           int              `json:"employee_count"`
	EconomicActivityCiiu    string           `json:"economic_activity_ciiu"`
	EconomicActivities      []string         `json:"economic_activities"`
	City                    string           `json:"city"`
	Department              string           `json:"department"`
	HasRut                  bool             `json:"has_rut"`
	HasComercioRegistration bool             `json:"has_comercio_registration"`
	NitLastDigit            *int             `json:"nit_last_digit"`
	AdditionalData          model.JSONMap    `json:"additional_data"`
}

// ProfileService manages taxpayer profile CRUD.
type ProfileService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProfileRequest) (*model.TaxProfile, error)
	Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateProfileRequest) (*model.TaxProfile, error)
	Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.TaxProfile, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]model.TaxProfile, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	auditRepo repository.AuditRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(repo repository.ProfileRepository, auditRepo repository.AuditRepository) ProfileService {
	return &profileService{repo: repo, auditRepo: auditRepo}
}

func (s *profileService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProfileRequest) (*model.TaxProfile, error) {
	profile := &model.TaxProfile{
		TenantID:                tenantID,
		UserID:                  userID,
		FiscalYearID:            req.FiscalYearID,
		PersonaType:             req.PersonaType,
		Regime:                  req.Regime,
		IsIvaResponsable:        req.IsIvaResponsable,
		IngresosBrutosCop:       req.IngresosBrutosCop,
		PatrimonioBrutoCop:      req.PatrimonioBrutoCop,
		ConsignacionesCop:       req.ConsignacionesCop,
		ComprasConsumosCop:      req.ComprasConsumosCop,
		HasEmployees:            req.HasEmployees,
		EmployeeCount:           req.EmployeeCount,
		EconomicActivityCiiu:    req.EconomicActivityCiiu,
		EconomicActivities:      model.StringList(req.EconomicActivities),
		City:                    req.City,
		Department:              req.Department,
		HasRut:                  req.HasRut,
		HasComercioRegistration: req.HasComercioRegistration,
		NitLastDigit:            req.NitLastDigit,
		AdditionalData:          req.AdditionalData,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	logAuditBestEffort(ctx, s.auditRepo, userID, model.ActionCreateProfile, profile.ID.String(), profile)
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateProfileRequest) (*model.TaxProfile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if profile.TenantID != tenantID {
		return nil, errors.New("profile not found")
	}

	profile.PersonaType = req.PersonaType
	profile.Regime = req.Regime
	profile.IsIvaResponsable = req.IsIvaResponsable
	profile.IngresosBrutosCop = req.IngresosBrutosCop
	profile.PatrimonioBrutoCop = req.PatrimonioBrutoCop
	profile.ConsignacionesCop = req.ConsignacionesCop
	profile.ComprasConsumosCop = req.ComprasConsumosCop
	profile.HasEmployees = req.HasEmployees
	profile.EmployeeCount = req.EmployeeCount
	profile.EconomicActivityCiiu = req.EconomicActivityCiiu
	profile.EconomicActivities = model.StringList(req.EconomicActivities)
	profile.City = req.City
	profile.Department = req.Department
	profile.HasRut = req.HasRut
	profile.HasComercioRegistration = req.HasComercioRegistration
	profile.NitLastDigit = req.NitLastDigit
	profile.AdditionalData = req.AdditionalData

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	logAuditBestEffort(ctx, s.auditRepo, profile.UserID, model.ActionUpdateProfile, profile.ID.String(), profile)
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.TaxProfile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if profile.TenantID != tenantID {
		return nil, errors.New("profile not found")
	}
	return profile, nil
}

func (s *profileService) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]model.TaxProfile, error) {
	return s.repo.ListByUser(ctx, tenantID.String(), userID.String())
}
