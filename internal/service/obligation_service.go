package service

import (
	"context"

	"github.com/google/uuid"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

// CreateObligationRequest registers a statutory obligation in the catalog.
type CreateObligationRequest struct {
	Code              string `json:"code" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required"`
	Description       string `json:"description"`
	ResponsibleEntity string `json:"responsible_entity"`
	LegalBase         string `json:"legal_base"`
	DisplayOrder      int    `json:"display_order"`
}

// UpdateObligationRequest mirrors CreateObligationRequest plus the
// activation flag, since deactivating an obligation (rather than
// deleting it) is how the catalog retires one without breaking history.
type UpdateObligationRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required"`
	Description       string `json:"description"`
	ResponsibleEntity string `json:"responsible_entity"`
	LegalBase         string `json:"legal_base"`
	IsActive          bool   `json:"is_active"`
	DisplayOrder      int    `json:"display_order"`
}

// UpsertPeriodicityRequest sets one obligation's recurrence and NIT
// schedule for a fiscal year.
type UpsertPeriodicityRequest struct {
	FiscalYearID uuid.UUID     `json:"fiscal_year_id" binding:"required"`
	Frequency    string        `json:"frequency" binding:"required"`
	NitSchedule  model.JSONMap `json:"nit_schedule"`
}

// ObligationService manages the obligation-type catalog and its
// per-fiscal-year periodicity schedules.
type ObligationService interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateObligationRequest) (*model.ObligationType, error)
	Update(ctx context.Context, actorID uuid.UUID, id string, req UpdateObligationRequest) (*model.ObligationType, error)
	Get(ctx context.Context, id string) (*model.ObligationType, error)
	List(ctx context.Context) ([]model.ObligationType, error)
	ListActive(ctx context.Context) ([]model.ObligationType, error)
	UpsertPeriodicity(ctx context.Context, actorID uuid.UUID, obligationTypeID string, req UpsertPeriodicityRequest) (*model.ObligationPeriodicity, error)
}

type obligationService struct {
	repo      repository.ObligationRepository
	auditRepo repository.AuditRepository
}

// NewObligationService returns a new ObligationService.
func NewObligationService(repo repository.ObligationRepository, auditRepo repository.AuditRepository) ObligationService {
	return &obligationService{repo: repo, auditRepo: auditRepo}
}

func (s *obligationService) Create(ctx context.Context, actorID uuid.UUID, req CreateObligationRequest) (*model.ObligationType, error) {
	o := &model.ObligationType{
		Code:              req.Code,
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		ResponsibleEntity: req.ResponsibleEntity,
		LegalBase:         req.LegalBase,
		IsActive:          true,
		DisplayOrder:      req.DisplayOrder,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	logAuditBestEffort(ctx, s.auditRepo, actorID, model.ActionCreateObligation, o.ID.String(), o)
	return o, nil
}

func (s *obligationService) Update(ctx context.Context, actorID uuid.UUID, id string, req UpdateObligationRequest) (*model.ObligationType, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Name = req.Name
	o.Category = req.Category
	o.Description = req.Description
	o.ResponsibleEntity = req.ResponsibleEntity
	o.LegalBase = req.LegalBase
	o.IsActive = req.IsActive
	o.DisplayOrder = req.DisplayOrder

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	logAuditBestEffort(ctx, s.auditRepo, actorID, model.ActionUpdateObligation, o.ID.String(), o)
	return o, nil
}

func (s *obligationService) Get(ctx context.Context, id string) (*model.ObligationType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *obligationService) List(ctx context.Context) ([]model.ObligationType, error) {
	return s.repo.List(ctx)
}

func (s *obligationService) ListActive(ctx context.Context) ([]model.ObligationType, error) {
	return s.repo.ListActive(ctx)
}

func (s *obligationService) UpsertPeriodicity(ctx context.Context, actorID uuid.UUID, obligationTypeID string, req UpsertPeriodicityRequest) (*model.ObligationPeriodicity, error) {
	oblUUID, err := uuid.Parse(obligationTypeID)
	if err != nil {
		return nil, err
	}

	p := &model.ObligationPeriodicity{
		ObligationTypeID: oblUUID,
		FiscalYearID:     req.FiscalYearID,
		Frequency:        req.Frequency,
		NitScheduleJSON:  req.NitSchedule,
	}
	if err := s.repo.UpsertPeriodicity(ctx, p); err != nil {
		return nil, err
	}

	logAuditBestEffort(ctx, s.auditRepo, actorID, model.ActionUpdateObligation, p.ID.String(), p)
	return p, nil
}
