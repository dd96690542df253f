package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxengine/internal/cache"
	"taxengine/internal/model"
	"taxengine/internal/repository"
)

// CreateFiscalYearRequest is the payload for opening a new fiscal year.
type CreateFiscalYearRequest struct {
	Year     int             `json:"year" binding:"required"`
	UVTValue decimal.Decimal `json:"uvt_value" binding:"required"`
	Notes    string          `json:"notes"`
}

// UpsertThresholdRequest sets one threshold for a fiscal year.
type UpsertThresholdRequest struct {
	Code           string           `json:"code" binding:"required"`
	Label          string           `json:"label" binding:"required"`
	ValueUVT       *decimal.Decimal `json:"value_uvt"`
	ValueCOP       *decimal.Decimal `json:"value_cop"`
	Description    string           `json:"description"`
	LegalReference string           `json:"legal_reference"`
}

// CreateRuleSetRequest opens a new draft rule set for a fiscal year.
type CreateRuleSetRequest struct {
	FiscalYearID uuid.UUID `json:"fiscal_year_id" binding:"required"`
	Changelog    string    `json:"changelog"`
}

// AdminService manages fiscal years, thresholds, and rule-set lifecycle.
type AdminService interface {
	CreateFiscalYear(ctx context.Context, actorID uuid.UUID, req CreateFiscalYearRequest) (*model.FiscalYear, error)
	ListFiscalYears(ctx context.Context, page, limit int) ([]model.FiscalYear, int64, error)
	UpsertThreshold(ctx context.Context, actorID uuid.UUID, fiscalYearID string, req UpsertThresholdRequest) (*model.Threshold, error)
	ListThresholds(ctx context.Context, fiscalYearID string) ([]model.Threshold, error)
	CreateRuleSet(ctx context.Context, actorID uuid.UUID, req CreateRuleSetRequest) (*model.RuleSet, error)
	GetRuleSet(ctx context.Context, id string) (*model.RuleSet, error)
	ListRuleSets(ctx context.Context, fiscalYearID string) ([]model.RuleSet, error)
	PublishRuleSet(ctx context.Context, actorID uuid.UUID, ruleSetID string) (*model.RuleSet, error)
}

type adminService struct {
	fiscalYearRepo repository.FiscalYearRepository
	thresholdRepo  repository.ThresholdRepository
	ruleRepo       repository.RuleRepository
	auditRepo      repository.AuditRepository
	thresholdCache *cache.ThresholdCache
}

// NewAdminService wires the fiscal-year/threshold/rule-set administration
// surface.
func NewAdminService(
	fiscalYearRepo repository.FiscalYearRepository,
	thresholdRepo repository.ThresholdRepository,
	ruleRepo repository.RuleRepository,
	auditRepo repository.AuditRepository,
	thresholdCache *cache.ThresholdCache,
) AdminService {
	return &adminService{
		fiscalYearRepo: fiscalYearRepo,
		thresholdRepo:  thresholdRepo,
		ruleRepo:       ruleRepo,
		auditRepo:      auditRepo,
		thresholdCache: thresholdCache,
	}
}

func (s *adminService) CreateFiscalYear(ctx context.Context, actorID uuid.UUID, req CreateFiscalYearRequest) (*model.FiscalYear, error) {
	if existing, err := s.fiscalYearRepo.GetByYear(ctx, req.Year); err == nil && existing != nil {
		return nil, errors.New("fiscal year already exists")
	}

	fy := &model.FiscalYear{
		Year:     req.Year,
		Status:   model.FiscalYearDraft,
		UVTValue: req.UVTValue,
		Notes:    req.Notes,
	}
	if err := s.fiscalYearRepo.Create(ctx, fy); err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, actorID, model.ActionCreateFiscalYear, fy.ID.String(), fy)
	return fy, nil
}

func (s *adminService) ListFiscalYears(ctx context.Context, page, limit int) ([]model.FiscalYear, int64, error) {
	return s.fiscalYearRepo.List(ctx, page, limit)
}

func (s *adminService) UpsertThreshold(ctx context.Context, actorID uuid.UUID, fiscalYearID string, req UpsertThresholdRequest) (*model.Threshold, error) {
	fyUUID, err := uuid.Parse(fiscalYearID)
	if err != nil {
		return nil, errors.New("invalid fiscal year id")
	}

	t := &model.Threshold{
		FiscalYearID:   fyUUID,
		Code:           req.Code,
		Label:          req.Label,
		ValueUVT:       req.ValueUVT,
		ValueCOP:       req.ValueCOP,
		Description:    req.Description,
		LegalReference: req.LegalReference,
	}
	if err := s.thresholdRepo.Upsert(ctx, t); err != nil {
		return nil, err
	}

	if s.thresholdCache != nil {
		_ = s.thresholdCache.Invalidate(ctx, fiscalYearID)
	}

	s.writeAuditLog(ctx, actorID, model.ActionUpsertThreshold, t.ID.String(), t)
	return t, nil
}

func (s *adminService) ListThresholds(ctx context.Context, fiscalYearID string) ([]model.Threshold, error) {
	return s.thresholdRepo.List(ctx, fiscalYearID)
}

func (s *adminService) CreateRuleSet(ctx context.Context, actorID uuid.UUID, req CreateRuleSetRequest) (*model.RuleSet, error) {
	existing, err := s.ruleRepo.ListByFiscalYear(ctx, req.FiscalYearID.String())
	if err != nil {
		return nil, err
	}

	version := 1
	for _, rs := range existing {
		if rs.Version >= version {
			version = rs.Version + 1
		}
	}

	rs := &model.RuleSet{
		FiscalYearID: req.FiscalYearID,
		Version:      version,
		Status:       model.RuleSetStatusDraft,
		Changelog:    req.Changelog,
	}
	if err := s.ruleRepo.Create(ctx, rs); err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, actorID, model.ActionCreateRuleSet, rs.ID.String(), rs)
	return rs, nil
}

func (s *adminService) GetRuleSet(ctx context.Context, id string) (*model.RuleSet, error) {
	return s.ruleRepo.GetByID(ctx, id)
}

func (s *adminService) ListRuleSets(ctx context.Context, fiscalYearID string) ([]model.RuleSet, error) {
	return s.ruleRepo.ListByFiscalYear(ctx, fiscalYearID)
}

// PublishRuleSet promotes ruleSetID to active, atomically deprecating
// whatever rule set previously held that status for the same fiscal
// year. The invariant itself is enforced inside the repository's
// serializable transaction; this method only adds the audit trail and
// cache invalidation around it.
func (s *adminService) PublishRuleSet(ctx context.Context, actorID uuid.UUID, ruleSetID string) (*model.RuleSet, error) {
	rs, err := s.ruleRepo.Publish(ctx, ruleSetID)
	if err != nil {
		return nil, err
	}

	if s.thresholdCache != nil {
		_ = s.thresholdCache.Invalidate(ctx, rs.FiscalYearID.String())
	}

	s.writeAuditLog(ctx, actorID, model.ActionPublishRuleSet, rs.ID.String(), rs)
	return rs, nil
}

func (s *adminService) writeAuditLog(ctx context.Context, actorID uuid.UUID, action, entityID string, payload interface{}) {
	logAuditBestEffort(ctx, s.auditRepo, actorID, action, entityID, payload)
}
