package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxengine/internal/cache"
	"taxengine/internal/engine"
	"taxengine/internal/model"
	"taxengine/internal/repository"
)

// EvaluationResultView is the API-facing shape of one obligation outcome.
type EvaluationResultView struct {
	ObligationTypeID uuid.UUID              `json:"obligation_type_id"`
	ObligationCode   string                 `json:"obligation_code"`
	ObligationName   string                 `json:"obligation_name"`
	Result           string                 `json:"result"`
	TriggeredRuleID  *uuid.UUID             `json:"triggered_rule_id"`
	Explanation      string                 `json:"explanation"`
	LegalReferences  []string               `json:"legal_references"`
	ConditionTrace   []model.ConditionTrace `json:"condition_trace"`
}

// EvaluationView is the API-facing shape of a completed Evaluation.
type EvaluationView struct {
	ID             uuid.UUID              `json:"id"`
	ProfileID      uuid.UUID              `json:"profile_id"`
	FiscalYearID   uuid.UUID              `json:"fiscal_year_id"`
	RuleSetID      uuid.UUID              `json:"rule_set_id"`
	RuleSetVersion int                    `json:"rule_set_version"`
	Results        []EvaluationResultView `json:"results"`
	Summary        map[string]int         `json:"summary"`
}

// EvaluationService runs the rules engine against a declared profile and
// persists the resulting audit artifact.
type EvaluationService interface {
	Evaluate(ctx context.Context, actorID, tenantID uuid.UUID, profileID string) (*EvaluationView, error)
	Get(ctx context.Context, id string) (*EvaluationView, error)
	ListByProfile(ctx context.Context, profileID string) ([]model.Evaluation, error)
}

type evaluationService struct {
	profileRepo    repository.ProfileRepository
	fiscalYearRepo repository.FiscalYearRepository
	ruleRepo       repository.RuleRepository
	thresholdRepo  repository.ThresholdRepository
	obligationRepo repository.ObligationRepository
	evaluationRepo repository.EvaluationRepository
	calendarRepo   repository.CalendarRepository
	auditRepo      repository.AuditRepository
	thresholdCache *cache.ThresholdCache
}

// NewEvaluationService wires the evaluation orchestration path.
func NewEvaluationService(
	profileRepo repository.ProfileRepository,
	fiscalYearRepo repository.FiscalYearRepository,
	ruleRepo repository.RuleRepository,
	thresholdRepo repository.ThresholdRepository,
	obligationRepo repository.ObligationRepository,
	evaluationRepo repository.EvaluationRepository,
	calendarRepo repository.CalendarRepository,
	auditRepo repository.AuditRepository,
	thresholdCache *cache.ThresholdCache,
) EvaluationService {
	return &evaluationService{
		profileRepo:    profileRepo,
		fiscalYearRepo: fiscalYearRepo,
		ruleRepo:       ruleRepo,
		thresholdRepo:  thresholdRepo,
		obligationRepo: obligationRepo,
		evaluationRepo: evaluationRepo,
		calendarRepo:   calendarRepo,
		auditRepo:      auditRepo,
		thresholdCache: thresholdCache,
	}
}

// Evaluate loads the profile and its fiscal year's active rule set,
// resolves thresholds, runs the engine over every active obligation, and
// persists the result as an immutable Evaluation.
func (s *evaluationService) Evaluate(ctx context.Context, actorID, tenantID uuid.UUID, profileID string) (*EvaluationView, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if profile.TenantID != tenantID {
		return nil, errors.New("profile not found")
	}

	fiscalYear, err := s.fiscalYearRepo.GetByID(ctx, profile.FiscalYearID.String())
	if err != nil {
		return nil, errors.New("fiscal year not found")
	}

	ruleSet, err := s.ruleRepo.GetActive(ctx, fiscalYear.ID.String())
	if err != nil {
		return nil, engine.ErrNoActiveRuleSet
	}

	thresholds, ok := s.cachedThresholds(ctx, fiscalYear)
	if !ok {
		thresholds, err = s.thresholdRepo.GetMap(ctx, *fiscalYear)
		if err != nil {
			return nil, err
		}
		if s.thresholdCache != nil {
			_ = s.thresholdCache.Set(ctx, fiscalYear.ID.String(), thresholds)
		}
	}

	obligations, err := s.obligationRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	rulesByObligation, err := s.ruleRepo.RulesByObligation(ctx, ruleSet.ID.String())
	if err != nil {
		return nil, err
	}

	periodicities, err := s.obligationRepo.PeriodicityMap(ctx, fiscalYear.ID.String())
	if err != nil {
		return nil, err
	}

	eng := engine.New(thresholds, *fiscalYear)
	outcomes := eng.Evaluate(*profile, obligations, rulesByObligation)

	evaluation := &model.Evaluation{
		TenantID:        tenantID,
		ProfileID:       profile.ID,
		FiscalYearID:    fiscalYear.ID,
		RuleSetID:       ruleSet.ID,
		RuleSetVersion:  ruleSet.Version,
		RequestedBy:     actorID,
		ProfileSnapshot: profile.ToSnapshot(),
	}

	results := make([]model.EvaluationResult, 0, len(outcomes))
	for _, o := range outcomes {
		legalRefsJSON := make(model.JSONMap, len(o.LegalReferences))
		for i, ref := range o.LegalReferences {
			legalRefsJSON[itoa(i)] = ref
		}
		results = append(results, model.EvaluationResult{
			ObligationTypeID: o.ObligationType.ID,
			Result:           o.Result,
			TriggeredRuleID:  o.TriggeredRuleID,
			Explanation:      o.Explanation,
			LegalReferences:  legalRefsJSON,
			ConditionTrace:   model.ConditionTraceList(o.Trace),
		})
	}
	evaluation.Results = results

	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		return nil, err
	}

	s.materializeCalendar(ctx, tenantID, *profile, *fiscalYear, outcomes, evaluation, periodicities)

	s.writeAuditLog(ctx, actorID, model.ActionCreateEvaluation, evaluation.ID.String(), evaluation.Summary())

	return toEvaluationView(evaluation, outcomes), nil
}

func (s *evaluationService) Get(ctx context.Context, id string) (*EvaluationView, error) {
	e, err := s.evaluationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEvaluationViewFromModel(e), nil
}

func (s *evaluationService) ListByProfile(ctx context.Context, profileID string) ([]model.Evaluation, error) {
	return s.evaluationRepo.ListByProfile(ctx, profileID)
}

func (s *evaluationService) cachedThresholds(ctx context.Context, fy *model.FiscalYear) (map[string]decimal.Decimal, bool) {
	if s.thresholdCache == nil {
		return nil, false
	}
	return s.thresholdCache.Get(ctx, fy.ID.String())
}

func (s *evaluationService) materializeCalendar(ctx context.Context, tenantID uuid.UUID, profile model.TaxProfile, fiscalYear model.FiscalYear, outcomes []engine.ObligationOutcome, evaluation *model.Evaluation, periodicities map[string]model.ObligationPeriodicity) {
	for i, o := range outcomes {
		if o.Result != model.ResultApplies && o.Result != model.ResultConditional {
			continue
		}
		entry := &model.CalendarEntry{
			TenantID:         tenantID,
			ProfileID:        profile.ID,
			EvaluationID:     evaluation.ID,
			ObligationTypeID: o.ObligationType.ID,
			FiscalYearID:     fiscalYear.ID,
			Status:           model.CalendarEntryPending,
		}
		if i < len(evaluation.Results) {
			entry.EvaluationResultID = evaluation.Results[i].ID
		}
		if p, ok := periodicities[o.ObligationType.ID.String()]; ok {
			entry.Frequency = p.Frequency
			digit := -1
			if profile.NitLastDigit != nil {
				digit = *profile.NitLastDigit
			}
			if due, ok := p.DueDateForDigit(digit); ok {
				if t, err := parseDueDate(due, fiscalYear.Year); err == nil {
					entry.DueDate = &t
				}
			}
		}
		if err := s.calendarRepo.Create(ctx, entry); err == nil {
			s.writeAuditLog(ctx, evaluation.RequestedBy, model.ActionMaterializeCalendar, entry.ID.String(), entry)
		}
	}
}

func (s *evaluationService) writeAuditLog(ctx context.Context, actorID uuid.UUID, action, entityID string, payload interface{}) {
	logAuditBestEffort(ctx, s.auditRepo, actorID, action, entityID, payload)
}

func toEvaluationView(e *model.Evaluation, outcomes []engine.ObligationOutcome) *EvaluationView {
	results := make([]EvaluationResultView, 0, len(outcomes))
	for i, o := range outcomes {
		var triggeredRuleID *uuid.UUID
		var trace []model.ConditionTrace
		if i < len(e.Results) {
			triggeredRuleID = e.Results[i].TriggeredRuleID
			trace = e.Results[i].ConditionTrace
		}
		results = append(results, EvaluationResultView{
			ObligationTypeID: o.ObligationType.ID,
			ObligationCode:   o.ObligationType.Code,
			ObligationName:   o.ObligationType.Name,
			Result:           o.Result,
			TriggeredRuleID:  triggeredRuleID,
			Explanation:      o.Explanation,
			LegalReferences:  o.LegalReferences,
			ConditionTrace:   trace,
		})
	}

	return &EvaluationView{
		ID:             e.ID,
		ProfileID:      e.ProfileID,
		FiscalYearID:   e.FiscalYearID,
		RuleSetID:      e.RuleSetID,
		RuleSetVersion: e.RuleSetVersion,
		Results:        results,
		Summary:        e.Summary(),
	}
}

func toEvaluationViewFromModel(e *model.Evaluation) *EvaluationView {
	results := make([]EvaluationResultView, 0, len(e.Results))
	for _, r := range e.Results {
		var refs []string
		for _, v := range r.LegalReferences {
			if s, ok := v.(string); ok {
				refs = append(refs, s)
			}
		}
		results = append(results, EvaluationResultView{
			ObligationTypeID: r.ObligationTypeID,
			Result:           r.Result,
			TriggeredRuleID:  r.TriggeredRuleID,
			Explanation:      r.Explanation,
			LegalReferences:  refs,
			ConditionTrace:   r.ConditionTrace,
		})
	}

	return &EvaluationView{
		ID:             e.ID,
		ProfileID:      e.ProfileID,
		FiscalYearID:   e.FiscalYearID,
		RuleSetID:      e.RuleSetID,
		RuleSetVersion: e.RuleSetVersion,
		Results:        results,
		Summary:        e.Summary(),
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// parseDueDate interprets a schedule entry of the form "MM-DD" against
// year, the fiscal year under evaluation.
func parseDueDate(value string, year int) (time.Time, error) {
	return time.Parse("2006-01-02", strconv.Itoa(year)+"-"+value)
}
