package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taxengine/internal/model"
)

// RuleRepository manages RuleSet/Rule/RuleCondition aggregates and the
// single-active-per-fiscal-year publish invariant.
type RuleRepository interface {
	Create(ctx context.Context, rs *model.RuleSet) error
	GetByID(ctx context.Context, id string) (*model.RuleSet, error)
	ListByFiscalYear(ctx context.Context, fiscalYearID string) ([]model.RuleSet, error)
	GetActive(ctx context.Context, fiscalYearID string) (*model.RuleSet, error)
	RulesByObligation(ctx context.Context, ruleSetID string) (map[uuid.UUID][]model.Rule, error)
	// Publish atomically deprecates the fiscal year's current active rule
	// set (if any) and promotes target to active, inside one serializable
	// transaction guarded by a row lock, so two concurrent publishes for
	// the same fiscal year cannot both succeed.
	Publish(ctx context.Context, ruleSetID string) (*model.RuleSet, error)
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository returns a new RuleRepository.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, rs *model.RuleSet) error {
	return GetDB(ctx, r.db).Create(rs).Error
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (*model.RuleSet, error) {
	var rs model.RuleSet
	if err := GetDB(ctx, r.db).Preload("Rules.Conditions").First(&rs, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *ruleRepository) ListByFiscalYear(ctx context.Context, fiscalYearID string) ([]model.RuleSet, error) {
	var out []model.RuleSet
	if err := GetDB(ctx, r.db).Where("fiscal_year_id = ?", fiscalYearID).Order("version desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ruleRepository) GetActive(ctx context.Context, fiscalYearID string) (*model.RuleSet, error) {
	var rs model.RuleSet
	err := GetDB(ctx, r.db).
		Preload("Rules", "is_active = ?", true).
		Preload("Rules.Conditions").
		Where("fiscal_year_id = ? AND status = ?", fiscalYearID, model.RuleSetStatusActive).
		First(&rs).Error
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *ruleRepository) RulesByObligation(ctx context.Context, ruleSetID string) (map[uuid.UUID][]model.Rule, error) {
	var rules []model.Rule
	if err := GetDB(ctx, r.db).
		Preload("Conditions").
		Where("rule_set_id = ? AND is_active = ?", ruleSetID, true).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]model.Rule)
	for _, rule := range rules {
		out[rule.ObligationTypeID] = append(out[rule.ObligationTypeID], rule)
	}
	return out, nil
}

// Publish runs in its own serializable transaction rather than through
// the shared TransactionManager: the single-active invariant needs a
// stronger isolation guarantee than the rest of the write paths, which
// run at the driver's default (read committed).
func (r *ruleRepository) Publish(ctx context.Context, ruleSetID string) (*model.RuleSet, error) {
	var published model.RuleSet

	txOpts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.RuleSet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, "id = ?", ruleSetID).Error; err != nil {
			return err
		}
		if target.Status == model.RuleSetStatusActive {
			published = target
			return nil
		}

		// Lock every rule set for this fiscal year so a concurrent publish
		// for the same year cannot interleave with this transaction.
		var siblings []model.RuleSet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fiscal_year_id = ?", target.FiscalYearID).
			Find(&siblings).Error; err != nil {
			return err
		}

		for _, sibling := range siblings {
			if sibling.Status == model.RuleSetStatusActive {
				if err := tx.Model(&model.RuleSet{}).
					Where("id = ?", sibling.ID).
					Update("status", model.RuleSetStatusDeprecated).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&target).
			Updates(map[string]interface{}{
				"status":       model.RuleSetStatusActive,
				"published_at": gorm.Expr("now()"),
			}).Error; err != nil {
			return err
		}

		if err := tx.First(&published, "id = ?", ruleSetID).Error; err != nil {
			return err
		}
		return nil
	}, txOpts)
	if err != nil {
		return nil, fmt.Errorf("repository: publish rule set: %w", err)
	}
	return &published, nil
}
