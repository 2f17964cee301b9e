package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Scenario interface {
	List(ctx context.Context, filter *ScenarioQueryFilter, opts *ScenarioQueryOptions) (model.ScenarioList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error)
	Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error)
	UpdateOutputs(ctx context.Context, id uuid.UUID, outputs estimation.Outputs) (*model.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScenarioStore struct {
	db *gorm.DB
}

// Make sure we conform to Scenario interface
var _ Scenario = (*ScenarioStore)(nil)

func NewScenarioStore(db *gorm.DB) Scenario {
	return &ScenarioStore{db: db}
}

func (s *ScenarioStore) List(ctx context.Context, filter *ScenarioQueryFilter, opts *ScenarioQueryOptions) (model.ScenarioList, error) {
	var scenarios model.ScenarioList
	tx := s.getDB(ctx).Model(&scenarios)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil && len(opts.QueryFn) > 0 {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	} else {
		tx = tx.Order("created_at DESC")
	}

	if err := tx.Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	var scenario model.Scenario
	if err := s.getDB(ctx).First(&scenario, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &scenario, nil
}

func (s *ScenarioStore) Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	if scenario.ID == uuid.Nil {
		scenario.ID = uuid.New()
	}
	if err := s.getDB(ctx).Clauses(clause.Returning{}).Create(&scenario).Error; err != nil {
		return nil, translateError(err)
	}
	return &scenario, nil
}

// UpdateOutputs replaces the outputs of a scenario as a whole.
func (s *ScenarioStore) UpdateOutputs(ctx context.Context, id uuid.UUID, outputs estimation.Outputs) (*model.Scenario, error) {
	now := time.Now()
	result := s.getDB(ctx).Model(&model.Scenario{}).Where("id = ?", id).Updates(map[string]any{
		"outputs":      model.MakeJSONField(outputs),
		"evaluated_at": now,
		"updated_at":   now,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, id)
}

func (s *ScenarioStore) Delete(ctx context.Context, id uuid.UUID) error {
	db := s.getDB(ctx)
	// sqlite does not enforce the cascade unless foreign keys are enabled
	if err := db.Delete(&model.Wave{}, "scenario_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Unscoped().Delete(&model.Scenario{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *ScenarioStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
