package store

import (
	"context"

	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Target() Target
	Scenario() Scenario
	Wave() Wave
	InitialMigration(ctx context.Context) error
	Statistics(ctx context.Context) (model.PlannerStats, error)
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	target   Target
	scenario Scenario
	wave     Wave
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		target:   NewTargetStore(db),
		scenario: NewScenarioStore(db),
		wave:     NewWaveStore(db),
		db:       db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Target() Target {
	return s.target
}

func (s *DataStore) Scenario() Scenario {
	return s.scenario
}

func (s *DataStore) Wave() Wave {
	return s.wave
}

// InitialMigration creates the schema from the models. Used with sqlite; postgres
// deployments run the goose migrations instead.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Target{}, &model.Scenario{}, &model.Wave{})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
