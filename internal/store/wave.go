package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"gorm.io/gorm"
)

type Wave interface {
	List(ctx context.Context, scenarioID uuid.UUID) (model.WaveList, error)
	// Replace deletes every wave of the scenario and inserts the new ones.
	// Callers wrap it in a transaction to make the swap atomic.
	Replace(ctx context.Context, scenarioID uuid.UUID, waves model.WaveList) (model.WaveList, error)
	DeleteByScenario(ctx context.Context, scenarioID uuid.UUID) error
}

type WaveStore struct {
	db *gorm.DB
}

// Make sure we conform to Wave interface
var _ Wave = (*WaveStore)(nil)

func NewWaveStore(db *gorm.DB) Wave {
	return &WaveStore{db: db}
}

func (w *WaveStore) List(ctx context.Context, scenarioID uuid.UUID) (model.WaveList, error) {
	var waves model.WaveList
	if err := w.getDB(ctx).Where("scenario_id = ?", scenarioID).Order("number").Find(&waves).Error; err != nil {
		return nil, err
	}
	return waves, nil
}

func (w *WaveStore) Replace(ctx context.Context, scenarioID uuid.UUID, waves model.WaveList) (model.WaveList, error) {
	if err := w.DeleteByScenario(ctx, scenarioID); err != nil {
		return nil, err
	}
	if len(waves) == 0 {
		return model.WaveList{}, nil
	}
	for i := range waves {
		waves[i].ScenarioID = scenarioID
	}
	if err := w.getDB(ctx).Create(&waves).Error; err != nil {
		return nil, err
	}
	return waves, nil
}

func (w *WaveStore) DeleteByScenario(ctx context.Context, scenarioID uuid.UUID) error {
	return w.getDB(ctx).Delete(&model.Wave{}, "scenario_id = ?", scenarioID).Error
}

func (w *WaveStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return w.db.WithContext(ctx)
}
