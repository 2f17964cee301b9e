package store

import (
	"context"
	"errors"
	"time"

	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Target interface {
	List(ctx context.Context, filter *TargetQueryFilter) (model.TargetList, error)
	Get(ctx context.Context, name string) (*model.Target, error)
	Create(ctx context.Context, target model.Target) (*model.Target, error)
	Update(ctx context.Context, target model.Target) (*model.Target, error)
	Delete(ctx context.Context, name string) error
}

type TargetStore struct {
	db *gorm.DB
}

// Make sure we conform to Target interface
var _ Target = (*TargetStore)(nil)

func NewTargetStore(db *gorm.DB) Target {
	return &TargetStore{db: db}
}

func (t *TargetStore) List(ctx context.Context, filter *TargetQueryFilter) (model.TargetList, error) {
	var targets model.TargetList
	tx := t.getDB(ctx).Model(&targets).Order("name")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

func (t *TargetStore) Get(ctx context.Context, name string) (*model.Target, error) {
	var target model.Target
	if err := t.getDB(ctx).First(&target, "name = ?", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &target, nil
}

func (t *TargetStore) Create(ctx context.Context, target model.Target) (*model.Target, error) {
	if err := t.getDB(ctx).Clauses(clause.Returning{}).Create(&target).Error; err != nil {
		return nil, translateError(err)
	}
	return &target, nil
}

func (t *TargetStore) Update(ctx context.Context, target model.Target) (*model.Target, error) {
	now := time.Now()
	target.UpdatedAt = &now

	result := t.getDB(ctx).Model(&target).Select("platform", "profile", "updated_at").Updates(&target)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return t.Get(ctx, target.Name)
}

func (t *TargetStore) Delete(ctx context.Context, name string) error {
	result := t.getDB(ctx).Unscoped().Delete(&model.Target{}, "name = ?", name)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (t *TargetStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return t.db.WithContext(ctx)
}
