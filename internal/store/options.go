package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByName
	SortByCreatedTime
	SortByUpdatedTime
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type TargetQueryFilter BaseQuerier

func NewTargetQueryFilter() *TargetQueryFilter {
	return &TargetQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (tf *TargetQueryFilter) ByPlatform(platform string) *TargetQueryFilter {
	tf.QueryFn = append(tf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("platform = ?", platform)
	})
	return tf
}

func (tf *TargetQueryFilter) ByNames(names []string) *TargetQueryFilter {
	tf.QueryFn = append(tf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("name IN ?", names)
	})
	return tf
}

type ScenarioQueryFilter BaseQuerier

func NewScenarioQueryFilter() *ScenarioQueryFilter {
	return &ScenarioQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (sf *ScenarioQueryFilter) ByIDs(ids []uuid.UUID) *ScenarioQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	})
	return sf
}

func (sf *ScenarioQueryFilter) ByTargetName(name string) *ScenarioQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("target_name = ?", name)
	})
	return sf
}

func (sf *ScenarioQueryFilter) ByStrategy(strategy string) *ScenarioQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("strategy = ?", strategy)
	})
	return sf
}

func (sf *ScenarioQueryFilter) ByEvaluated(evaluated bool) *ScenarioQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if evaluated {
			return tx.Where("outputs IS NOT NULL")
		}
		return tx.Where("outputs IS NULL")
	})
	return sf
}

func (sf *ScenarioQueryFilter) WithNameLike(pattern string) *ScenarioQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("name LIKE ?", "%"+pattern+"%")
	})
	return sf
}

type ScenarioQueryOptions BaseQuerier

func NewScenarioQueryOptions() *ScenarioQueryOptions {
	return &ScenarioQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ScenarioQueryOptions) WithSortOrder(sort SortOrder) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByName:
			return tx.Order("name")
		case SortByUpdatedTime:
			return tx.Order("updated_at")
		case SortByCreatedTime:
			return tx.Order("created_at")
		default:
			return tx
		}
	})
	return o
}

func (o *ScenarioQueryOptions) WithLimit(limit int) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

func (o *ScenarioQueryOptions) WithOffset(offset int) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}
