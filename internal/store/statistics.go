package store

import (
	"context"

	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
)

type groupCount struct {
	GroupKey string
	Total    int
}

// Statistics counts the stored resources for the metrics collector.
func (s *DataStore) Statistics(ctx context.Context) (model.PlannerStats, error) {
	db := s.db.WithContext(ctx)
	stats := model.PlannerStats{
		TargetsByPlatform:   map[string]int{},
		ScenariosByStrategy: map[string]int{},
	}

	var platforms []groupCount
	if err := db.Model(&model.Target{}).Select("platform as group_key, count(*) as total").Group("platform").Scan(&platforms).Error; err != nil {
		return stats, err
	}
	for _, p := range platforms {
		stats.TargetsByPlatform[p.GroupKey] = p.Total
	}

	var strategies []groupCount
	if err := db.Model(&model.Scenario{}).Select("strategy as group_key, count(*) as total").Group("strategy").Scan(&strategies).Error; err != nil {
		return stats, err
	}
	for _, st := range strategies {
		stats.ScenariosByStrategy[st.GroupKey] = st.Total
		stats.TotalScenarios += st.Total
	}

	var evaluated int64
	if err := db.Model(&model.Scenario{}).Where("outputs IS NOT NULL").Count(&evaluated).Error; err != nil {
		return stats, err
	}
	stats.EvaluatedScenarios = int(evaluated)

	var waves int64
	if err := db.Model(&model.Wave{}).Count(&waves).Error; err != nil {
		return stats, err
	}
	stats.TotalWaves = int(waves)

	return stats, nil
}
