package service

import (
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation/calculators"
)

// NewEstimationEngine builds the engine from the configured tunables. A nil config keeps the defaults.
func NewEstimationEngine(cfg *config.EstimationConfig) *estimation.Engine {
	if cfg == nil {
		return calculators.NewEngine(calculators.DefaultSettings())
	}
	return calculators.NewEngine(calculators.Settings{
		LaborRatePerHour:       cfg.LaborRatePerHour,
		LaborHoursPerVM:        cfg.LaborHoursPerVM,
		ProjectionMonths:       cfg.ProjectionMonths,
		CutoverHoursPerWave:    cfg.CutoverHoursPerWave,
		OperationalWindowHours: cfg.OperationalWindowHours,
		CostCeiling:            cfg.CostCeiling,
		DurationCeilingDays:    cfg.DurationCeilingDays,
	})
}
