package model

// PlannerStats is a point in time snapshot of the stored targets and scenarios.
type PlannerStats struct {
	// TargetsByPlatform is keyed by platform.
	TargetsByPlatform map[string]int
	// ScenariosByStrategy is keyed by strategy.
	ScenariosByStrategy map[string]int
	TotalScenarios      int
	EvaluatedScenarios  int
	TotalWaves          int
}
