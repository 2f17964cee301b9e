package calculators

import "github.com/kubev2v/migration-scenario-planner/internal/estimation"

// Settings gathers the tunables of every calculator. Start from DefaultSettings: every
// field is passed through, so a zero labor rate, projection or cutover is honored.
// Negative amounts and non-positive windows or ceilings keep the calculator defaults.
type Settings struct {
	LaborRatePerHour       float64
	LaborHoursPerVM        float64
	ProjectionMonths       int
	CutoverHoursPerWave    float64
	OperationalWindowHours float64
	CostCeiling            float64
	DurationCeilingDays    float64
}

func DefaultSettings() Settings {
	return Settings{
		LaborRatePerHour:       DefaultLaborRatePerHour,
		LaborHoursPerVM:        DefaultLaborHoursPerVM,
		ProjectionMonths:       DefaultProjectionMonths,
		CutoverHoursPerWave:    DefaultCutoverHoursPerWave,
		OperationalWindowHours: DefaultOperationalWindowHours,
		CostCeiling:            DefaultCostCeiling,
		DurationCeilingDays:    DefaultDurationCeilingDays,
	}
}

// NewEngine wires the four calculators into an estimation.Engine.
func NewEngine(s Settings) *estimation.Engine {
	return estimation.NewEngine(
		NewDuration(
			WithCutoverHoursPerWave(s.CutoverHoursPerWave),
			WithOperationalWindowHours(s.OperationalWindowHours),
		),
		NewCost(
			WithLaborRatePerHour(s.LaborRatePerHour),
			WithLaborHoursPerVM(s.LaborHoursPerVM),
			WithProjectionMonths(s.ProjectionMonths),
		),
		NewRisk(),
		NewRecommendation(
			WithCostCeiling(s.CostCeiling),
			WithDurationCeilingDays(s.DurationCeilingDays),
		),
	)
}
