package estimation

import (
	"cmp"
	"slices"
)

// ComparisonRow is the projection of one evaluated scenario.
type ComparisonRow struct {
	Scenario     string    `json:"scenario"`
	Target       string    `json:"target"`
	Strategy     Strategy  `json:"strategy"`
	DurationDays float64   `json:"duration_days"`
	TotalCost    float64   `json:"total_cost"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Score        float64   `json:"score"`
	Recommended  bool      `json:"recommended"`
}

// Compare projects evaluated scenarios into a table sorted by score, highest first.
// Nothing is recomputed; every scenario must already carry its outputs.
func Compare(scenarios []Scenario) ([]ComparisonRow, error) {
	rows := make([]ComparisonRow, 0, len(scenarios))
	for _, s := range scenarios {
		if !s.Evaluated() {
			return nil, NewErrIncompleteScenario(s.Name)
		}
		rows = append(rows, ComparisonRow{
			Scenario:     s.Name,
			Target:       s.Target.Name,
			Strategy:     s.Strategy,
			DurationDays: s.Outputs.Duration.TotalDays,
			TotalCost:    s.Outputs.Cost.ProjectedTotal,
			RiskLevel:    s.Outputs.Risk.Level,
			Score:        s.Outputs.Recommendation.Score,
			Recommended:  s.Outputs.Recommendation.Recommended,
		})
	}

	slices.SortStableFunc(rows, func(a, b ComparisonRow) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Scenario, b.Scenario)
	})
	return rows, nil
}
