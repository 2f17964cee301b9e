package events

import "github.com/google/uuid"

type ScenarioEvaluatedEvent struct {
	ScenarioID     uuid.UUID `json:"scenario_id"`
	Name           string    `json:"name"`
	Target         string    `json:"target"`
	Strategy       string    `json:"strategy"`
	VMCount        int       `json:"vm_count"`
	TotalDays      float64   `json:"total_days"`
	ProjectedTotal float64   `json:"projected_total"`
	RiskLevel      string    `json:"risk_level"`
	Score          float64   `json:"score"`
	Recommended    bool      `json:"recommended"`
	// Batch is set when the scenario was scored against the other scenarios of the same request.
	Batch bool `json:"batch"`
}

type WavesGeneratedEvent struct {
	ScenarioID uuid.UUID `json:"scenario_id"`
	Name       string    `json:"name"`
	Waves      int       `json:"waves"`
	WaveSize   int       `json:"wave_size"`
	Ordering   string    `json:"ordering"`
}

type ScenarioDeletedEvent struct {
	ScenarioID uuid.UUID `json:"scenario_id"`
	Name       string    `json:"name"`
}
