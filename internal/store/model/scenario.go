package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

// Scenario keeps a snapshot of the target profile taken at creation time so later
// changes to the target never alter a stored evaluation.
type Scenario struct {
	ID                 uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	EvaluatedAt        *time.Time
	Name               string                               `gorm:"not null;uniqueIndex:scenarios_name_idx"`
	Criteria           string                               `gorm:"type:TEXT"`
	TargetName         string                               `gorm:"not null;type:VARCHAR(255);index:scenarios_target_name_idx"`
	Target             *JSONField[estimation.TargetProfile] `gorm:"type:jsonb;not null"`
	Strategy           string                               `gorm:"not null;type:VARCHAR(50)"`
	ParallelMigrations int                                  `gorm:"not null"`
	VMs                *JSONField[[]estimation.VM]          `gorm:"column:vms;type:jsonb;not null"`
	Outputs            *JSONField[estimation.Outputs]       `gorm:"column:outputs;type:jsonb"`
	Waves              []Wave                               `gorm:"foreignKey:ScenarioID;references:ID;constraint:OnDelete:CASCADE;"`
}

type ScenarioList []Scenario

func NewScenario(s estimation.Scenario) Scenario {
	m := Scenario{
		ID:                 s.ID,
		Name:               s.Name,
		Criteria:           s.Criteria,
		TargetName:         s.Target.Name,
		Target:             MakeJSONField(s.Target),
		Strategy:           string(s.Strategy),
		ParallelMigrations: s.ParallelMigrations,
		VMs:                MakeJSONField(s.VMs),
	}
	if s.VMs == nil {
		m.VMs = MakeJSONField([]estimation.VM{})
	}
	if s.Outputs != nil {
		m.Outputs = MakeJSONField(*s.Outputs)
	}
	return m
}

func (s Scenario) ToEstimation() estimation.Scenario {
	res := estimation.Scenario{
		ID:                 s.ID,
		Name:               s.Name,
		Criteria:           s.Criteria,
		Strategy:           estimation.Strategy(s.Strategy),
		ParallelMigrations: s.ParallelMigrations,
		VMs:                []estimation.VM{},
	}
	if s.Target != nil {
		res.Target = s.Target.Data
	}
	if s.VMs != nil && s.VMs.Data != nil {
		res.VMs = s.VMs.Data
	}
	if s.Outputs != nil {
		out := s.Outputs.Data
		res.Outputs = &out
	}
	return res
}

func (s ScenarioList) ToEstimation() []estimation.Scenario {
	res := make([]estimation.Scenario, 0, len(s))
	for _, sc := range s {
		res = append(res, sc.ToEstimation())
	}
	return res
}

func (s Scenario) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}
