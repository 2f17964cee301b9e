package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

type Wave struct {
	ScenarioID uuid.UUID `gorm:"primaryKey;type:VARCHAR(255);"`
	Number     int       `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time
	VMIDs      *JSONField[[]string] `gorm:"column:vm_ids;type:jsonb;not null"`
	DependsOn  *JSONField[[]int]    `gorm:"column:depends_on;type:jsonb;not null"`
	Status     string               `gorm:"not null;type:VARCHAR(20)"`
	StorageGB  float64              `gorm:"column:storage_gb;not null"`
}

type WaveList []Wave

func NewWaves(scenarioID uuid.UUID, waves []estimation.Wave) WaveList {
	res := make(WaveList, 0, len(waves))
	for _, w := range waves {
		res = append(res, Wave{
			ScenarioID: scenarioID,
			Number:     w.Number,
			VMIDs:      MakeJSONField(w.VMIDs),
			DependsOn:  MakeJSONField(w.DependsOn),
			Status:     string(w.Status),
			StorageGB:  w.StorageGB,
		})
	}
	return res
}

func (w Wave) ToEstimation() estimation.Wave {
	res := estimation.Wave{
		Number:    w.Number,
		VMIDs:     []string{},
		DependsOn: []int{},
		Status:    estimation.WaveStatus(w.Status),
		StorageGB: w.StorageGB,
	}
	if w.VMIDs != nil && w.VMIDs.Data != nil {
		res.VMIDs = w.VMIDs.Data
	}
	if w.DependsOn != nil && w.DependsOn.Data != nil {
		res.DependsOn = w.DependsOn.Data
	}
	return res
}

func (l WaveList) ToEstimation() []estimation.Wave {
	res := make([]estimation.Wave, 0, len(l))
	for _, w := range l {
		res = append(res, w.ToEstimation())
	}
	return res
}
