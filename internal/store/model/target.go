package model

import (
	"encoding/json"
	"time"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

type Target struct {
	Name      string `gorm:"primaryKey;column:name;type:VARCHAR(255);"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	Platform  string                               `gorm:"not null;type:VARCHAR(50);index:targets_platform_idx"`
	Profile   *JSONField[estimation.TargetProfile] `gorm:"type:jsonb;not null"`
}

type TargetList []Target

func NewTarget(profile estimation.TargetProfile) Target {
	return Target{
		Name:     profile.Name,
		Platform: string(profile.Platform),
		Profile:  MakeJSONField(profile),
	}
}

func (t Target) ToEstimation() estimation.TargetProfile {
	if t.Profile == nil {
		return estimation.TargetProfile{Name: t.Name, Platform: estimation.Platform(t.Platform)}
	}
	return t.Profile.Data
}

func (t Target) String() string {
	val, _ := json.Marshal(t)
	return string(val)
}
