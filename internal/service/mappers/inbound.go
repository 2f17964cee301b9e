package mappers

import (
	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation/waves"
)

// ScenarioCreateForm carries a resolved VM selection. Criteria only describes how it was resolved.
type ScenarioCreateForm struct {
	Name               string
	Criteria           string
	TargetName         string
	Strategy           string
	ParallelMigrations int
	VMs                []estimation.VM
}

// ToScenario builds the unevaluated scenario once the target has been resolved.
func (f ScenarioCreateForm) ToScenario(target estimation.TargetProfile, strategy estimation.Strategy) estimation.Scenario {
	vms := f.VMs
	if vms == nil {
		vms = []estimation.VM{}
	}
	parallel := f.ParallelMigrations
	if parallel == 0 {
		parallel = target.MaxParallelMigrations
	}
	return estimation.Scenario{
		ID:                 uuid.New(),
		Name:               f.Name,
		Criteria:           f.Criteria,
		Target:             target,
		Strategy:           strategy,
		ParallelMigrations: parallel,
		VMs:                vms,
	}
}

// WaveForm drives a wave generation. A zero WaveSize uses the scenario's parallel migrations.
type WaveForm struct {
	WaveSize     int
	Ordering     string
	CustomOrder  []string
	Dependencies map[int][]int
}

func (f WaveForm) ToOptions(parallelMigrations int) (waves.Options, error) {
	ordering, err := waves.ParseOrdering(f.Ordering)
	if err != nil {
		return waves.Options{}, err
	}
	size := f.WaveSize
	if size == 0 {
		size = parallelMigrations
	}
	return waves.Options{
		WaveSize:     size,
		Ordering:     ordering,
		CustomOrder:  f.CustomOrder,
		Dependencies: f.Dependencies,
	}, nil
}

// ScenarioFilter narrows a scenario listing. Empty fields are ignored.
type ScenarioFilter struct {
	TargetName string
	Strategy   string
	NameLike   string
	Evaluated  *bool
	Limit      int
	Offset     int
}
