package mappers

import (
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/inventory"
	srvMappers "github.com/kubev2v/migration-scenario-planner/internal/service/mappers"
)

// TargetFormApi applies the submitted fields on top of the profile defaults.
func TargetFormApi(form api.TargetCreate) estimation.TargetProfile {
	profile := estimation.NewTargetProfile(form.Name, estimation.Platform(form.Platform))
	profile.BandwidthMbps = form.BandwidthMbps

	setFloat(&profile.NetworkEfficiency, form.NetworkEfficiency)
	setFloat(&profile.ComputePerVCPUHour, form.ComputePerVcpuHour)
	setFloat(&profile.MemoryPerGBHour, form.MemoryPerGbHour)
	setFloat(&profile.StoragePerGBMonth, form.StoragePerGbMonth)
	setFloat(&profile.NetworkIngressPerGB, form.NetworkIngressPerGb)
	setFloat(&profile.NetworkEgressPerGB, form.NetworkEgressPerGb)
	setFloat(&profile.CompressionRatio, form.CompressionRatio)
	setFloat(&profile.DedupRatio, form.DedupRatio)
	setFloat(&profile.ChangeRatePercent, form.ChangeRatePercent)
	setFloat(&profile.NetworkProtocolOverhead, form.NetworkProtocolOverhead)
	setFloat(&profile.MinRequiredBandwidthMbps, form.MinRequiredBandwidthMbps)
	setFloat(&profile.SLAUptimePercent, form.SlaUptimePercent)

	if form.DeltaSyncCount != nil {
		profile.DeltaSyncCount = *form.DeltaSyncCount
	}
	if form.MaxParallelMigrations != nil {
		profile.MaxParallelMigrations = *form.MaxParallelMigrations
	}
	if form.SupportsLiveMigration != nil {
		profile.SupportsLiveMigration = *form.SupportsLiveMigration
	}
	if form.SupportTier != nil {
		profile.SupportTier = *form.SupportTier
	}
	if form.Region != nil {
		profile.Region = *form.Region
	}
	if len(form.ComplianceFlags) > 0 {
		profile.ComplianceFlags = append([]string(nil), form.ComplianceFlags...)
	}
	return profile
}

// ScenarioFormApi resolves the selector against the submitted VMs.
func ScenarioFormApi(form api.ScenarioCreate) srvMappers.ScenarioCreateForm {
	vms := make([]estimation.VM, 0, len(form.Vms))
	for _, vm := range form.Vms {
		vms = append(vms, VMFormApi(vm))
	}

	selector := inventory.Selector{}
	if form.Selector != nil {
		selector = inventory.Selector{
			Datacenters:    form.Selector.Datacenters,
			VMIDs:          form.Selector.VmIds,
			MinCriticality: form.Selector.MinCriticality,
			MaxCriticality: form.Selector.MaxCriticality,
		}
	}

	parallel := 0
	if form.ParallelMigrations != nil {
		parallel = *form.ParallelMigrations
	}

	return srvMappers.ScenarioCreateForm{
		Name:               form.Name,
		Criteria:           selector.String(),
		TargetName:         form.Target,
		Strategy:           string(form.Strategy),
		ParallelMigrations: parallel,
		VMs:                selector.Select(vms),
	}
}

func VMFormApi(vm api.VM) estimation.VM {
	res := estimation.VM{
		ID:        vm.Id,
		VCPUs:     vm.Vcpus,
		MemoryMB:  vm.MemoryMb,
		StorageMB: vm.StorageMb,
	}
	if vm.Name != nil {
		res.Name = *vm.Name
	}
	if vm.Criticality != nil {
		res.Criticality = *vm.Criticality
	}
	if vm.Datacenter != nil {
		res.Datacenter = *vm.Datacenter
	}
	return res
}

func WaveFormApi(req api.WavesRequest) srvMappers.WaveForm {
	form := srvMappers.WaveForm{CustomOrder: req.CustomOrder}
	if req.WaveSize != nil {
		form.WaveSize = *req.WaveSize
	}
	if req.Ordering != nil {
		form.Ordering = string(*req.Ordering)
	}
	if req.Dependencies != nil {
		form.Dependencies = make(map[int][]int, len(req.Dependencies))
		for _, d := range req.Dependencies {
			form.Dependencies[d.Wave] = append(form.Dependencies[d.Wave], d.DependsOn...)
		}
	}
	return form
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
