package mappers

import (
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
)

func TargetToApi(t model.Target) api.Target {
	res := ProfileToApi(t.ToEstimation())
	res.CreatedAt = &t.CreatedAt
	res.UpdatedAt = t.UpdatedAt
	return res
}

func TargetListToApi(targets model.TargetList) api.TargetList {
	res := make(api.TargetList, 0, len(targets))
	for _, t := range targets {
		res = append(res, TargetToApi(t))
	}
	return res
}

func ProfileToApi(p estimation.TargetProfile) api.Target {
	res := api.Target{
		Name:                     p.Name,
		Platform:                 api.Platform(p.Platform),
		BandwidthMbps:            p.BandwidthMbps,
		NetworkEfficiency:        p.NetworkEfficiency,
		ComputePerVcpuHour:       p.ComputePerVCPUHour,
		MemoryPerGbHour:          p.MemoryPerGBHour,
		StoragePerGbMonth:        p.StoragePerGBMonth,
		NetworkIngressPerGb:      p.NetworkIngressPerGB,
		NetworkEgressPerGb:       p.NetworkEgressPerGB,
		CompressionRatio:         p.CompressionRatio,
		DedupRatio:               p.DedupRatio,
		ChangeRatePercent:        p.ChangeRatePercent,
		NetworkProtocolOverhead:  p.NetworkProtocolOverhead,
		DeltaSyncCount:           p.DeltaSyncCount,
		MaxParallelMigrations:    p.MaxParallelMigrations,
		MinRequiredBandwidthMbps: p.MinRequiredBandwidthMbps,
		SupportsLiveMigration:    p.SupportsLiveMigration,
		SlaUptimePercent:         p.SLAUptimePercent,
		ComplianceFlags:          []string{},
	}
	if p.SupportTier != "" {
		res.SupportTier = &p.SupportTier
	}
	if p.Region != "" {
		res.Region = &p.Region
	}
	if p.ComplianceFlags != nil {
		res.ComplianceFlags = p.ComplianceFlags
	}
	return res
}

func ScenarioToApi(s model.Scenario) api.Scenario {
	scenario := s.ToEstimation()

	res := api.Scenario{
		Id:                 s.ID,
		Name:               s.Name,
		Criteria:           s.Criteria,
		Target:             ProfileToApi(scenario.Target),
		Strategy:           api.Strategy(scenario.Strategy),
		ParallelMigrations: scenario.ParallelMigrations,
		Vms:                make([]api.VM, 0, len(scenario.VMs)),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		EvaluatedAt:        s.EvaluatedAt,
	}
	for _, vm := range scenario.VMs {
		res.Vms = append(res.Vms, VMToApi(vm))
	}
	if scenario.Outputs != nil {
		out := OutputsToApi(*scenario.Outputs)
		res.Outputs = &out
	}
	return res
}

func ScenarioListToApi(scenarios model.ScenarioList) api.ScenarioList {
	res := make(api.ScenarioList, 0, len(scenarios))
	for _, s := range scenarios {
		res = append(res, ScenarioToApi(s))
	}
	return res
}

func VMToApi(vm estimation.VM) api.VM {
	res := api.VM{
		Id:        vm.ID,
		Vcpus:     vm.VCPUs,
		MemoryMb:  vm.MemoryMB,
		StorageMb: vm.StorageMB,
	}
	if vm.Name != "" {
		res.Name = &vm.Name
	}
	if vm.Criticality != 0 {
		res.Criticality = &vm.Criticality
	}
	if vm.Datacenter != "" {
		res.Datacenter = &vm.Datacenter
	}
	return res
}

func OutputsToApi(o estimation.Outputs) api.ScenarioOutputs {
	return api.ScenarioOutputs{
		VmCount:  o.VMCount,
		Warnings: nonNil(o.Warnings),
		Duration: api.DurationBreakdown{
			InitialReplicationHours:   o.Duration.InitialReplicationHours,
			DeltaSyncHours:            o.Duration.DeltaSyncHours,
			CutoverHours:              o.Duration.CutoverHours,
			TotalReplicationHours:     o.Duration.TotalReplicationHours,
			TotalHours:                o.Duration.TotalHours,
			TotalDays:                 o.Duration.TotalDays,
			ReplicationDays:           o.Duration.ReplicationDays,
			CutoverDays:               o.Duration.CutoverDays,
			MigrationWaves:            o.Duration.MigrationWaves,
			EffectiveDataTb:           o.Duration.EffectiveDataTB,
			OriginalDataTb:            o.Duration.OriginalDataTB,
			CompressionSavingsPercent: o.Duration.CompressionSavingsPercent,
			DedupSavingsPercent:       o.Duration.DedupSavingsPercent,
		},
		Cost: api.CostBreakdown{
			MigrationCost: api.MigrationCost{
				Labor:           o.Cost.MigrationCost.Labor,
				NetworkTransfer: o.Cost.MigrationCost.NetworkTransfer,
				Total:           o.Cost.MigrationCost.Total,
			},
			RuntimeCostMonthly: api.RuntimeCost{
				Compute: o.Cost.RuntimeCostMonthly.Compute,
				Memory:  o.Cost.RuntimeCostMonthly.Memory,
				Storage: o.Cost.RuntimeCostMonthly.Storage,
				Total:   o.Cost.RuntimeCostMonthly.Total,
			},
			ProjectionMonths: o.Cost.ProjectionMonths,
			ProjectedTotal:   o.Cost.ProjectedTotal,
		},
		Risk: api.RiskAssessment{
			Level:   api.StringToRiskLevel(string(o.Risk.Level)),
			Points:  o.Risk.Points,
			Factors: nonNil(o.Risk.Factors),
		},
		Recommendation: api.Recommendation{
			Score:       o.Recommendation.Score,
			Recommended: o.Recommendation.Recommended,
			Reasons:     nonNil(o.Recommendation.Reasons),
		},
	}
}

func WaveListToApi(waves []estimation.Wave) api.WaveList {
	res := make(api.WaveList, 0, len(waves))
	for _, w := range waves {
		res = append(res, api.Wave{
			Number:    w.Number,
			VmIds:     nonNil(w.VMIDs),
			DependsOn: append([]int{}, w.DependsOn...),
			Status:    api.StringToWaveStatus(string(w.Status)),
			StorageGb: w.StorageGB,
		})
	}
	return res
}

func ComparisonToApi(rows []estimation.ComparisonRow) api.Comparison {
	res := make(api.Comparison, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.ComparisonRow{
			Scenario:     r.Scenario,
			Target:       r.Target,
			Strategy:     api.Strategy(r.Strategy),
			DurationDays: r.DurationDays,
			TotalCost:    r.TotalCost,
			RiskLevel:    api.StringToRiskLevel(string(r.RiskLevel)),
			Score:        r.Score,
			Recommended:  r.Recommended,
		})
	}
	return res
}

// nil slices are rendered as [] to keep the clients free of null checks
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
