package calculators

import (
	"math"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

const (
	gbPerTB = 1024.0
	// HoursPerMonth is the canonical average number of hours in a month.
	HoursPerMonth = 730.0
)

func totals(vms []estimation.VM) (vcpus int, memoryGB, storageGB float64) {
	for _, vm := range vms {
		vcpus += vm.VCPUs
		memoryGB += vm.MemoryGB()
		storageGB += vm.StorageGB()
	}
	return vcpus, memoryGB, storageGB
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
