package calculators

import (
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

const (
	// DefaultLaborRatePerHour is the hourly cost of migration engineering work.
	DefaultLaborRatePerHour = 150.0
	// DefaultLaborHoursPerVM is the engineering effort spent on each migrated VM.
	DefaultLaborHoursPerVM = 4.0
	// DefaultProjectionMonths is the runtime horizon added to the one-time cost in ProjectedTotal.
	DefaultProjectionMonths = 12
)

// Compile-time assertion that Cost implements the CostCalculator interface.
var _ estimation.CostCalculator = (*Cost)(nil)

// Cost prices a VM set on a target profile.
type Cost struct {
	laborRatePerHour float64
	laborHoursPerVM  float64
	hoursPerMonth    float64
	projectionMonths int
}

type CostOption func(*Cost)

// WithLaborRatePerHour sets the hourly labor rate. Negative values are ignored.
func WithLaborRatePerHour(rate float64) CostOption {
	return func(c *Cost) {
		if rate >= 0 {
			c.laborRatePerHour = rate
		}
	}
}

// WithLaborHoursPerVM sets the labor hours spent per VM. Negative values are ignored.
func WithLaborHoursPerVM(hours float64) CostOption {
	return func(c *Cost) {
		if hours >= 0 {
			c.laborHoursPerVM = hours
		}
	}
}

// WithHoursPerMonth overrides the 730 hours-per-month constant. Non-positive values are ignored.
func WithHoursPerMonth(hours float64) CostOption {
	return func(c *Cost) {
		if hours > 0 {
			c.hoursPerMonth = hours
		}
	}
}

// WithProjectionMonths sets the runtime horizon of ProjectedTotal. Negative values are ignored.
func WithProjectionMonths(months int) CostOption {
	return func(c *Cost) {
		if months >= 0 {
			c.projectionMonths = months
		}
	}
}

func NewCost(opts ...CostOption) *Cost {
	res := Cost{
		laborRatePerHour: DefaultLaborRatePerHour,
		laborHoursPerVM:  DefaultLaborHoursPerVM,
		hoursPerMonth:    HoursPerMonth,
		projectionMonths: DefaultProjectionMonths,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *Cost) Name() string { return "Migration Cost" }

// Calculate returns the itemized one-time and monthly costs.
// RETIRE decommissions the workload: no runtime cost and no data transfer, labor only.
// RETAIN moves nothing: no migration cost.
func (c *Cost) Calculate(vms []estimation.VM, target estimation.TargetProfile, strategy estimation.Strategy) (estimation.CostBreakdown, error) {
	if target.ComputePerVCPUHour < 0 || target.MemoryPerGBHour < 0 || target.StoragePerGBMonth < 0 || target.NetworkEgressPerGB < 0 {
		return estimation.CostBreakdown{}, estimation.NewErrInvalidConfiguration("target %q has negative cost rates", target.Name)
	}
	if _, err := estimation.ParseStrategy(string(strategy)); err != nil {
		return estimation.CostBreakdown{}, err
	}

	vcpus, memoryGB, storageGB := totals(vms)

	migration := estimation.MigrationCost{
		Labor:           float64(len(vms)) * c.laborHoursPerVM * c.laborRatePerHour,
		NetworkTransfer: storageGB * target.NetworkEgressPerGB,
	}
	runtime := estimation.RuntimeCost{
		Compute: float64(vcpus) * target.ComputePerVCPUHour * c.hoursPerMonth,
		Memory:  memoryGB * target.MemoryPerGBHour * c.hoursPerMonth,
		Storage: storageGB * target.StoragePerGBMonth,
	}

	switch strategy {
	case estimation.StrategyRetire:
		migration.NetworkTransfer = 0
		runtime = estimation.RuntimeCost{}
	case estimation.StrategyRetain:
		migration = estimation.MigrationCost{}
	}

	migration.Total = migration.Labor + migration.NetworkTransfer
	runtime.Total = runtime.Compute + runtime.Memory + runtime.Storage

	return estimation.CostBreakdown{
		MigrationCost:      migration,
		RuntimeCostMonthly: runtime,
		ProjectionMonths:   c.projectionMonths,
		ProjectedTotal:     migration.Total + runtime.Total*float64(c.projectionMonths),
	}, nil
}
