package calculators

import (
	"math"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

const (
	// DefaultCutoverHoursPerWave covers validation and rollback-readiness checks of one wave.
	DefaultCutoverHoursPerWave = 2.0
	// DefaultOperationalWindowHours is the length of the daily window in which cutover work happens.
	DefaultOperationalWindowHours = 8.0

	hoursPerDay    = 24.0
	bitsPerByte    = 8.0
	secondsPerHour = 3600.0
	mbpsPerGbps    = 1000.0
)

// Compile-time assertion that Duration implements the DurationCalculator interface.
var _ estimation.DurationCalculator = (*Duration)(nil)

// Duration models a migration as initial replication, delta syncs and per-wave cutover.
type Duration struct {
	cutoverHoursPerWave    float64
	operationalWindowHours float64
}

// DurationOption is a functional option for configuring a Duration calculator.
type DurationOption func(*Duration)

// WithCutoverHoursPerWave sets the fixed cutover overhead of every wave.
// Negative values are ignored and the default is kept.
func WithCutoverHoursPerWave(hours float64) DurationOption {
	return func(d *Duration) {
		if hours >= 0 {
			d.cutoverHoursPerWave = hours
		}
	}
}

// WithOperationalWindowHours sets the number of hours per day available for cutover work.
// Non-positive values are ignored and the default is kept.
func WithOperationalWindowHours(hours float64) DurationOption {
	return func(d *Duration) {
		if hours > 0 {
			d.operationalWindowHours = hours
		}
	}
}

func NewDuration(opts ...DurationOption) *Duration {
	res := Duration{
		cutoverHoursPerWave:    DefaultCutoverHoursPerWave,
		operationalWindowHours: DefaultOperationalWindowHours,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *Duration) Name() string { return "Migration Duration" }

// Calculate runs the multi-phase model. The efficiency chain is applied in a fixed order:
// compression, deduplication, then protocol overhead.
func (c *Duration) Calculate(vms []estimation.VM, target estimation.TargetProfile, strategy estimation.Strategy, parallelMigrations int) (estimation.DurationBreakdown, error) {
	if parallelMigrations < 1 {
		return estimation.DurationBreakdown{}, estimation.NewErrInvalidConfiguration("parallel migrations must be >= 1, got %d", parallelMigrations)
	}
	bandwidthGbps := target.BandwidthMbps * target.NetworkEfficiency / mbpsPerGbps
	if bandwidthGbps <= 0 {
		return estimation.DurationBreakdown{}, estimation.NewErrInvalidConfiguration("target %q has no usable bandwidth", target.Name)
	}

	movesData, err := strategy.MovesData()
	if err != nil {
		return estimation.DurationBreakdown{}, err
	}
	if len(vms) == 0 {
		return estimation.DurationBreakdown{}, nil
	}

	_, _, originalGB := totals(vms)
	res := estimation.DurationBreakdown{
		OriginalDataTB:            originalGB / gbPerTB,
		CompressionSavingsPercent: (1 - target.CompressionRatio) * 100,
		DedupSavingsPercent:       (1 - target.DedupRatio) * 100,
	}
	if !movesData {
		return res, nil
	}

	profile, err := estimation.LookupStrategyProfile(strategy)
	if err != nil {
		return estimation.DurationBreakdown{}, err
	}

	effectiveGB := originalGB * target.CompressionRatio
	effectiveGB *= target.DedupRatio
	effectiveGB *= target.NetworkProtocolOverhead
	effectiveGigabits := effectiveGB * bitsPerByte

	res.EffectiveDataTB = effectiveGB / gbPerTB
	res.InitialReplicationHours = effectiveGigabits / (bandwidthGbps * secondsPerHour)
	res.DeltaSyncHours = res.InitialReplicationHours * target.ChangeRatePercent * float64(target.DeltaSyncCount)
	res.TotalReplicationHours = (res.InitialReplicationHours + res.DeltaSyncHours) * profile.ReplicationMultiplier

	res.MigrationWaves = ceilDiv(len(vms), effectiveParallelism(parallelMigrations, profile, target))
	res.CutoverHours = c.cutoverHoursPerWave * float64(res.MigrationWaves)
	res.TotalHours = res.TotalReplicationHours + res.CutoverHours

	res.ReplicationDays = res.TotalReplicationHours / hoursPerDay
	res.CutoverDays = res.CutoverHours / c.operationalWindowHours
	res.TotalDays = res.ReplicationDays + res.CutoverDays

	return res, nil
}

// effectiveParallelism scales the requested parallelism by the strategy and caps it by the target.
func effectiveParallelism(requested int, profile estimation.StrategyProfile, target estimation.TargetProfile) int {
	n := int(math.Floor(float64(requested) * profile.ParallelFactor))
	if target.MaxParallelMigrations > 0 && n > target.MaxParallelMigrations {
		n = target.MaxParallelMigrations
	}
	return max(n, 1)
}
