package calculators

import (
	"fmt"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

// Scoring weights. They sum to 1.
const (
	WeightCost     = 0.30
	WeightDuration = 0.30
	WeightRisk     = 0.25
	WeightSLA      = 0.15
)

const (
	// DefaultCostCeiling is the projected cost that scores zero when a scenario is scored standalone.
	DefaultCostCeiling = 1_000_000.0
	// DefaultDurationCeilingDays is the duration that scores zero when a scenario is scored standalone.
	DefaultDurationCeilingDays = 90.0
	// DefaultSLAFloorPercent is the uptime that scores zero on the SLA dimension.
	DefaultSLAFloorPercent = 99.0
	// RecommendationThreshold is the minimum score of a recommended scenario.
	RecommendationThreshold = 70.0
)

var riskScores = map[estimation.RiskLevel]float64{
	estimation.RiskLevelLow:      1.0,
	estimation.RiskLevelMedium:   0.7,
	estimation.RiskLevelHigh:     0.35,
	estimation.RiskLevelCritical: 0,
}

// Compile-time assertion that Recommendation implements the RecommendationScorer interface.
var _ estimation.RecommendationScorer = (*Recommendation)(nil)

// Recommendation is a weighted composite of cost, duration, risk and SLA.
// Every dimension is normalized to [0, 1] where 1 is best.
type Recommendation struct {
	costCeiling     float64
	durationCeiling float64
	slaFloor        float64
}

type RecommendationOption func(*Recommendation)

// WithCostCeiling sets the standalone cost reference. Non-positive values are ignored.
func WithCostCeiling(cost float64) RecommendationOption {
	return func(r *Recommendation) {
		if cost > 0 {
			r.costCeiling = cost
		}
	}
}

// WithDurationCeilingDays sets the standalone duration reference. Non-positive values are ignored.
func WithDurationCeilingDays(days float64) RecommendationOption {
	return func(r *Recommendation) {
		if days > 0 {
			r.durationCeiling = days
		}
	}
}

// WithSLAFloorPercent sets the uptime that scores zero. Values outside [0, 100) are ignored.
func WithSLAFloorPercent(percent float64) RecommendationOption {
	return func(r *Recommendation) {
		if percent >= 0 && percent < 100 {
			r.slaFloor = percent
		}
	}
}

func NewRecommendation(opts ...RecommendationOption) *Recommendation {
	r := Recommendation{
		costCeiling:     DefaultCostCeiling,
		durationCeiling: DefaultDurationCeilingDays,
		slaFloor:        DefaultSLAFloorPercent,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

func (r *Recommendation) Name() string { return "Recommendation" }

// Score is deterministic and monotonic: more cost, duration or risk never raises it,
// a higher SLA never lowers it.
func (r *Recommendation) Score(in estimation.ScoreInput, ref *estimation.Reference) estimation.Recommendation {
	costRef, daysRef := r.costCeiling, r.durationCeiling
	if ref != nil {
		costRef, daysRef = ref.MaxCost, ref.MaxDays
	}

	cost := relativeScore(in.Cost.ProjectedTotal, costRef)
	duration := relativeScore(in.Duration.TotalDays, daysRef)
	risk := riskScores[in.Risk.Level]
	sla := clamp01((in.SLAUptimePercent - r.slaFloor) / (100 - r.slaFloor))

	score := round2(100 * (WeightCost*cost + WeightDuration*duration + WeightRisk*risk + WeightSLA*sla))

	return estimation.Recommendation{
		Score:       score,
		Recommended: score >= RecommendationThreshold,
		Reasons: []string{
			fmt.Sprintf("cost: projected %.2f against reference %.2f (%.0f/100)", in.Cost.ProjectedTotal, costRef, cost*100),
			fmt.Sprintf("duration: %.2f days against reference %.2f days (%.0f/100)", in.Duration.TotalDays, daysRef, duration*100),
			fmt.Sprintf("risk: %s with %d factor(s) (%.0f/100)", in.Risk.Level, len(in.Risk.Factors), risk*100),
			fmt.Sprintf("sla: %.3f%% uptime (%.0f/100)", in.SLAUptimePercent, sla*100),
		},
	}
}

// relativeScore is 1 for a zero value and falls linearly to 0 at the reference.
// A zero reference means nothing to compare against, which scores 1.
func relativeScore(value, reference float64) float64 {
	if reference <= 0 {
		return 1
	}
	return 1 - clamp01(value/reference)
}
