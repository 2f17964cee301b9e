package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	scenarioPlanner = "scenario_planner"

	// Evaluation metrics
	evaluationsTotal          = "evaluations_total"
	evaluationDurationSeconds = "evaluation_duration_seconds"
	riskLevelTotal            = "risk_level_total"
	recommendationScore       = "recommendation_score"

	// Wave metrics
	waveGenerationsTotal = "wave_generations_total"
	wavesPerPlan         = "waves_per_plan"

	// Labels
	strategyLabel = "strategy"
	resultLabel   = "result"
	modeLabel     = "mode"
	levelLabel    = "level"
	orderingLabel = "ordering"

	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailure = "failure"

	ModeStandalone = "standalone"
	ModeBatch      = "batch"
)

/**
* Metrics definition
**/
var evaluationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scenarioPlanner,
		Name:      evaluationsTotal,
		Help:      "number of scenario evaluations partitioned by strategy, mode and result",
	},
	[]string{strategyLabel, modeLabel, resultLabel},
)

var evaluationDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: scenarioPlanner,
		Name:      evaluationDurationSeconds,
		Help:      "time spent by the engine to evaluate a request",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	},
	[]string{modeLabel},
)

var riskLevelTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scenarioPlanner,
		Name:      riskLevelTotal,
		Help:      "number of evaluated scenarios per risk level",
	},
	[]string{levelLabel},
)

var recommendationScoreMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: scenarioPlanner,
		Name:      recommendationScore,
		Help:      "distribution of the recommendation scores",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	},
)

var waveGenerationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scenarioPlanner,
		Name:      waveGenerationsTotal,
		Help:      "number of wave plans generated partitioned by ordering and result",
	},
	[]string{orderingLabel, resultLabel},
)

var wavesPerPlanMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: scenarioPlanner,
		Name:      wavesPerPlan,
		Help:      "number of waves in a generated plan",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	},
)

func IncreaseEvaluationsTotalMetric(strategy, mode, result string) {
	labels := prometheus.Labels{
		strategyLabel: strategy,
		modeLabel:     mode,
		resultLabel:   result,
	}
	evaluationsTotalMetric.With(labels).Inc()
}

func ObserveEvaluationDuration(mode string, seconds float64) {
	evaluationDurationMetric.With(prometheus.Labels{modeLabel: mode}).Observe(seconds)
}

// ObserveOutcome records the risk level and the score of an evaluated scenario.
func ObserveOutcome(level string, score float64) {
	riskLevelTotalMetric.With(prometheus.Labels{levelLabel: level}).Inc()
	recommendationScoreMetric.Observe(score)
}

func ObserveWaveGeneration(ordering, result string, waves int) {
	waveGenerationsTotalMetric.With(prometheus.Labels{
		orderingLabel: ordering,
		resultLabel:   result,
	}).Inc()
	if result == ResultSuccess {
		wavesPerPlanMetric.Observe(float64(waves))
	}
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(evaluationsTotalMetric)
	prometheus.MustRegister(evaluationDurationMetric)
	prometheus.MustRegister(riskLevelTotalMetric)
	prometheus.MustRegister(recommendationScoreMetric)
	prometheus.MustRegister(waveGenerationsTotalMetric)
	prometheus.MustRegister(wavesPerPlanMetric)
}
