package metrics

import (
	"context"
	"fmt"

	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type plannerStatsCollector struct {
	store               store.Store
	targetsByPlatform   *prometheus.Desc
	scenariosByStrategy *prometheus.Desc
	scenariosTotal      *prometheus.Desc
	scenariosEvaluated  *prometheus.Desc
	wavesTotal          *prometheus.Desc
}

// NewPlannerStatsCollector exposes the content of the store as gauges, computed on every scrape.
func NewPlannerStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_store_%s", scenarioPlanner, name)
	}

	return &plannerStatsCollector{
		store: s,
		targetsByPlatform: prometheus.NewDesc(
			fqName("targets_total"),
			"Total number of target profiles by platform.",
			[]string{"platform"},
			prometheus.Labels{},
		),
		scenariosByStrategy: prometheus.NewDesc(
			fqName("scenarios_by_strategy_total"),
			"Total number of scenarios by strategy.",
			[]string{strategyLabel},
			prometheus.Labels{},
		),
		scenariosTotal: prometheus.NewDesc(
			fqName("scenarios_total"),
			"Total number of scenarios.",
			nil,
			prometheus.Labels{},
		),
		scenariosEvaluated: prometheus.NewDesc(
			fqName("scenarios_evaluated_total"),
			"Total number of scenarios carrying outputs.",
			nil,
			prometheus.Labels{},
		),
		wavesTotal: prometheus.NewDesc(
			fqName("waves_total"),
			"Total number of stored waves.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *plannerStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.targetsByPlatform
	ch <- c.scenariosByStrategy
	ch <- c.scenariosTotal
	ch <- c.scenariosEvaluated
	ch <- c.wavesTotal
}

// Collect implements Collector.
func (c *plannerStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("store_collector").Errorf("failed to collect planner statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.scenariosTotal, prometheus.GaugeValue, float64(stats.TotalScenarios))
	ch <- prometheus.MustNewConstMetric(c.scenariosEvaluated, prometheus.GaugeValue, float64(stats.EvaluatedScenarios))
	ch <- prometheus.MustNewConstMetric(c.wavesTotal, prometheus.GaugeValue, float64(stats.TotalWaves))

	for platform, total := range stats.TargetsByPlatform {
		ch <- prometheus.MustNewConstMetric(c.targetsByPlatform, prometheus.GaugeValue, float64(total), platform)
	}

	for strategy, total := range stats.ScenariosByStrategy {
		ch <- prometheus.MustNewConstMetric(c.scenariosByStrategy, prometheus.GaugeValue, float64(total), strategy)
	}
}
