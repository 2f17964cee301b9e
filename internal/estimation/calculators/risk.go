package calculators

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
	"github.com/open-policy-agent/opa/v1/storage/inmem"
)

// Risk factor names, in rule-declaration order.
const (
	FactorLargeVMCount          = "large VM count"
	FactorLargeDataVolume       = "large data volume"
	FactorComplexStrategy       = "complex strategy"
	FactorDowntimeRequired      = "downtime required"
	FactorDataSovereignty       = "data sovereignty constraint"
	FactorInsufficientBandwidth = "insufficient bandwidth"
	FactorExtendedWindow        = "extended migration window"
)

const (
	DefaultLargeVMCount       = 100
	DefaultLargeDataTB        = 10.0
	DefaultDowntimeVMCount    = 20
	DefaultExtendedWindowDays = 30.0
)

//go:embed risk.rego
var riskPolicy string

// Compile-time assertion that Risk implements the RiskAssessor interface.
var _ estimation.RiskAssessor = (*Risk)(nil)

// riskRule is one entry of the ordering table. The conditions themselves live in risk.rego.
type riskRule struct {
	factor string
	points int
}

var riskRules = []riskRule{
	{FactorLargeVMCount, 1},
	{FactorLargeDataVolume, 1},
	{FactorComplexStrategy, 1},
	{FactorDowntimeRequired, 1},
	{FactorDataSovereignty, 1},
	{FactorInsufficientBandwidth, 1},
	{FactorExtendedWindow, 1},
}

// Risk is a rule-based classifier backed by a Rego policy.
type Risk struct {
	largeVMCount       int
	largeDataTB        float64
	downtimeVMCount    int
	extendedWindowDays float64
	query              rego.PreparedEvalQuery
}

type RiskOption func(*Risk)

func WithLargeVMCount(n int) RiskOption {
	return func(r *Risk) { r.largeVMCount = n }
}

func WithLargeDataTB(tb float64) RiskOption {
	return func(r *Risk) { r.largeDataTB = tb }
}

func WithDowntimeVMCount(n int) RiskOption {
	return func(r *Risk) { r.downtimeVMCount = n }
}

func WithExtendedWindowDays(days float64) RiskOption {
	return func(r *Risk) { r.extendedWindowDays = days }
}

// NewRisk compiles the embedded policy once with the configured thresholds as data.
// It panics if the policy does not compile.
func NewRisk(opts ...RiskOption) *Risk {
	r := &Risk{
		largeVMCount:       DefaultLargeVMCount,
		largeDataTB:        DefaultLargeDataTB,
		downtimeVMCount:    DefaultDowntimeVMCount,
		extendedWindowDays: DefaultExtendedWindowDays,
	}
	for _, opt := range opts {
		opt(r)
	}

	store := inmem.NewFromObject(map[string]interface{}{
		"planner": map[string]interface{}{
			"thresholds": map[string]interface{}{
				"large_vm_count":       r.largeVMCount,
				"large_data_tb":        r.largeDataTB,
				"downtime_vm_count":    r.downtimeVMCount,
				"extended_window_days": r.extendedWindowDays,
			},
		},
	})

	query, err := rego.New(
		rego.Query("data.planner.risk.factors"),
		rego.Module("risk.rego", riskPolicy),
		rego.Store(store),
		rego.SetRegoVersion(ast.RegoV1),
	).PrepareForEval(context.Background())
	if err != nil {
		panic(fmt.Sprintf("risk policy: %v", err))
	}
	r.query = query
	return r
}

func (r *Risk) Name() string { return "Migration Risk" }

// Assess evaluates the policy. Factors are returned in rule-declaration order.
func (r *Risk) Assess(ctx context.Context, in estimation.RiskInput) (estimation.RiskAssessment, error) {
	fired, err := r.evaluate(ctx, in)
	if err != nil {
		return estimation.RiskAssessment{}, err
	}

	res := estimation.RiskAssessment{Factors: []string{}}
	for _, rule := range riskRules {
		if _, ok := fired[rule.factor]; ok {
			res.Points += rule.points
			res.Factors = append(res.Factors, rule.factor)
			delete(fired, rule.factor)
		}
	}
	if len(fired) > 0 {
		return estimation.RiskAssessment{}, fmt.Errorf("risk policy returned undeclared factors %v", fired)
	}
	res.Level = LevelForPoints(res.Points)
	return res, nil
}

func (r *Risk) evaluate(ctx context.Context, in estimation.RiskInput) (map[string]struct{}, error) {
	flags := in.Target.ComplianceFlags
	if flags == nil {
		flags = []string{}
	}
	input := map[string]interface{}{
		"vm_count":                    in.VMCount,
		"strategy":                    string(in.Strategy),
		"original_data_tb":            in.Duration.OriginalDataTB,
		"total_days":                  in.Duration.TotalDays,
		"supports_live_migration":     in.Target.SupportsLiveMigration,
		"compliance_flags":            flags,
		"effective_bandwidth_mbps":    in.Target.EffectiveBandwidthMbps(),
		"min_required_bandwidth_mbps": in.Target.MinRequiredBandwidthMbps,
	}

	resultSet, err := r.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("risk policy evaluation failed: %w", err)
	}

	fired := map[string]struct{}{}
	if len(resultSet) == 0 || len(resultSet[0].Expressions) == 0 {
		return fired, nil
	}
	raw, ok := resultSet[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T from risk policy", resultSet[0].Expressions[0].Value)
	}
	for _, v := range raw {
		factor, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected factor type %T from risk policy", v)
		}
		fired[factor] = struct{}{}
	}
	return fired, nil
}

// LevelForPoints maps severity points to a level: 0 LOW, 1-2 MEDIUM, 3-4 HIGH, 5+ CRITICAL.
func LevelForPoints(points int) estimation.RiskLevel {
	switch {
	case points <= 0:
		return estimation.RiskLevelLow
	case points <= 2:
		return estimation.RiskLevelMedium
	case points <= 4:
		return estimation.RiskLevelHigh
	default:
		return estimation.RiskLevelCritical
	}
}
