package estimation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DurationCalculator computes the replication and cutover timeline of a VM set.
type DurationCalculator interface {
	// Name returns the human-readable name of this calculator.
	Name() string
	Calculate(vms []VM, target TargetProfile, strategy Strategy, parallelMigrations int) (DurationBreakdown, error)
}

// CostCalculator computes the one-time migration cost and the monthly runtime cost of a VM set.
type CostCalculator interface {
	Name() string
	Calculate(vms []VM, target TargetProfile, strategy Strategy) (CostBreakdown, error)
}

// RiskInput carries the scenario inputs and the calculator outputs the risk assessor consumes.
type RiskInput struct {
	VMCount  int
	Strategy Strategy
	Target   TargetProfile
	Duration DurationBreakdown
	Cost     CostBreakdown
}

// RiskAssessor classifies a scenario into a RiskLevel.
type RiskAssessor interface {
	Name() string
	Assess(ctx context.Context, in RiskInput) (RiskAssessment, error)
}

// ScoreInput carries everything the recommendation scorer consumes.
type ScoreInput struct {
	Cost             CostBreakdown
	Duration         DurationBreakdown
	Risk             RiskAssessment
	SLAUptimePercent float64
}

// RecommendationScorer turns the other outputs into a 0-100 score.
// A nil Reference means the scenario is scored standalone against absolute ceilings.
type RecommendationScorer interface {
	Name() string
	Score(in ScoreInput, ref *Reference) Recommendation
}

// EmptySelectionWarning is reported in Outputs.Warnings when no VM was resolved for a scenario.
const EmptySelectionWarning = "empty selection: no virtual machines were resolved for this scenario"

// Engine orchestrates the calculators of one evaluation:
// duration and cost (independent), then risk, then score.
type Engine struct {
	duration DurationCalculator
	cost     CostCalculator
	risk     RiskAssessor
	scorer   RecommendationScorer
}

func NewEngine(duration DurationCalculator, cost CostCalculator, risk RiskAssessor, scorer RecommendationScorer) *Engine {
	return &Engine{
		duration: duration,
		cost:     cost,
		risk:     risk,
		scorer:   scorer,
	}
}

// partial is the output of the calculator stage, before risk and score.
type partial struct {
	duration DurationBreakdown
	cost     CostBreakdown
}

// Evaluate runs a standalone evaluation. Either every output is returned or an error is.
func (e *Engine) Evaluate(in Input) (Outputs, error) {
	p, err := e.calculate(in)
	if err != nil {
		return Outputs{}, err
	}
	return e.finish(context.Background(), in, p, nil)
}

// EvaluateAll evaluates several inputs concurrently. Cost and duration are normalized against
// the most expensive and the longest scenario of the batch.
func (e *Engine) EvaluateAll(ctx context.Context, inputs []Input) ([]Outputs, error) {
	partials := make([]partial, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := e.calculate(inputs[i])
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ref := &Reference{}
	for _, p := range partials {
		ref.MaxCost = max(ref.MaxCost, p.cost.ProjectedTotal)
		ref.MaxDays = max(ref.MaxDays, p.duration.TotalDays)
	}

	results := make([]Outputs, len(inputs))
	for i := range inputs {
		out, err := e.finish(ctx, inputs[i], partials[i], ref)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

func (e *Engine) calculate(in Input) (partial, error) {
	if err := in.Target.Validate(); err != nil {
		return partial{}, err
	}
	if err := CheckCompatibility(in.Strategy, in.Target); err != nil {
		return partial{}, err
	}
	if in.ParallelMigrations < 1 {
		return partial{}, NewErrInvalidConfiguration("parallel migrations must be >= 1, got %d", in.ParallelMigrations)
	}
	if err := ValidateVMs(in.VMs); err != nil {
		return partial{}, err
	}

	var p partial
	var g errgroup.Group
	g.Go(func() error {
		d, err := e.duration.Calculate(in.VMs, in.Target, in.Strategy, in.ParallelMigrations)
		if err != nil {
			return fmt.Errorf("%s: %w", e.duration.Name(), err)
		}
		p.duration = d
		return nil
	})
	g.Go(func() error {
		c, err := e.cost.Calculate(in.VMs, in.Target, in.Strategy)
		if err != nil {
			return fmt.Errorf("%s: %w", e.cost.Name(), err)
		}
		p.cost = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return partial{}, err
	}
	return p, nil
}

func (e *Engine) finish(ctx context.Context, in Input, p partial, ref *Reference) (Outputs, error) {
	risk, err := e.risk.Assess(ctx, RiskInput{
		VMCount:  len(in.VMs),
		Strategy: in.Strategy,
		Target:   in.Target,
		Duration: p.duration,
		Cost:     p.cost,
	})
	if err != nil {
		return Outputs{}, fmt.Errorf("%s: %w", e.risk.Name(), err)
	}
	rec := e.scorer.Score(ScoreInput{
		Cost:             p.cost,
		Duration:         p.duration,
		Risk:             risk,
		SLAUptimePercent: in.Target.SLAUptimePercent,
	}, ref)

	out := Outputs{
		VMCount:        len(in.VMs),
		Duration:       p.duration,
		Cost:           p.cost,
		Risk:           risk,
		Recommendation: rec,
	}
	if len(in.VMs) == 0 {
		out.Warnings = []string{EmptySelectionWarning}
	}
	return out, nil
}
