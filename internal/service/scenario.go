package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation/waves"
	"github.com/kubev2v/migration-scenario-planner/internal/events"
	"github.com/kubev2v/migration-scenario-planner/internal/inventory"
	"github.com/kubev2v/migration-scenario-planner/internal/service/mappers"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"github.com/kubev2v/migration-scenario-planner/pkg/log"
	"github.com/kubev2v/migration-scenario-planner/pkg/metrics"
)

// EventPublisher queues a scenario lifecycle event. Implemented by events.EventProducer.
type EventPublisher interface {
	Publish(ctx context.Context, kind string, payload any) error
}

// ScenarioService runs the estimation engine on stored scenarios and persists the outputs.
// Outputs are always written as a whole: a failed evaluation leaves the previous ones untouched.
type ScenarioService struct {
	store     store.Store
	engine    *estimation.Engine
	publisher EventPublisher
	logger    *log.StructuredLogger
}

func NewScenarioService(store store.Store, engine *estimation.Engine, publisher EventPublisher) *ScenarioService {
	return &ScenarioService{
		store:     store,
		engine:    engine,
		publisher: publisher,
		logger:    log.NewDebugLogger("scenario_service"),
	}
}

func (ss *ScenarioService) ListScenarios(ctx context.Context, filter mappers.ScenarioFilter) (model.ScenarioList, error) {
	tracer := ss.logger.WithContext(ctx).Operation("list_scenarios").
		WithString("target", filter.TargetName).
		WithString("strategy", filter.Strategy).
		WithString("name_like", filter.NameLike).
		WithInt("limit", filter.Limit).
		WithInt("offset", filter.Offset).
		Build()

	storeFilter := store.NewScenarioQueryFilter()
	if filter.TargetName != "" {
		storeFilter = storeFilter.ByTargetName(filter.TargetName)
	}
	if filter.Strategy != "" {
		strategy, err := estimation.ParseStrategy(filter.Strategy)
		if err != nil {
			return nil, err
		}
		storeFilter = storeFilter.ByStrategy(string(strategy))
	}
	if filter.NameLike != "" {
		storeFilter = storeFilter.WithNameLike(filter.NameLike)
	}
	if filter.Evaluated != nil {
		storeFilter = storeFilter.ByEvaluated(*filter.Evaluated)
	}

	opts := store.NewScenarioQueryOptions().WithSortOrder(store.SortByCreatedTime)
	if filter.Limit > 0 {
		opts = opts.WithLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts = opts.WithOffset(filter.Offset)
	}

	scenarios, err := ss.store.Scenario().List(ctx, storeFilter, opts)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	tracer.Success().WithInt("count", len(scenarios)).Log()
	return scenarios, nil
}

func (ss *ScenarioService) GetScenario(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	scenario, err := ss.store.Scenario().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return scenario, nil
}

// CreateScenario resolves the target and stores a snapshot of it with the scenario.
func (ss *ScenarioService) CreateScenario(ctx context.Context, form mappers.ScenarioCreateForm) (*model.Scenario, error) {
	tracer := ss.logger.WithContext(ctx).Operation("create_scenario").
		WithString("name", form.Name).
		WithString("target", form.TargetName).
		WithString("strategy", form.Strategy).
		WithInt("vm_count", len(form.VMs)).
		Build()

	strategy, err := estimation.ParseStrategy(form.Strategy)
	if err != nil {
		return nil, err
	}
	if form.ParallelMigrations < 0 {
		return nil, estimation.NewErrInvalidConfiguration("parallel migrations must be >= 1, got %d", form.ParallelMigrations)
	}
	if err := inventory.Validate(form.VMs); err != nil {
		return nil, err
	}

	target, err := ss.store.Target().Get(ctx, form.TargetName)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTargetNotFound(form.TargetName)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	tracer.Step("target_resolved").WithString("platform", target.Platform).Log()

	profile := target.ToEstimation()
	if err := estimation.CheckCompatibility(strategy, profile); err != nil {
		return nil, err
	}

	scenario, err := ss.store.Scenario().Create(ctx, model.NewScenario(form.ToScenario(profile, strategy)))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateResource("scenario", form.Name)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}

	tracer.Success().WithUUID("scenario_id", scenario.ID).Log()
	return scenario, nil
}

func (ss *ScenarioService) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	tracer := ss.logger.WithContext(ctx).Operation("delete_scenario").
		WithUUID("scenario_id", id).
		Build()

	scenario, err := ss.GetScenario(ctx, id)
	if err != nil {
		return err
	}

	ctx, err = ss.store.NewTransactionContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	if err := ss.store.Scenario().Delete(ctx, id); err != nil {
		tracer.Error(err).Log()
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if _, err := store.Commit(ctx); err != nil {
		return err
	}

	ss.publish(ctx, events.ScenarioDeletedKind, events.ScenarioDeletedEvent{ScenarioID: id, Name: scenario.Name})
	tracer.Success().Log()
	return nil
}

// Evaluate scores the scenario standalone and replaces its outputs.
func (ss *ScenarioService) Evaluate(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	tracer := ss.logger.WithContext(ctx).Operation("evaluate_scenario").
		WithUUID("scenario_id", id).
		Build()

	stored, err := ss.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	scenario := stored.ToEstimation()
	tracer.Step("scenario_loaded").WithInt("vm_count", len(scenario.VMs)).Log()

	start := time.Now()
	outputs, err := ss.engine.Evaluate(scenario.Input())
	metrics.ObserveEvaluationDuration(metrics.ModeStandalone, time.Since(start).Seconds())
	if err != nil {
		metrics.IncreaseEvaluationsTotalMetric(string(scenario.Strategy), metrics.ModeStandalone, resultLabel(err))
		tracer.Error(err).Log()
		return nil, err
	}

	updated, err := ss.store.Scenario().UpdateOutputs(ctx, id, outputs)
	if err != nil {
		metrics.IncreaseEvaluationsTotalMetric(string(scenario.Strategy), metrics.ModeStandalone, metrics.ResultFailure)
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to store outputs: %w", err)
	}

	ss.recordEvaluation(ctx, scenario, outputs, metrics.ModeStandalone)
	tracer.Success().
		WithString("risk_level", string(outputs.Risk.Level)).
		WithFloat("score", outputs.Recommendation.Score).
		Log()
	return updated, nil
}

// EvaluateMany evaluates the scenarios together: cost and duration are normalized against the
// most expensive and the longest of them. Either every scenario gets its outputs or none does.
func (ss *ScenarioService) EvaluateMany(ctx context.Context, ids []uuid.UUID) (model.ScenarioList, error) {
	tracer := ss.logger.WithContext(ctx).Operation("evaluate_scenarios").
		WithInt("count", len(ids)).
		Build()

	if len(ids) == 0 {
		return model.ScenarioList{}, nil
	}
	if err := checkUniqueIDs(ids); err != nil {
		return nil, err
	}

	scenarios := make([]estimation.Scenario, 0, len(ids))
	inputs := make([]estimation.Input, 0, len(ids))
	for _, id := range ids {
		stored, err := ss.GetScenario(ctx, id)
		if err != nil {
			return nil, err
		}
		s := stored.ToEstimation()
		scenarios = append(scenarios, s)
		inputs = append(inputs, s.Input())
	}

	start := time.Now()
	outputs, err := ss.engine.EvaluateAll(ctx, inputs)
	metrics.ObserveEvaluationDuration(metrics.ModeBatch, time.Since(start).Seconds())
	if err != nil {
		for _, s := range scenarios {
			metrics.IncreaseEvaluationsTotalMetric(string(s.Strategy), metrics.ModeBatch, resultLabel(err))
		}
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("evaluated").Log()

	txCtx, err := ss.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(txCtx)
	}()

	result := make(model.ScenarioList, 0, len(ids))
	for i, id := range ids {
		updated, err := ss.store.Scenario().UpdateOutputs(txCtx, id, outputs[i])
		if err != nil {
			tracer.Error(err).Log()
			return nil, fmt.Errorf("failed to store outputs of scenario %s: %w", id, err)
		}
		result = append(result, *updated)
	}
	if _, err := store.Commit(txCtx); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	for i, s := range scenarios {
		ss.recordEvaluation(ctx, s, outputs[i], metrics.ModeBatch)
	}
	tracer.Success().Log()
	return result, nil
}

// GenerateWaves partitions the VMs of an evaluated scenario and replaces its waves.
func (ss *ScenarioService) GenerateWaves(ctx context.Context, id uuid.UUID, form mappers.WaveForm) ([]estimation.Wave, error) {
	tracer := ss.logger.WithContext(ctx).Operation("generate_waves").
		WithUUID("scenario_id", id).
		WithInt("wave_size", form.WaveSize).
		WithString("ordering", form.Ordering).
		Build()

	stored, err := ss.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	scenario := stored.ToEstimation()
	if !scenario.Evaluated() {
		return nil, estimation.NewErrIncompleteScenario(scenario.Name)
	}

	opts, err := form.ToOptions(scenario.ParallelMigrations)
	if err != nil {
		return nil, err
	}

	generated, err := waves.Generate(scenario.VMs, opts)
	if err != nil {
		metrics.ObserveWaveGeneration(string(opts.Ordering), resultLabel(err), 0)
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("generated").WithInt("waves", len(generated)).Log()

	txCtx, err := ss.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(txCtx)
	}()

	if _, err := ss.store.Wave().Replace(txCtx, id, model.NewWaves(id, generated)); err != nil {
		metrics.ObserveWaveGeneration(string(opts.Ordering), metrics.ResultFailure, 0)
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to store waves: %w", err)
	}
	if _, err := store.Commit(txCtx); err != nil {
		return nil, err
	}

	metrics.ObserveWaveGeneration(string(opts.Ordering), metrics.ResultSuccess, len(generated))
	ss.publish(ctx, events.WavesGeneratedKind, events.WavesGeneratedEvent{
		ScenarioID: id,
		Name:       scenario.Name,
		Waves:      len(generated),
		WaveSize:   opts.WaveSize,
		Ordering:   string(opts.Ordering),
	})
	tracer.Success().Log()
	return generated, nil
}

func (ss *ScenarioService) ListWaves(ctx context.Context, id uuid.UUID) ([]estimation.Wave, error) {
	if _, err := ss.GetScenario(ctx, id); err != nil {
		return nil, err
	}
	stored, err := ss.store.Wave().List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	return stored.ToEstimation(), nil
}

// Compare ranks evaluated scenarios. Nothing is recomputed. An empty id list compares every
// evaluated scenario.
func (ss *ScenarioService) Compare(ctx context.Context, ids []uuid.UUID) ([]estimation.ComparisonRow, error) {
	tracer := ss.logger.WithContext(ctx).Operation("compare_scenarios").
		WithInt("count", len(ids)).
		Build()

	var stored model.ScenarioList
	if len(ids) == 0 {
		list, err := ss.store.Scenario().List(ctx, store.NewScenarioQueryFilter().ByEvaluated(true), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		stored = list
	} else {
		if err := checkUniqueIDs(ids); err != nil {
			return nil, err
		}
		for _, id := range ids {
			s, err := ss.GetScenario(ctx, id)
			if err != nil {
				return nil, err
			}
			stored = append(stored, *s)
		}
	}

	rows, err := estimation.Compare(stored.ToEstimation())
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithInt("rows", len(rows)).Log()
	return rows, nil
}

func (ss *ScenarioService) recordEvaluation(ctx context.Context, s estimation.Scenario, out estimation.Outputs, mode string) {
	metrics.IncreaseEvaluationsTotalMetric(string(s.Strategy), mode, metrics.ResultSuccess)
	metrics.ObserveOutcome(string(out.Risk.Level), out.Recommendation.Score)

	ss.publish(ctx, events.ScenarioEvaluatedKind, events.ScenarioEvaluatedEvent{
		ScenarioID:     s.ID,
		Name:           s.Name,
		Target:         s.Target.Name,
		Strategy:       string(s.Strategy),
		VMCount:        out.VMCount,
		TotalDays:      out.Duration.TotalDays,
		ProjectedTotal: out.Cost.ProjectedTotal,
		RiskLevel:      string(out.Risk.Level),
		Score:          out.Recommendation.Score,
		Recommended:    out.Recommendation.Recommended,
		Batch:          mode == metrics.ModeBatch,
	})
}

func (ss *ScenarioService) publish(ctx context.Context, kind string, payload any) {
	if ss.publisher == nil {
		return
	}
	if err := ss.publisher.Publish(ctx, kind, payload); err != nil {
		ss.logger.WithContext(ctx).Operation("publish_event").WithString("kind", kind).Build().Error(err).Log()
	}
}

func resultLabel(err error) string {
	if estimation.IsInvalidConfiguration(err) || estimation.IsInvalidDependencyGraph(err) {
		return metrics.ResultInvalid
	}
	return metrics.ResultFailure
}

func checkUniqueIDs(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return estimation.NewErrInvalidConfiguration("scenario %s is listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
