package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	"github.com/kubev2v/migration-scenario-planner/pkg/log"
)

type TargetService struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewTargetService(store store.Store) *TargetService {
	return &TargetService{
		store:  store,
		logger: log.NewDebugLogger("target_service"),
	}
}

func (ts *TargetService) ListTargets(ctx context.Context, platform string) (model.TargetList, error) {
	tracer := ts.logger.WithContext(ctx).Operation("list_targets").
		WithString("platform", platform).
		Build()

	filter := store.NewTargetQueryFilter()
	if platform != "" {
		p, err := estimation.ParsePlatform(platform)
		if err != nil {
			return nil, err
		}
		filter = filter.ByPlatform(string(p))
	}

	targets, err := ts.store.Target().List(ctx, filter)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	tracer.Success().WithInt("count", len(targets)).Log()
	return targets, nil
}

func (ts *TargetService) GetTarget(ctx context.Context, name string) (*model.Target, error) {
	tracer := ts.logger.WithContext(ctx).Operation("get_target").
		WithString("name", name).
		Build()

	target, err := ts.store.Target().Get(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTargetNotFound(name)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to get target: %w", err)
	}

	tracer.Success().WithString("platform", target.Platform).Log()
	return target, nil
}

// CreateTarget validates the profile and stores it. Names are unique.
func (ts *TargetService) CreateTarget(ctx context.Context, profile estimation.TargetProfile) (*model.Target, error) {
	tracer := ts.logger.WithContext(ctx).Operation("create_target").
		WithString("name", profile.Name).
		WithString("platform", string(profile.Platform)).
		Build()

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	target, err := ts.store.Target().Create(ctx, model.NewTarget(profile))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateResource("target", profile.Name)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create target: %w", err)
	}

	tracer.Success().Log()
	return target, nil
}

// UpdateTarget replaces the profile. Scenarios keep the snapshot taken when they were created.
func (ts *TargetService) UpdateTarget(ctx context.Context, profile estimation.TargetProfile) (*model.Target, error) {
	tracer := ts.logger.WithContext(ctx).Operation("update_target").
		WithString("name", profile.Name).
		Build()

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	target, err := ts.store.Target().Update(ctx, model.NewTarget(profile))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTargetNotFound(profile.Name)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to update target: %w", err)
	}

	tracer.Success().Log()
	return target, nil
}

func (ts *TargetService) DeleteTarget(ctx context.Context, name string) error {
	tracer := ts.logger.WithContext(ctx).Operation("delete_target").
		WithString("name", name).
		Build()

	if _, err := ts.store.Target().Get(ctx, name); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrTargetNotFound(name)
		}
		return err
	}

	if err := ts.store.Target().Delete(ctx, name); err != nil {
		tracer.Error(err).Log()
		return fmt.Errorf("failed to delete target: %w", err)
	}

	tracer.Success().Log()
	return nil
}
