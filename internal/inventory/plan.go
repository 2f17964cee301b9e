package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// ScenarioSpec declares one scenario of a plan file.
type ScenarioSpec struct {
	Name               string   `json:"name"`
	Target             string   `json:"target"`
	Strategy           string   `json:"strategy"`
	ParallelMigrations int      `json:"parallel_migrations"`
	Selector           Selector `json:"selector"`
}

// Plan is the document read by the offline CLI: targets, a VM inventory and the scenarios to evaluate.
// The inventory is either inline (VMs) or a path relative to the plan file.
type Plan struct {
	Inventory string                     `json:"inventory,omitempty"`
	VMs       []estimation.VM            `json:"vms,omitempty"`
	Targets   []estimation.TargetProfile `json:"-"`
	Scenarios []ScenarioSpec             `json:"scenarios"`
}

type planDocument struct {
	Inventory string            `json:"inventory,omitempty"`
	VMs       []estimation.VM   `json:"vms,omitempty"`
	Targets   []json.RawMessage `json:"targets"`
	Scenarios []ScenarioSpec    `json:"scenarios"`
}

// LoadPlan reads a YAML or JSON plan file and loads the inventory it references.
func LoadPlan(path string) (*Plan, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read plan %s", path)
	}

	plan, err := ParsePlan(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse plan %s", path)
	}

	if plan.Inventory != "" {
		invPath := plan.Inventory
		if !filepath.IsAbs(invPath) {
			invPath = filepath.Join(filepath.Dir(path), invPath)
		}
		vms, err := LoadVMs(invPath)
		if err != nil {
			return nil, err
		}
		plan.VMs = append(plan.VMs, vms...)
		if err := Validate(plan.VMs); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// ParsePlan decodes a plan document. Target fields left out take the profile defaults.
func ParsePlan(content []byte) (*Plan, error) {
	var doc planDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid plan document")
	}

	plan := &Plan{
		Inventory: doc.Inventory,
		VMs:       doc.VMs,
		Targets:   make([]estimation.TargetProfile, 0, len(doc.Targets)),
		Scenarios: doc.Scenarios,
	}
	if plan.VMs == nil {
		plan.VMs = []estimation.VM{}
	}

	for i, raw := range doc.Targets {
		target, err := parseTarget(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "target %d", i)
		}
		plan.Targets = append(plan.Targets, target)
	}

	if err := Validate(plan.VMs); err != nil {
		return nil, err
	}
	return plan, nil
}

func parseTarget(raw json.RawMessage) (estimation.TargetProfile, error) {
	target := estimation.NewTargetProfile("", "")
	if err := json.Unmarshal(raw, &target); err != nil {
		return estimation.TargetProfile{}, err
	}
	platform, err := estimation.ParsePlatform(string(target.Platform))
	if err != nil {
		return estimation.TargetProfile{}, err
	}
	target.Platform = platform
	return target, target.Validate()
}

// Target returns the target profile with the given name.
func (p *Plan) Target(name string) (estimation.TargetProfile, bool) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return estimation.TargetProfile{}, false
}

// Resolve turns every scenario spec into an unevaluated scenario with its VM selection applied.
// A parallel migrations value of 0 falls back to the target's maximum.
func (p *Plan) Resolve() ([]estimation.Scenario, error) {
	scenarios := make([]estimation.Scenario, 0, len(p.Scenarios))
	seen := map[string]struct{}{}
	for _, spec := range p.Scenarios {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, estimation.NewErrInvalidConfiguration("scenario has no name")
		}
		if _, dup := seen[name]; dup {
			return nil, estimation.NewErrInvalidConfiguration("scenario %q is declared twice", name)
		}
		seen[name] = struct{}{}

		target, ok := p.Target(spec.Target)
		if !ok {
			return nil, estimation.NewErrInvalidConfiguration("scenario %q references unknown target %q", name, spec.Target)
		}
		strategy, err := estimation.ParseStrategy(spec.Strategy)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %q", name)
		}

		parallel := spec.ParallelMigrations
		if parallel == 0 {
			parallel = target.MaxParallelMigrations
		}

		scenarios = append(scenarios, estimation.Scenario{
			Name:               name,
			Criteria:           spec.Selector.String(),
			Target:             target,
			Strategy:           strategy,
			ParallelMigrations: parallel,
			VMs:                spec.Selector.Select(p.VMs),
		})
	}
	return scenarios, nil
}
