package cli

import (
	"errors"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation/calculators"
	"github.com/kubev2v/migration-scenario-planner/internal/inventory"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	File string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		File: "plan.yaml",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.File, "file", "f", o.File, "Path of the plan file (yaml or json)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.File == "" {
		return errors.New("a plan file is required")
	}
	return nil
}

// LoadScenarios loads the plan file and resolves its scenarios.
func (o *GlobalOptions) LoadScenarios() ([]estimation.Scenario, error) {
	plan, err := inventory.LoadPlan(o.File)
	if err != nil {
		return nil, err
	}
	return plan.Resolve()
}

// Engine returns an engine with the default calculator settings.
func (o *GlobalOptions) Engine() *estimation.Engine {
	return calculators.NewEngine(calculators.DefaultSettings())
}
