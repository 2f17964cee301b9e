package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type EvaluateOptions struct {
	GlobalOptions

	Output    string
	Batch     bool
	Scenarios []string
}

func DefaultEvaluateOptions() *EvaluateOptions {
	return &EvaluateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdEvaluate() *cobra.Command {
	o := DefaultEvaluateOptions()
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the scenarios of a plan file.",
		Example: "  planner evaluate -f plan.yaml\n" +
			"  planner evaluate -f plan.yaml --batch -o yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EvaluateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
	fs.BoolVar(&o.Batch, "batch", o.Batch, "Score the scenarios against each other instead of the absolute ceilings")
	fs.StringSliceVarP(&o.Scenarios, "scenario", "s", o.Scenarios, "Only evaluate the named scenarios")
}

func (o *EvaluateOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EvaluateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *EvaluateOptions) Run(ctx context.Context, out io.Writer) error {
	scenarios, err := o.evaluate(ctx)
	if err != nil {
		return err
	}
	return printOutput(out, o.Output, scenarios, func(w *tabwriter.Writer) {
		printScenariosTable(w, scenarios...)
	})
}

// evaluate resolves the selected scenarios and fills their outputs.
func (o *EvaluateOptions) evaluate(ctx context.Context) ([]estimation.Scenario, error) {
	scenarios, err := o.LoadScenarios()
	if err != nil {
		return nil, err
	}
	scenarios, err = filterScenarios(scenarios, o.Scenarios)
	if err != nil {
		return nil, err
	}

	engine := o.Engine()
	if o.Batch {
		inputs := make([]estimation.Input, 0, len(scenarios))
		for _, s := range scenarios {
			inputs = append(inputs, s.Input())
		}
		outputs, err := engine.EvaluateAll(ctx, inputs)
		if err != nil {
			return nil, errors.Wrap(err, "evaluating scenarios")
		}
		for i := range scenarios {
			scenarios[i].Outputs = &outputs[i]
		}
		return scenarios, nil
	}

	for i := range scenarios {
		outputs, err := engine.Evaluate(scenarios[i].Input())
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating scenario %q", scenarios[i].Name)
		}
		scenarios[i].Outputs = &outputs
	}
	return scenarios, nil
}

// filterScenarios keeps the named scenarios in plan order. An empty list keeps them all.
func filterScenarios(scenarios []estimation.Scenario, names []string) ([]estimation.Scenario, error) {
	if len(names) == 0 {
		return scenarios, nil
	}
	declared := funk.Map(scenarios, func(s estimation.Scenario) string { return s.Name }).([]string)
	for _, name := range names {
		if !funk.ContainsString(declared, name) {
			return nil, fmt.Errorf("scenario %q is not declared in the plan", name)
		}
	}
	return funk.Filter(scenarios, func(s estimation.Scenario) bool {
		return funk.ContainsString(names, s.Name)
	}).([]estimation.Scenario), nil
}

func printScenariosTable(w *tabwriter.Writer, scenarios ...estimation.Scenario) {
	fmt.Fprintln(w, "NAME\tTARGET\tSTRATEGY\tVMS\tDAYS\tCOST\tRISK\tSCORE\tRECOMMENDED")
	for _, s := range scenarios {
		if s.Outputs == nil {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t-\t-\t-\t-\t-\n", s.Name, s.Target.Name, s.Strategy, len(s.VMs))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%s\t%.1f\t%t\n",
			s.Name,
			s.Target.Name,
			s.Strategy,
			s.Outputs.VMCount,
			s.Outputs.Duration.TotalDays,
			s.Outputs.Cost.ProjectedTotal,
			s.Outputs.Risk.Level,
			s.Outputs.Recommendation.Score,
			s.Outputs.Recommendation.Recommended,
		)
	}
}
