package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type CompareOptions struct {
	EvaluateOptions
}

func DefaultCompareOptions() *CompareOptions {
	return &CompareOptions{
		EvaluateOptions: EvaluateOptions{
			GlobalOptions: DefaultGlobalOptions(),
			Batch:         true,
		},
	}
}

func NewCmdCompare() *cobra.Command {
	o := DefaultCompareOptions()
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Evaluate the scenarios of a plan file and rank them by score.",
		Example: "  planner compare -f plan.yaml -s cloud,local",
		Args:    cobra.NoArgs,
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

func (o *CompareOptions) Bind(fs *pflag.FlagSet) {
	o.EvaluateOptions.Bind(fs)
}

func (o *CompareOptions) Run(ctx context.Context, out io.Writer) error {
	scenarios, err := o.evaluate(ctx)
	if err != nil {
		return err
	}
	rows, err := estimation.Compare(scenarios)
	if err != nil {
		return err
	}
	return printOutput(out, o.Output, rows, func(w *tabwriter.Writer) {
		printComparisonTable(w, rows...)
	})
}

func printComparisonTable(w *tabwriter.Writer, rows ...estimation.ComparisonRow) {
	fmt.Fprintln(w, "RANK\tSCENARIO\tTARGET\tSTRATEGY\tDAYS\tCOST\tRISK\tSCORE\tRECOMMENDED")
	for i, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.2f\t%s\t%.1f\t%t\n",
			i+1, r.Scenario, r.Target, r.Strategy, r.DurationDays, r.TotalCost, r.RiskLevel, r.Score, r.Recommended)
	}
}
