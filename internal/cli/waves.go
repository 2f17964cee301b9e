package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation/waves"
	"github.com/kubev2v/migration-scenario-planner/internal/service/mappers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type WavesOptions struct {
	GlobalOptions

	Output      string
	Scenario    string
	WaveSize    int
	Ordering    string
	CustomOrder []string
	DependsOn   []string
}

func DefaultWavesOptions() *WavesOptions {
	return &WavesOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Ordering:      string(waves.OrderingSizeAscending),
	}
}

func NewCmdWaves() *cobra.Command {
	o := DefaultWavesOptions()
	cmd := &cobra.Command{
		Use:   "waves",
		Short: "Split the VMs of a scenario into migration waves.",
		Example: "  planner waves -f plan.yaml --scenario cloud --wave-size 10\n" +
			"  planner waves -f plan.yaml --ordering CUSTOM --custom-order vm-2,vm-1 --depends-on 2=1",
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

func (o *WavesOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
	fs.StringVarP(&o.Scenario, "scenario", "s", o.Scenario, "Scenario to plan. Required when the plan declares more than one")
	fs.IntVar(&o.WaveSize, "wave-size", o.WaveSize, "Maximum VMs per wave. 0 uses the scenario's parallel migrations")
	fs.StringVar(&o.Ordering, "ordering", o.Ordering, fmt.Sprintf("Wave ordering. One of: (%s, %s, %s).",
		waves.OrderingSizeAscending, waves.OrderingCriticalityAscending, waves.OrderingCustom))
	fs.StringSliceVar(&o.CustomOrder, "custom-order", o.CustomOrder, "Complete VM id order used by the CUSTOM ordering")
	fs.StringArrayVar(&o.DependsOn, "depends-on", o.DependsOn, "Wave dependency override as WAVE=DEP[,DEP...]. Can be repeated")
}

func (o *WavesOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *WavesOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := validateOutput(o.Output); err != nil {
		return err
	}
	if o.WaveSize < 0 {
		return fmt.Errorf("wave size must be >= 0, got %d", o.WaveSize)
	}
	ordering, err := waves.ParseOrdering(o.Ordering)
	if err != nil {
		return err
	}
	if ordering == waves.OrderingCustom && len(o.CustomOrder) == 0 {
		return fmt.Errorf("--custom-order is required with the %s ordering", waves.OrderingCustom)
	}
	if ordering != waves.OrderingCustom && len(o.CustomOrder) > 0 {
		return fmt.Errorf("--custom-order requires the %s ordering", waves.OrderingCustom)
	}
	_, err = parseDependencies(o.DependsOn)
	return err
}

func (o *WavesOptions) Run(ctx context.Context, out io.Writer) error {
	scenarios, err := o.LoadScenarios()
	if err != nil {
		return err
	}
	scenario, err := pickScenario(scenarios, o.Scenario)
	if err != nil {
		return err
	}

	deps, err := parseDependencies(o.DependsOn)
	if err != nil {
		return err
	}
	opts, err := mappers.WaveForm{
		WaveSize:     o.WaveSize,
		Ordering:     o.Ordering,
		CustomOrder:  o.CustomOrder,
		Dependencies: deps,
	}.ToOptions(scenario.ParallelMigrations)
	if err != nil {
		return err
	}

	generated, err := waves.Generate(scenario.VMs, opts)
	if err != nil {
		return fmt.Errorf("generating waves for scenario %q: %w", scenario.Name, err)
	}
	return printOutput(out, o.Output, generated, func(w *tabwriter.Writer) {
		printWavesTable(w, generated...)
	})
}

func pickScenario(scenarios []estimation.Scenario, name string) (estimation.Scenario, error) {
	if name == "" {
		if len(scenarios) != 1 {
			return estimation.Scenario{}, fmt.Errorf("the plan declares %d scenarios, select one with --scenario", len(scenarios))
		}
		return scenarios[0], nil
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return estimation.Scenario{}, fmt.Errorf("scenario %q is not declared in the plan", name)
}

// parseDependencies reads WAVE=DEP[,DEP...] overrides. No override keeps the sequential default.
func parseDependencies(values []string) (map[int][]int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	deps := make(map[int][]int, len(values))
	for _, v := range values {
		key, list, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid dependency %q, expected WAVE=DEP[,DEP...]", v)
		}
		wave, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("invalid wave number in %q: %w", v, err)
		}
		parents := []int{}
		for _, p := range strings.Split(list, ",") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("invalid dependency in %q: %w", v, err)
			}
			parents = append(parents, n)
		}
		if _, ok := deps[wave]; !ok {
			deps[wave] = []int{}
		}
		deps[wave] = append(deps[wave], parents...)
	}
	return deps, nil
}

func printWavesTable(w *tabwriter.Writer, ws ...estimation.Wave) {
	fmt.Fprintln(w, "WAVE\tVMS\tSTORAGE_GB\tDEPENDS_ON\tSTATUS")
	for _, wave := range ws {
		deps := make([]string, 0, len(wave.DependsOn))
		for _, d := range wave.DependsOn {
			deps = append(deps, strconv.Itoa(d))
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n",
			wave.Number,
			strings.Join(wave.VMIDs, ","),
			wave.StorageGB,
			strings.Join(deps, ","),
			wave.Status,
		)
	}
}
