package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kubev2v/migration-scenario-planner/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type VersionOptions struct {
	Output string
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print Planner version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
}

func (o *VersionOptions) Run(ctx context.Context, out io.Writer) error {
	versionInfo := version.Get()
	if o.Output == "" || o.Output == tableFormat {
		fmt.Fprintf(out, "Planner Version: %s\n", versionInfo.String())
		return nil
	}
	return printOutput(out, o.Output, versionInfo, func(w *tabwriter.Writer) {})
}
