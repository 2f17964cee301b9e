package main

import (
	"os"

	"github.com/kubev2v/migration-scenario-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewPlannerCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner [flags] [options]",
		Short: "planner evaluates migration scenarios described in a plan file.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEvaluate())
	cmd.AddCommand(cli.NewCmdCompare())
	cmd.AddCommand(cli.NewCmdWaves())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
