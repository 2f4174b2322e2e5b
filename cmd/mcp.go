package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/internal/mcpserver"
	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/models"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can drive
simulations and inspect the dataset. The server exposes:
  run_scenario    run a scenario across the saved cohort
  cohort_summary  describe the cohort's diversity profile
  dataset_stats   analyze the collected dataset

The server speaks MCP over stdio and runs until the client disconnects.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q\nRun '%s --help' for usage", args[0], cmd.CommandPath(), cmd.Root().Name())
		}

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		deps := mcpserver.Deps{
			Version: version,
			Store:   st,
			NewOrchestrator: func(cohort models.Cohort) (*sim.Orchestrator, error) {
				return newOrchestrator(cmd.Context(), cohort, st)
			},
		}
		return mcpserver.Run(cmd.Context(), deps)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
