package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage anonymous usage telemetry",
	Long: `Manage anonymous usage telemetry. Telemetry is off by default and only
ever reports event names and aggregate counts; prompt text, agent
responses, and API keys never leave the machine.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current telemetry state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := telemetry.LoadConfig()
		if err != nil {
			return err
		}
		state := "disabled"
		if cfg.IsEnabled() {
			state = "enabled"
		}
		fmt.Printf("Telemetry is %s\n", state)
		return nil
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous usage telemetry",
	RunE:  func(cmd *cobra.Command, args []string) error { return setTelemetry(true) },
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous usage telemetry",
	RunE:  func(cmd *cobra.Command, args []string) error { return setTelemetry(false) },
}

func setTelemetry(enabled bool) error {
	cfg, err := telemetry.LoadConfig()
	if err != nil {
		return err
	}
	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	if enabled {
		fmt.Println("Telemetry enabled. Thank you for helping improve cothink.")
	} else {
		fmt.Println("Telemetry disabled.")
	}
	return nil
}

func init() {
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
	rootCmd.AddCommand(telemetryCmd)
}
