package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cothink version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cothink %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
