package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/internal/analysis"
	"github.com/cothinklab/cothink/types"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the collected dataset and render the research report",
	Long: `Analyze all collected interaction and survey records: summary
statistics, per-culture interaction patterns, co-thinking construct
frequencies, quality distributions, and foundation alignment. The result
is rendered as a Markdown research report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		records, err := st.ListInteractions()
		if err != nil {
			return err
		}
		surveys, err := st.ListSurveys()
		if err != nil {
			return err
		}

		result, err := analysis.AnalyzeDataset(records, surveys)
		if err != nil && !errors.Is(err, types.ErrNoRecords) {
			return err
		}

		report, err := analysis.RenderReport(result, time.Now())
		if err != nil {
			return err
		}

		if analyzeOutput != "" {
			if err := os.WriteFile(analyzeOutput, []byte(report), 0o644); err != nil {
				return fmt.Errorf("write report to %s: %w", analyzeOutput, err)
			}
			fmt.Printf("Report written to %s\n", analyzeOutput)
			return nil
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
