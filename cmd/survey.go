package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/models"
)

var surveyCmd = &cobra.Command{
	Use:   "survey <survey.yaml>",
	Short: "Administer a survey to the cohort",
	Long: `Administer a survey to every agent in the saved cohort. Agents answer
in character; Likert ratings, reasoning, and themes are parsed from the
responses and appended to the dataset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sv, err := models.LoadSurvey(surveysPath(args[0]))
		if err != nil {
			return err
		}

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		cohort, err := st.LoadCohort()
		if err != nil {
			return fmt.Errorf("no cohort found. Run 'cothink cohort generate' first: %w", err)
		}

		orch, err := newOrchestrator(cmd.Context(), cohort, st)
		if err != nil {
			return err
		}

		fmt.Printf("Administering %q to %d agents...\n", sv.Name, len(cohort.Profiles))

		ctx, cancel := requestContext(cmd.Context(), len(cohort.Profiles))
		defer cancel()

		records, err := orch.RunSurvey(ctx, sv)
		if err != nil {
			return err
		}

		completed, errored, rated := 0, 0, 0
		for _, r := range records {
			if r.Error != "" {
				errored++
				continue
			}
			completed++
			if len(r.Ratings) > 0 {
				rated++
			}
		}

		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

		fmt.Println(render(okStyle, fmt.Sprintf("Collected %d/%d survey responses", completed, len(records))))
		if rated < completed {
			fmt.Println(render(warnStyle, fmt.Sprintf("%d responses had no parseable ratings", completed-rated)))
		}
		if errored > 0 {
			fmt.Println(render(warnStyle, fmt.Sprintf("%d agents failed", errored)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(surveyCmd)
}
