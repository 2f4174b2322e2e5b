package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/internal/telemetry"
	"github.com/cothinklab/cothink/models"
)

var (
	cohortCount    int
	cohortContext  string
	cohortSeed     int64
	cohortCultures []string
)

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Generate and inspect the agent cohort",
}

var cohortGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new cohort of student agents",
	Long: `Generate a cohort of simulated student participants and save it to the
record store, replacing any previous cohort. Profiles cycle through the
cultural, demographic, and emotional templates of the chosen research
context so the sample stays balanced.

Available research contexts: ` + strings.Join(models.ResearchContextNames(), ", "),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		count := cohortCount
		if count == 0 {
			count = config.Cohort.AgentCount
		}
		researchContext := cohortContext
		if researchContext == "" {
			researchContext = config.Cohort.ResearchContext
		}
		seed := cohortSeed
		if seed == 0 {
			seed = config.Cohort.Seed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cultures := cohortCultures
		if len(cultures) == 0 {
			cultures = config.Cohort.EnabledCultures
		}

		cohort, err := models.GenerateCohort(count, researchContext, seed, cultures)
		if err != nil {
			return err
		}

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := st.SaveCohort(cohort); err != nil {
			return fmt.Errorf("save cohort: %w", err)
		}

		tel := newTelemetryClient()
		defer func() { _ = tel.Close() }()
		tel.Track(telemetry.EventCohortGenerated, telemetry.Properties{
			"agent_count":      count,
			"research_context": researchContext,
		})

		fmt.Printf("Generated cohort %s with %d agents (seed %d)\n\n", cohort.ID, count, seed)
		printCohortSummary(cohort)
		return nil
	},
}

var cohortShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved cohort and its diversity profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		cohort, err := st.LoadCohort()
		if err != nil {
			return fmt.Errorf("no cohort found. Run 'cothink cohort generate' first: %w", err)
		}

		fmt.Printf("Cohort %s (%s, created %s)\n\n",
			cohort.ID, cohort.ResearchContext, cohort.CreatedAt.Format("2006-01-02 15:04"))
		printCohortSummary(cohort)

		if verbose {
			fmt.Println()
			idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
			dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
			for _, p := range cohort.Profiles {
				fmt.Printf("%s %s %s\n",
					render(idStyle, p.AgentID),
					p.ProfileName,
					render(dimStyle, fmt.Sprintf("(age %d, %s, trust %.2f)",
						p.Demographic.Age, p.Linguistic.EnglishProficiency, p.Behavioral.BaselineTrust)))
			}
		}
		return nil
	},
}

func printCohortSummary(cohort models.Cohort) {
	summary := sim.Summarize(cohort)

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	fmt.Println(render(headerStyle, "Cultures"))
	for _, key := range sim.SortedKeys(summary.Cultures) {
		fmt.Printf("  %-24s %d\n", key, summary.Cultures[key])
	}

	fmt.Println(render(headerStyle, "Socioeconomic tiers"))
	for _, key := range sim.SortedKeys(summary.SocioeconomicTiers) {
		fmt.Printf("  %-24s %d\n", key, summary.SocioeconomicTiers[key])
	}

	fmt.Println(render(headerStyle, "English proficiency"))
	for _, key := range sim.SortedKeys(summary.EnglishProficiency) {
		fmt.Printf("  %-24s %d\n", key, summary.EnglishProficiency[key])
	}

	fmt.Println(render(dimStyle, fmt.Sprintf(
		"Age %.1f (range %d-%d) | trust %.2f±%.2f | confidence %.2f±%.2f",
		summary.Age.Mean, summary.Age.Min, summary.Age.Max,
		summary.BaselineTrust.Mean, summary.BaselineTrust.StdDev,
		summary.AcademicConfidence.Mean, summary.AcademicConfidence.StdDev)))
}

func init() {
	cohortGenerateCmd.Flags().IntVarP(&cohortCount, "count", "n", 0, "number of agents (default from config)")
	cohortGenerateCmd.Flags().StringVar(&cohortContext, "context", "", "research context (default from config)")
	cohortGenerateCmd.Flags().Int64Var(&cohortSeed, "seed", 0, "random seed for reproducible cohorts")
	cohortGenerateCmd.Flags().StringSliceVar(&cohortCultures, "cultures", nil, "restrict to these cultures")

	cohortCmd.AddCommand(cohortGenerateCmd)
	cohortCmd.AddCommand(cohortShowCmd)
	rootCmd.AddCommand(cohortCmd)
}
