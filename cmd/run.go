package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/models"
)

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a co-thinking scenario across the cohort",
	Long: `Run one scenario across the saved cohort: every agent responds to the
AI tutor's turn in character, responses are analyzed and quality-gated,
and the records are appended to the dataset.

With --watch the command re-runs whenever the scenario file changes,
which is useful while iterating on scenario wording.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := scenariosPath(args[0])
		if runWatch {
			return watchScenario(cmd, path)
		}
		return runScenarioFile(cmd, path)
	},
}

func runScenarioFile(cmd *cobra.Command, path string) error {
	sc, err := models.LoadScenario(path)
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

	fmt.Printf("Running scenario %q across %d agents...\n", sc.Name, len(cohort.Profiles))

	ctx, cancel := requestContext(cmd.Context(), len(cohort.Profiles))
	defer cancel()

	records, err := orch.RunScenario(ctx, sc)
	if err != nil {
		return err
	}

	printRunSummary(records)
	return nil
}

func printRunSummary(records []models.InteractionRecord) {
	completed, errored, filtered := 0, 0, 0
	var coherence, alignment float64
	for _, r := range records {
		if r.Error != "" {
			errored++
			continue
		}
		completed++
		coherence += r.Quality.Coherence
		alignment += r.Quality.FoundationAlignment
		if r.QualityFiltered {
			filtered++
		}
	}

	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	fmt.Println(render(okStyle, fmt.Sprintf("Completed %d/%d responses", completed, len(records))))
	if errored > 0 {
		fmt.Println(render(warnStyle, fmt.Sprintf("%d agents failed", errored)))
	}
	if filtered > 0 {
		fmt.Println(render(warnStyle, fmt.Sprintf("%d responses flagged by the quality gate", filtered)))
	}
	if completed > 0 {
		fmt.Printf("Avg coherence %.3f | avg foundation alignment %.3f\n",
			coherence/float64(completed), alignment/float64(completed))
	}
}

func watchScenario(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files on save, which drops
	// watches registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if err := runScenarioFile(cmd, path); err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
	}
	fmt.Printf("\nWatching %s for changes (Ctrl+C to stop)...\n", path)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fmt.Printf("\nScenario changed, re-running...\n")
			if err := runScenarioFile(cmd, path); err != nil {
				fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "re-run when the scenario file changes")
	rootCmd.AddCommand(runCmd)
}
