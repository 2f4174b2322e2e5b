package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const exampleScenario = `name: Math Help Session
type: problem_solving
context: You are working on quadratic equations in your algebra course.
learningTask: Solve x^2 - 5x + 6 = 0 and explain your reasoning.
tutorResponse: |
  Let's work through this together. Can you tell me what two numbers
  multiply to 6 and add up to -5? Take your time, and let me know if
  you'd like a hint about factoring.
`

const exampleSurvey = `name: Post-Interaction Survey
type: post_interaction
questions:
  - question: The AI tutor understood my learning needs.
    type: likert
    scale: 1-7 (1=Strongly Disagree, 7=Strongly Agree)
  - question: I felt comfortable asking the AI tutor for help.
    type: likert
    scale: 1-7 (1=Strongly Disagree, 7=Strongly Agree)
  - question: The AI tutor respected my cultural background and way of learning.
    type: likert
    scale: 1-7 (1=Strongly Disagree, 7=Strongly Agree)
  - question: What would you change about how the AI tutor worked with you?
    type: open
`

const exampleEnv = `# LLM provider credentials. Only the configured provider's key is needed.
GEMINI_API_KEY=
OPENAI_API_KEY=
ANTHROPIC_API_KEY=

# Override any config key with COTHINK_ variables, for example:
# COTHINK_LLM_PROVIDER=openai
# COTHINK_COHORT_AGENTCOUNT=40
`

const exampleConfig = `# cothink project configuration
cohort:
  agentCount: 20
  researchContext: university_diverse
  # seed: 42

llm:
  provider: gemini
  # modelName: gemini-1.5-flash
  # embeddingModel: text-embedding-004

quality:
  enabled: true
  minCoherence: 0.5
  minFoundationAlignment: 0.6
`

// initCmd scaffolds a cothink project in the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a cothink project in the current directory",
	Long: `Initialize a cothink project in the current directory.

This creates the .cothink/ directory with:
  scenarios/   example co-thinking scenarios
  surveys/     example post-interaction surveys
  templates/   optional prompt template overrides
  .cothink.yaml  project configuration

Run this before generating a cohort or running simulations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		root := config.Project.RootDir

		if _, err := os.Stat(filepath.Join(root, configName+".yaml")); err == nil {
			fmt.Println("cothink already initialized in this directory")
			return nil
		}

		dirs := []string{
			filepath.Join(root, config.Project.ScenariosDir),
			filepath.Join(root, config.Project.SurveysDir),
			filepath.Join(root, config.Project.TemplatesDir),
			filepath.Join(root, config.Project.DataDir),
		}
		for _, dir := range dirs {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}

		files := map[string]string{
			filepath.Join(root, config.Project.ScenariosDir, "math_help.yaml"):      exampleScenario,
			filepath.Join(root, config.Project.SurveysDir, "post_interaction.yaml"): exampleSurvey,
			filepath.Join(root, configName+".yaml"):                                 exampleConfig,
		}
		for path, content := range files {
			if err := writeIfAbsent(path, content); err != nil {
				return err
			}
		}
		if err := writeIfAbsent(".env.example", exampleEnv); err != nil {
			return err
		}

		fmt.Println("cothink initialized")
		fmt.Println("")
		fmt.Println("Created:")
		fmt.Printf("  %s/%s/math_help.yaml\n", root, config.Project.ScenariosDir)
		fmt.Printf("  %s/%s/post_interaction.yaml\n", root, config.Project.SurveysDir)
		fmt.Printf("  %s/%s.yaml\n", root, configName)
		fmt.Println("  .env.example")
		fmt.Println("")
		fmt.Println("Next steps:")
		fmt.Println("  cp .env.example .env    # add your API key")
		fmt.Println("  cothink cohort generate")
		fmt.Println("  cothink run math_help.yaml")
		return nil
	},
}

func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
