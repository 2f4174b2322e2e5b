package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with secrets masked",
	Run: func(cmd *cobra.Command, args []string) {
		config := GetConfig()

		fmt.Println("project:")
		fmt.Printf("  rootDir: %s\n", config.Project.RootDir)
		fmt.Printf("  dataDir: %s\n", config.Project.DataDir)
		fmt.Println("data:")
		fmt.Printf("  backend: %s\n", config.Data.Backend)
		fmt.Printf("  file: %s\n", config.Data.File)
		fmt.Printf("  format: %s\n", config.Data.Format)
		fmt.Println("llm:")
		fmt.Printf("  provider: %s\n", config.LLM.Provider)
		fmt.Printf("  modelName: %s\n", valueOrDefault(config.LLM.ModelName, "(provider default)"))
		fmt.Printf("  embeddingModel: %s\n", valueOrDefault(config.LLM.EmbeddingModel, "(disabled)"))
		fmt.Printf("  apiKey: %s\n", maskKey(config.LLM.APIKey))
		fmt.Println("cohort:")
		fmt.Printf("  agentCount: %d\n", config.Cohort.AgentCount)
		fmt.Printf("  researchContext: %s\n", config.Cohort.ResearchContext)
		fmt.Println("run:")
		fmt.Printf("  concurrency: %d\n", config.Run.Concurrency)
		fmt.Printf("  requestGapMillis: %d\n", config.Run.RequestGapMillis)
		fmt.Println("quality:")
		fmt.Printf("  enabled: %t\n", config.Quality.Enabled)
		fmt.Printf("  minCoherence: %.2f\n", config.Quality.MinCoherence)
		fmt.Printf("  minFoundationAlignment: %.2f\n", config.Quality.MinFoundationAlignment)
		fmt.Println("export:")
		fmt.Printf("  formats: %s\n", strings.Join(config.Export.Formats, ", "))

		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Printf("\nConfig file: %s\n", file)
		}
	},
}

// maskKey hides all but the last four characters of a credential.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
