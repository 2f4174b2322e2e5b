package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/cothinklab/cothink/internal/foundation"
	"github.com/cothinklab/cothink/internal/llm"
	"github.com/cothinklab/cothink/internal/policy"
	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/internal/telemetry"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/prompts"
	"github.com/cothinklab/cothink/store"
)

// stdoutIsTerminal gates styled output so piped output stays plain.
var stdoutIsTerminal = term.IsTerminal(int(os.Stdout.Fd()))

// render applies a lipgloss style only when writing to a terminal.
func render(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal {
		return s
	}
	return style.Render(s)
}

// templatesPath returns the prompt-template override directory.
func templatesPath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.TemplatesDir)
}

// scenariosPath resolves a scenario file: absolute paths and existing files
// pass through, bare names are looked up in the scenarios directory.
func scenariosPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.ScenariosDir, name)
}

// surveysPath resolves a survey file the same way scenariosPath does.
func surveysPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.SurveysDir, name)
}

// newChatModel builds the configured LLM chat model.
func newChatModel(ctx context.Context) (model.BaseChatModel, error) {
	config := GetConfig()
	provider, err := llm.ValidateProvider(config.LLM.Provider)
	if err != nil {
		return nil, err
	}
	return llm.NewChatModel(ctx, llm.Config{
		Provider: provider,
		Model:    config.LLM.ModelName,
		APIKey:   llm.ResolveAPIKey(provider, config.LLM.APIKey),
		BaseURL:  config.LLM.BaseURL,
	})
}

// newOrchestrator wires the full run pipeline: agents, quality gate,
// optional embedding aligner, store, and telemetry.
func newOrchestrator(ctx context.Context, cohort models.Cohort, st store.RecordStore) (*sim.Orchestrator, error) {
	config := GetConfig()

	chatModel, err := newChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("configure LLM: %w", err)
	}

	guidelines, err := prompts.GetPrompt(prompts.KeyPersonalityGuidelines, templatesPath())
	if err != nil {
		return nil, err
	}
	scenarioInstructions, err := prompts.GetPrompt(prompts.KeyScenarioInstructions, templatesPath())
	if err != nil {
		return nil, err
	}
	surveyInstructions, err := prompts.GetPrompt(prompts.KeySurveyInstructions, templatesPath())
	if err != nil {
		return nil, err
	}

	opts := sim.Options{
		FoundationContext:    foundation.Combined(),
		Guidelines:           guidelines,
		ScenarioInstructions: scenarioInstructions,
		SurveyInstructions:   surveyInstructions,
		Concurrency:          config.Run.Concurrency,
		RequestGapMillis:     config.Run.RequestGapMillis,
		Store:                st,
		Telemetry:            newTelemetryClient(),
	}

	if config.Quality.Enabled {
		gate, err := policy.NewGate(afero.NewOsFs(), config.Quality.PolicyFile, policy.Thresholds{
			MinCoherence:           config.Quality.MinCoherence,
			MinFoundationAlignment: config.Quality.MinFoundationAlignment,
		})
		if err != nil {
			return nil, fmt.Errorf("configure quality gate: %w", err)
		}
		opts.Gate = gate
	}

	if config.LLM.EmbeddingModel != "" {
		aligner, err := newEmbeddingAligner(ctx)
		if err != nil {
			// Embedding alignment is additive; a broken embedder should not
			// stop the run.
			fmt.Fprintf(os.Stderr, "Warning: embedding aligner unavailable: %v\n", err)
		} else {
			opts.Aligner = aligner
		}
	}

	return sim.New(cohort, chatModel, opts), nil
}

func newEmbeddingAligner(ctx context.Context) (*foundation.EmbeddingAligner, error) {
	config := GetConfig()
	provider, err := llm.ValidateProvider(config.LLM.Provider)
	if err != nil {
		return nil, err
	}
	embedder, err := llm.NewEmbeddingModel(ctx, llm.Config{
		Provider:       provider,
		EmbeddingModel: config.LLM.EmbeddingModel,
		APIKey:         llm.ResolveAPIKey(provider, config.LLM.APIKey),
		BaseURL:        config.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return foundation.NewEmbeddingAligner(ctx, embedder)
}

// newTelemetryClient returns the configured telemetry client, or a no-op
// when telemetry is disabled or unconfigured.
func newTelemetryClient() telemetry.Client {
	config := GetConfig()
	if config.Telemetry.Disabled || config.Telemetry.APIKey == "" {
		return telemetry.NewNoopClient()
	}
	tcfg, err := telemetry.LoadConfig()
	if err != nil || !tcfg.IsEnabled() {
		return telemetry.NewNoopClient()
	}
	client, err := telemetry.NewPostHogClient(telemetry.ClientConfig{
		APIKey:   config.Telemetry.APIKey,
		Version:  version,
		Config:   tcfg,
		Endpoint: config.Telemetry.Endpoint,
	})
	if err != nil {
		return telemetry.NewNoopClient()
	}
	return client
}

// requestContext returns a context honoring the configured LLM timeout,
// applied per run rather than per call.
func requestContext(parent context.Context, calls int) (context.Context, context.CancelFunc) {
	config := GetConfig()
	seconds := config.LLM.RequestTimeoutSeconds
	if seconds <= 0 {
		return context.WithCancel(parent)
	}
	if calls < 1 {
		calls = 1
	}
	d := time.Duration(seconds) * time.Second * time.Duration(calls)
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return context.WithTimeout(parent, d)
}
