package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cothinklab/cothink/internal/analysis"
	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/store"
	"github.com/cothinklab/cothink/types"
)

// Deps are the collaborators the MCP server needs. NewOrchestrator is
// injected so the server stays independent of provider wiring.
type Deps struct {
	Version string
	Store   store.RecordStore

	// NewOrchestrator builds a run-ready orchestrator for a cohort.
	NewOrchestrator func(cohort models.Cohort) (*sim.Orchestrator, error)
}

// NewServer builds the MCP server with the simulation tools registered.
func NewServer(deps Deps) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "cothink-mcp",
		Version: deps.Version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintln(os.Stderr, "MCP connection established")
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)

	runTool := &mcpsdk.Tool{
		Name:        "run_scenario",
		Description: "Run one co-thinking scenario across the saved agent cohort and return a summary of the collected responses. Provide scenario_file, or the inline fields name, type, learning_task, and tutor_response.",
	}
	mcpsdk.AddTool(server, runTool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[RunScenarioParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return handleRunScenario(ctx, deps, params.Arguments)
	})

	cohortTool := &mcpsdk.Tool{
		Name:        "cohort_summary",
		Description: "Describe the saved agent cohort: cultural, socioeconomic, and linguistic distributions plus behavioral baselines. Set detailed=true for per-agent listings.",
	}
	mcpsdk.AddTool(server, cohortTool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[CohortSummaryParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return handleCohortSummary(deps, params.Arguments)
	})

	statsTool := &mcpsdk.Tool{
		Name:        "dataset_stats",
		Description: "Analyze the collected simulation dataset: summary statistics, per-culture patterns, and research recommendations. Set full_report=true for the complete analysis report.",
	}
	mcpsdk.AddTool(server, statsTool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[DatasetStatsParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return handleDatasetStats(deps, params.Arguments)
	})

	return server
}

// Run serves MCP over stdio until the client disconnects. stdout carries
// pure JSON-RPC; status output goes to stderr.
func Run(ctx context.Context, deps Deps) error {
	fmt.Fprintln(os.Stderr, "cothink MCP server starting...")
	server := NewServer(deps)
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func markdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

func errorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: FormatError(err.Error())}},
		IsError: true,
	}, nil
}

func handleRunScenario(ctx context.Context, deps Deps, params RunScenarioParams) (*mcpsdk.CallToolResultFor[any], error) {
	cohort, err := loadCohort(deps)
	if err != nil {
		return errorResponse(err)
	}

	sc, err := resolveScenario(params)
	if err != nil {
		return errorResponse(err)
	}

	orch, err := deps.NewOrchestrator(cohort)
	if err != nil {
		return errorResponse(err)
	}
	records, err := orch.RunScenario(ctx, sc)
	if err != nil {
		return errorResponse(err)
	}
	return markdownResponse(FormatRunResult(sc, records))
}

func handleCohortSummary(deps Deps, params CohortSummaryParams) (*mcpsdk.CallToolResultFor[any], error) {
	cohort, err := loadCohort(deps)
	if err != nil {
		return errorResponse(err)
	}
	return markdownResponse(FormatCohortSummary(cohort, sim.Summarize(cohort), params.Detailed))
}

func handleDatasetStats(deps Deps, params DatasetStatsParams) (*mcpsdk.CallToolResultFor[any], error) {
	records, err := deps.Store.ListInteractions()
	if err != nil {
		return errorResponse(fmt.Errorf("list interactions: %w", err))
	}
	surveys, err := deps.Store.ListSurveys()
	if err != nil {
		return errorResponse(fmt.Errorf("list surveys: %w", err))
	}

	result, err := analysis.AnalyzeDataset(records, surveys)
	if err != nil && !errors.Is(err, types.ErrNoRecords) {
		return errorResponse(err)
	}

	if params.FullReport {
		report, err := analysis.RenderReport(result, time.Now())
		if err != nil {
			return errorResponse(err)
		}
		return markdownResponse(report)
	}
	return markdownResponse(FormatDatasetStats(result))
}

func loadCohort(deps Deps) (models.Cohort, error) {
	cohort, err := deps.Store.LoadCohort()
	if err != nil {
		if errors.Is(err, types.ErrNoCohort) {
			return models.Cohort{}, fmt.Errorf("no cohort saved. Run 'cothink cohort generate' first")
		}
		return models.Cohort{}, fmt.Errorf("load cohort: %w", err)
	}
	return cohort, nil
}

func resolveScenario(params RunScenarioParams) (models.Scenario, error) {
	if params.ScenarioFile != "" {
		return models.LoadScenario(params.ScenarioFile)
	}
	sc := models.Scenario{
		Name:          params.Name,
		Type:          params.Type,
		Context:       params.Context,
		LearningTask:  params.LearningTask,
		TutorResponse: params.TutorResponse,
	}
	if err := models.ValidateStruct(sc); err != nil {
		return sc, fmt.Errorf("invalid scenario: provide scenario_file or name, type, learning_task, and tutor_response (%w)", err)
	}
	return sc, nil
}
