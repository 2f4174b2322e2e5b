package mcpserver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/store"
)

type fakeChatModel struct{ reply string }

func (f *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

const reply = "I think this explanation works for me because I can follow each step. " +
	"First I would try the problem myself, and then I would ask the tutor to check my reasoning before moving on."

func testDeps(t *testing.T) Deps {
	t.Helper()
	st := store.NewFileRecordStore()
	require.NoError(t, st.Initialize(map[string]string{
		"dataFile": filepath.Join(t.TempDir(), "dataset.json"),
	}))
	t.Cleanup(func() { _ = st.Close() })

	return Deps{
		Version: "test",
		Store:   st,
		NewOrchestrator: func(cohort models.Cohort) (*sim.Orchestrator, error) {
			return sim.New(cohort, &fakeChatModel{reply: reply}, sim.Options{Store: st}), nil
		},
	}
}

func saveCohort(t *testing.T, deps Deps, size int) models.Cohort {
	t.Helper()
	cohort, err := models.GenerateCohort(size, "university_diverse", 7, nil)
	require.NoError(t, err)
	require.NoError(t, deps.Store.SaveCohort(cohort))
	return cohort
}

func textOf(t *testing.T, result *mcpsdk.CallToolResultFor[any]) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRunScenarioTool(t *testing.T) {
	deps := testDeps(t)
	saveCohort(t, deps, 3)

	result, err := handleRunScenario(context.Background(), deps, RunScenarioParams{
		Name:          "Math Help Session",
		Type:          "problem_solving",
		LearningTask:  "Solve x^2 - 5x + 6 = 0",
		TutorResponse: "Let's factor this together.",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textOf(t, result)
	assert.Contains(t, text, "Scenario Run: Math Help Session")
	assert.Contains(t, text, "Completed: 3/3")

	stored, err := deps.Store.ListInteractions()
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRunScenarioToolWithoutCohort(t *testing.T) {
	deps := testDeps(t)

	result, err := handleRunScenario(context.Background(), deps, RunScenarioParams{
		Name:          "Math Help Session",
		Type:          "problem_solving",
		LearningTask:  "Solve",
		TutorResponse: "Try it.",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "no cohort saved")
}

func TestRunScenarioToolInvalidParams(t *testing.T) {
	deps := testDeps(t)
	saveCohort(t, deps, 2)

	result, err := handleRunScenario(context.Background(), deps, RunScenarioParams{Name: "x"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "invalid scenario")
}

func TestCohortSummaryTool(t *testing.T) {
	deps := testDeps(t)
	cohort := saveCohort(t, deps, 4)

	result, err := handleCohortSummary(deps, CohortSummaryParams{Detailed: true})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textOf(t, result)
	assert.Contains(t, text, "Agents: 4")
	assert.Contains(t, text, "### Cultures")
	assert.Contains(t, text, cohort.Profiles[0].AgentID)
}

func TestDatasetStatsToolEmpty(t *testing.T) {
	deps := testDeps(t)

	result, err := handleDatasetStats(deps, DatasetStatsParams{})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "Dataset is empty")
}

func TestDatasetStatsTool(t *testing.T) {
	deps := testDeps(t)
	saveCohort(t, deps, 3)

	_, err := handleRunScenario(context.Background(), deps, RunScenarioParams{
		Name:          "Math Help Session",
		Type:          "problem_solving",
		LearningTask:  "Solve x^2 - 5x + 6 = 0",
		TutorResponse: "Let's factor this together.",
	})
	require.NoError(t, err)

	result, err := handleDatasetStats(deps, DatasetStatsParams{})
	require.NoError(t, err)
	text := textOf(t, result)
	assert.Contains(t, text, "## Dataset Statistics")
	assert.Contains(t, text, "### By Culture")

	full, err := handleDatasetStats(deps, DatasetStatsParams{FullReport: true})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, full), "# Co-Thinking Research Simulation Analysis Report")
}

func TestNewServerRegistersTools(t *testing.T) {
	server := NewServer(testDeps(t))
	assert.NotNil(t, server)
}
