package sim

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/internal/policy"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/store"
)

// fakeChatModel returns a canned reply, with optional per-call failures.
type fakeChatModel struct {
	reply  string
	failOn map[int]error
	calls  atomic.Int64
}

func (f *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	n := int(f.calls.Add(1))
	if err, ok := f.failOn[n]; ok {
		return nil, err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func testScenario() models.Scenario {
	return models.Scenario{
		Name:          "Math Help Session",
		Type:          "problem_solving",
		Context:       "Working on quadratic equations",
		LearningTask:  "Solve x^2 - 5x + 6 = 0",
		TutorResponse: "Let's factor this together. What two numbers multiply to 6 and add to -5?",
	}
}

func testSurvey() models.Survey {
	return models.Survey{
		Name: "Post-Interaction Survey",
		Type: "post_interaction",
		Questions: []models.SurveyQuestion{
			{Question: "The AI tutor understood my needs.", Type: "likert", Scale: "1-7"},
			{Question: "What would you change about the interaction?", Type: "open"},
		},
	}
}

func testCohort(t *testing.T, size int) models.Cohort {
	t.Helper()
	cohort, err := models.GenerateCohort(size, "university_diverse", 42, nil)
	require.NoError(t, err)
	return cohort
}

const goodReply = "I think this explanation makes sense because I can see how the numbers connect. " +
	"First, I would check my understanding of factoring, and then I would try the next problem myself. " +
	"However, I want to be sure the approach works for me, so I will verify each step before moving on."

func TestRunScenarioProducesRecordsInCohortOrder(t *testing.T) {
	cohort := testCohort(t, 4)
	orch := New(cohort, &fakeChatModel{reply: goodReply}, Options{Concurrency: 2})

	records, err := orch.RunScenario(context.Background(), testScenario())
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, rec := range records {
		assert.Equal(t, cohort.Profiles[i].AgentID, rec.AgentID, "record %d", i)
		assert.Equal(t, models.InteractionScenario, rec.InteractionType)
		assert.Equal(t, "Math Help Session", rec.ScenarioName)
		assert.Equal(t, goodReply, rec.Response)
		assert.Greater(t, rec.Quality.Coherence, 0.0)
		assert.NotEmpty(t, rec.ID)
		assert.Empty(t, rec.Error)
	}
}

func TestRunScenarioRecordsAgentFailures(t *testing.T) {
	cohort := testCohort(t, 3)
	chat := &fakeChatModel{reply: goodReply, failOn: map[int]error{2: errors.New("rate limited")}}
	orch := New(cohort, chat, Options{Concurrency: 1})

	records, err := orch.RunScenario(context.Background(), testScenario())
	require.NoError(t, err)
	require.Len(t, records, 3)

	errored := 0
	for _, rec := range records {
		if rec.Error != "" {
			errored++
			assert.Contains(t, rec.Error, "rate limited")
			assert.Empty(t, rec.Response)
		}
	}
	assert.Equal(t, 1, errored)
}

func TestRunScenarioAppliesQualityGate(t *testing.T) {
	cohort := testCohort(t, 2)
	gate, err := policy.NewGate(nil, "", policy.Thresholds{MinCoherence: 0.5, MinFoundationAlignment: 0.0})
	require.NoError(t, err)

	orch := New(cohort, &fakeChatModel{reply: "ok sure"}, Options{Gate: gate})
	records, err := orch.RunScenario(context.Background(), testScenario())
	require.NoError(t, err)

	for _, rec := range records {
		assert.True(t, rec.QualityFiltered)
		assert.NotEmpty(t, rec.FilterReasons)
	}
}

func TestRunScenarioPersistsToStore(t *testing.T) {
	cohort := testCohort(t, 2)
	st := store.NewFileRecordStore()
	require.NoError(t, st.Initialize(map[string]string{
		"dataFile": filepath.Join(t.TempDir(), "dataset.json"),
	}))
	defer func() { _ = st.Close() }()

	orch := New(cohort, &fakeChatModel{reply: goodReply}, Options{Store: st})
	_, err := orch.RunScenario(context.Background(), testScenario())
	require.NoError(t, err)

	stored, err := st.ListInteractions()
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRunSurveyParsesResponses(t *testing.T) {
	cohort := testCohort(t, 2)
	reply := "Question 1: Rating 6\nBecause: the tutor adapted to my pace and respected my culture.\n" +
		"Question 2: I would like more examples that connect to my community and family experiences."
	orch := New(cohort, &fakeChatModel{reply: reply}, Options{})

	records, err := orch.RunSurvey(context.Background(), testSurvey())
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, 6, rec.Ratings[1])
		assert.NotEmpty(t, rec.Reasoning)
		assert.Equal(t, "post_interaction", rec.SurveyType)
		assert.NotEmpty(t, rec.ProfileName)
	}
}

func TestConcurrencyBounds(t *testing.T) {
	orch := New(testCohort(t, 1), &fakeChatModel{reply: goodReply}, Options{Concurrency: 500})
	assert.Equal(t, MaxConcurrency, orch.opts.Concurrency)

	orch = New(testCohort(t, 1), &fakeChatModel{reply: goodReply}, Options{})
	assert.Equal(t, DefaultConcurrency, orch.opts.Concurrency)
}

func TestSummarize(t *testing.T) {
	cohort := testCohort(t, 8)
	s := Summarize(cohort)

	assert.Equal(t, 8, s.AgentCount)
	total := 0
	for _, n := range s.Cultures {
		total += n
	}
	assert.Equal(t, 8, total)
	assert.GreaterOrEqual(t, s.Age.Min, 18)
	assert.LessOrEqual(t, s.Age.Max, 24)
	assert.InDelta(t, float64(s.Age.Min+s.Age.Max)/2, s.Age.Mean, float64(s.Age.Max-s.Age.Min))
	assert.Greater(t, s.BaselineTrust.Mean, 0.0)

	for i, k := range SortedKeys(s.Cultures) {
		if i > 0 {
			assert.Less(t, SortedKeys(s.Cultures)[i-1], k)
		}
	}
}

func TestSummarizeEmptyCohort(t *testing.T) {
	s := Summarize(models.Cohort{})
	assert.Zero(t, s.AgentCount)
	assert.Empty(t, s.Cultures)
}

func TestPacerSpacing(t *testing.T) {
	// Zero gap returns immediately.
	zero := pacer{}
	zero.wait(context.Background())

	spaced := pacer{gap: 1}
	for i := 0; i < 3; i++ {
		spaced.wait(context.Background())
	}
}

func TestRunScenarioTelemetryEvent(t *testing.T) {
	cohort := testCohort(t, 2)
	rec := &recordingTelemetry{}
	orch := New(cohort, &fakeChatModel{reply: goodReply}, Options{Telemetry: rec})

	_, err := orch.RunScenario(context.Background(), testScenario())
	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "simulation_completed", rec.events[0])
	assert.Equal(t, 2, rec.props[0]["agent_count"])
}

type recordingTelemetry struct {
	events []string
	props  []map[string]any
}

func (r *recordingTelemetry) Track(event string, properties map[string]any) {
	r.events = append(r.events, event)
	r.props = append(r.props, properties)
}

func (r *recordingTelemetry) Close() error { return nil }
