package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/models"
)

type fakeChatModel struct {
	reply string
	err   error
	calls [][]*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func testProfile(t *testing.T) models.StudentProfile {
	t.Helper()
	g := models.NewGenerator(9)
	p, err := g.GenerateProfile("agent_042", models.CultureAfricanUbuntu,
		models.DemoRuralLowSES, models.EmotionCuriousExplorer, 25, 45)
	require.NoError(t, err)
	return p
}

func TestRespondToTutor(t *testing.T) {
	fake := &fakeChatModel{reply: "I would like to try the first step myself."}
	a := New(testProfile(t), fake, "foundation text", "")

	sc := models.Scenario{
		Name: "essay", Type: "writing",
		Context:       "drafting an essay",
		LearningTask:  "outline the argument",
		TutorResponse: "Here is a suggested outline.",
	}
	resp, err := a.RespondToTutor(context.Background(), sc, "")
	require.NoError(t, err)
	assert.Equal(t, "I would like to try the first step myself.", resp)

	require.Len(t, fake.calls, 1)
	msgs := fake.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "foundation text")
	assert.Contains(t, msgs[1].Content, "Here is a suggested outline.")
}

func TestMemoryReplayAndReset(t *testing.T) {
	fake := &fakeChatModel{reply: "ok"}
	a := New(testProfile(t), fake, "", "")
	sc := models.Scenario{Name: "s", Type: "t", LearningTask: "task", TutorResponse: "hint"}

	_, err := a.RespondToTutor(context.Background(), sc, "")
	require.NoError(t, err)
	_, err = a.RespondToTutor(context.Background(), sc, "")
	require.NoError(t, err)

	// Second call replays the first exchange: system + 2 history + user.
	require.Len(t, fake.calls, 2)
	assert.Len(t, fake.calls[1], 4)

	a.ResetMemory()
	_, err = a.RespondToTutor(context.Background(), sc, "")
	require.NoError(t, err)
	assert.Len(t, fake.calls[2], 2)
}

func TestGenerateErrorCarriesAgentID(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("quota exceeded")}
	a := New(testProfile(t), fake, "", "")
	_, err := a.RespondToSurvey(context.Background(), models.Survey{
		Name:      "s",
		Questions: []models.SurveyQuestion{{Question: "q", Type: "open"}},
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent_042")
}
