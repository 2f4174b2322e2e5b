package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/models"
)

func testProfile(t *testing.T) models.StudentProfile {
	t.Helper()
	g := models.NewGenerator(17)
	p, err := g.GenerateProfile("agent_000", models.CultureEastAsianCollectivistic,
		models.DemoSuburbanMiddle, models.EmotionExamStress, 18, 24)
	require.NoError(t, err)
	return p
}

func TestBuildPersonalityPrompt(t *testing.T) {
	p := testProfile(t)
	prompt := BuildPersonalityPrompt(&p, "Treat AI as a cognitive partner.", "")

	assert.Contains(t, prompt, "CULTURAL BACKGROUND: "+models.CultureEastAsianCollectivistic)
	assert.Contains(t, prompt, "LINGUISTIC PROFILE:")
	assert.Contains(t, prompt, "CURRENT EMOTIONAL STATE:")
	assert.Contains(t, prompt, "FOUNDATION PRINCIPLES TO FOLLOW:")
	assert.Contains(t, prompt, "cognitive partner")
	assert.Contains(t, prompt, "Stay in character")
}

func TestBuildScenarioPrompt(t *testing.T) {
	sc := models.Scenario{
		Name:          "calc",
		Type:          "problem_solving",
		Context:       "collaborative calculus session",
		LearningTask:  "differentiate x^2",
		TutorResponse: "Let's apply the power rule.",
	}
	prompt := BuildScenarioPrompt(sc, "")
	assert.Contains(t, prompt, "LEARNING SCENARIO: collaborative calculus session")
	assert.Contains(t, prompt, "AI TUTOR'S RESPONSE: Let's apply the power rule.")
	assert.Contains(t, prompt, "authentic reaction")
}

func TestBuildSurveyPromptNumbersQuestions(t *testing.T) {
	sv := models.Survey{
		Name: "trust",
		Questions: []models.SurveyQuestion{
			{Question: "I trusted the tutor.", Type: "likert", Scale: "1-7"},
			{Question: "What would you change?", Type: "open"},
		},
	}
	prompt := BuildSurveyPrompt(sv, "")
	assert.Contains(t, prompt, "1. I trusted the tutor. (Scale: 1-7)")
	assert.Contains(t, prompt, "2. What would you change?")
	assert.NotContains(t, prompt, "2. What would you change? (Scale")
}

func TestGetPromptOverride(t *testing.T) {
	dir := t.TempDir()

	got, err := GetPrompt(KeyScenarioInstructions, "")
	require.NoError(t, err)
	assert.Equal(t, ScenarioInstructions, got)

	custom := filepath.Join(dir, "scenario_instructions.txt")
	require.NoError(t, os.WriteFile(custom, []byte("Answer tersely."), 0644))
	got, err = GetPrompt(KeyScenarioInstructions, dir)
	require.NoError(t, err)
	assert.Equal(t, "Answer tersely.", got)

	_, err = GetPrompt(PromptKey("bogus"), dir)
	assert.Error(t, err)
}
