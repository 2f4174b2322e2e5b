package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", `
name: math_problem_solving
type: problem_solving
context: You are working on a calculus assignment.
learningTask: Find the derivative of x^2 * sin(x).
tutorResponse: Let's work through this together using the product rule.
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "math_problem_solving", sc.Name)
	assert.Equal(t, "problem_solving", sc.Type)
	assert.Contains(t, sc.TutorResponse, "product rule")
}

func TestLoadScenarioInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "name: x\ntype: t\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSurvey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "survey.yaml", `
name: trust_calibration
type: post_session
questions:
  - question: I trusted the AI tutor's explanation.
    type: likert
    scale: "1-7 (1=Strongly Disagree, 7=Strongly Agree)"
  - question: Describe a moment where you doubted the AI.
    type: open
`)
	sv, err := LoadSurvey(path)
	require.NoError(t, err)
	require.Len(t, sv.Questions, 2)
	assert.Equal(t, "likert", sv.Questions[0].Type)
	assert.Equal(t, "open", sv.Questions[1].Type)
}

func TestLoadSurveyRejectsBadQuestionType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "survey.yaml", `
name: broken
questions:
  - question: pick one
    type: multiple_choice
`)
	_, err := LoadSurvey(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}
