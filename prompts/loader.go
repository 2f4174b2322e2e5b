package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey identifies an overridable prompt block.
type PromptKey string

const (
	// KeyPersonalityGuidelines is the behavioral guideline block.
	KeyPersonalityGuidelines PromptKey = "PersonalityGuidelines"
	// KeyScenarioInstructions is the per-scenario instruction block.
	KeyScenarioInstructions PromptKey = "ScenarioInstructions"
	// KeySurveyInstructions is the survey framing block.
	KeySurveyInstructions PromptKey = "SurveyInstructions"
)

type promptConfig struct {
	defaultContent string
	filename       string
}

var promptRegistry = map[PromptKey]promptConfig{
	KeyPersonalityGuidelines: {
		defaultContent: PersonalityGuidelines,
		filename:       "personality_guidelines.txt",
	},
	KeyScenarioInstructions: {
		defaultContent: ScenarioInstructions,
		filename:       "scenario_instructions.txt",
	},
	KeySurveyInstructions: {
		defaultContent: SurveyInstructions,
		filename:       "survey_instructions.txt",
	},
}

// GetPrompt returns the content of a user-provided prompt file from the
// project's templates directory if one exists, otherwise the built-in default.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPath := filepath.Join(templatesDir, config.filename)
	if _, err := os.Stat(customPath); err == nil {
		content, readErr := os.ReadFile(customPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPath, readErr)
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPath, err)
	}

	return config.defaultContent, nil
}
