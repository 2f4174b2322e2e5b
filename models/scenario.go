package models

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Scenario describes one co-thinking exchange presented to every agent: the
// learning task and the AI tutor's turn the student reacts to.
type Scenario struct {
	Name          string `json:"name" yaml:"name" validate:"required,min=3"`
	Type          string `json:"type" yaml:"type" validate:"required"`
	Context       string `json:"context" yaml:"context"`
	LearningTask  string `json:"learningTask" yaml:"learningTask" validate:"required"`
	TutorResponse string `json:"tutorResponse" yaml:"tutorResponse" validate:"required"`
}

// SurveyQuestion is a single survey item. Likert questions carry a scale
// description such as "1-7 (1=Strongly Disagree, 7=Strongly Agree)".
type SurveyQuestion struct {
	Question string `json:"question" yaml:"question" validate:"required"`
	Type     string `json:"type" yaml:"type" validate:"required,oneof=likert open"`
	Scale    string `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Survey is a named list of questions administered to the whole cohort.
type Survey struct {
	Name      string           `json:"name" yaml:"name" validate:"required"`
	Type      string           `json:"type" yaml:"type"`
	Questions []SurveyQuestion `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("read scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := ValidateStruct(sc); err != nil {
		return sc, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return sc, nil
}

// LoadSurvey reads and validates a survey YAML file.
func LoadSurvey(path string) (Survey, error) {
	var sv Survey
	data, err := os.ReadFile(path)
	if err != nil {
		return sv, fmt.Errorf("read survey %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sv); err != nil {
		return sv, fmt.Errorf("parse survey %s: %w", path, err)
	}
	if err := ValidateStruct(sv); err != nil {
		return sv, fmt.Errorf("invalid survey %s: %w", path, err)
	}
	return sv, nil
}
