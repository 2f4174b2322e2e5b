package models

import "time"

// InteractionType distinguishes the kinds of recorded exchanges.
type InteractionType string

const (
	InteractionScenario InteractionType = "scenario"
	InteractionSurvey   InteractionType = "survey"
	InteractionFollowup InteractionType = "followup"
)

// QualityMetrics are the per-response quality scores produced by analysis.
type QualityMetrics struct {
	Coherence           float64 `json:"coherence" yaml:"coherence" validate:"min=0,max=1"`
	CulturalConsistency float64 `json:"culturalConsistency" yaml:"culturalConsistency" validate:"min=0,max=1"`
	FoundationAlignment float64 `json:"foundationAlignment" yaml:"foundationAlignment" validate:"min=0,max=1"`
	// EmbeddingAlignment is cosine-based alignment against the foundation
	// principle texts. Nil when no embedding model is configured.
	EmbeddingAlignment *float64 `json:"embeddingAlignment,omitempty" yaml:"embeddingAlignment,omitempty"`
	Complexity         float64  `json:"complexity" yaml:"complexity" validate:"min=0,max=1"`
}

// AnalysisTags are the categorical labels detected in a response.
type AnalysisTags struct {
	QuestionTypes       []string `json:"questionTypes,omitempty" yaml:"questionTypes,omitempty"`
	ResponseCategories  []string `json:"responseCategories,omitempty" yaml:"responseCategories,omitempty"`
	ConstructsEvident   []string `json:"constructsEvident,omitempty" yaml:"constructsEvident,omitempty"`
	EmotionalIndicators []string `json:"emotionalIndicators,omitempty" yaml:"emotionalIndicators,omitempty"`
}

// InteractionRecord is a single exchange between a student agent and the AI
// tutor, with the analysis results attached.
type InteractionRecord struct {
	ID              string          `json:"id" yaml:"id" validate:"required,uuid4"`
	Timestamp       time.Time       `json:"timestamp" yaml:"timestamp" validate:"required"`
	AgentID         string          `json:"agentId" yaml:"agentId" validate:"required"`
	InteractionType InteractionType `json:"interactionType" yaml:"interactionType" validate:"required,oneof=scenario survey followup"`
	ScenarioName    string          `json:"scenarioName" yaml:"scenarioName"`
	ScenarioType    string          `json:"scenarioType" yaml:"scenarioType"`

	// Input side of the exchange.
	Context       string `json:"context" yaml:"context"`
	Task          string `json:"task" yaml:"task"`
	TutorResponse string `json:"tutorResponse" yaml:"tutorResponse"`

	// Agent response.
	Response      string `json:"response" yaml:"response"`
	ResponseWords int    `json:"responseWords" yaml:"responseWords"`
	ResponseChars int    `json:"responseChars" yaml:"responseChars"`

	Profile ProfileSnapshot `json:"profile" yaml:"profile"`
	Quality QualityMetrics  `json:"quality" yaml:"quality"`
	Tags    AnalysisTags    `json:"tags" yaml:"tags"`

	// QualityFiltered marks records that failed the quality gate. They are
	// kept in the dataset and excluded only by strict exports.
	QualityFiltered bool     `json:"qualityFiltered" yaml:"qualityFiltered"`
	FilterReasons   []string `json:"filterReasons,omitempty" yaml:"filterReasons,omitempty"`

	// Error is set when the agent call failed; such records carry no
	// response or quality data.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SurveyQuality holds the sub-scores computed for a survey response.
type SurveyQuality struct {
	Completeness      float64 `json:"completeness" yaml:"completeness" validate:"min=0,max=1"`
	Coherence         float64 `json:"coherence" yaml:"coherence" validate:"min=0,max=1"`
	Specificity       float64 `json:"specificity" yaml:"specificity" validate:"min=0,max=1"`
	CulturalRelevance float64 `json:"culturalRelevance" yaml:"culturalRelevance" validate:"min=0,max=1"`
}

// SurveyRecord is one agent's answers to a survey, raw plus parsed.
type SurveyRecord struct {
	ID         string    `json:"id" yaml:"id" validate:"required,uuid4"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp" validate:"required"`
	AgentID    string    `json:"agentId" yaml:"agentId" validate:"required"`
	SurveyType string    `json:"surveyType" yaml:"surveyType"`

	RawResponses string `json:"rawResponses" yaml:"rawResponses"`
	ProfileName  string `json:"profileName" yaml:"profileName"`

	// Ratings maps question number to the extracted Likert rating.
	Ratings   map[int]int     `json:"ratings,omitempty" yaml:"ratings,omitempty"`
	Reasoning []string        `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Themes    []string        `json:"themes,omitempty" yaml:"themes,omitempty"`
	Quality   SurveyQuality   `json:"quality" yaml:"quality"`
	Profile   ProfileSnapshot `json:"profile" yaml:"profile"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// WordCount counts whitespace-separated tokens; used for response lengths.
func WordCount(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				n++
			}
			inWord = true
		}
	}
	return n
}
