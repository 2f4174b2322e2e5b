package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"omitempty"`
	Cohort    CohortConfig    `mapstructure:"cohort" validate:"required"`
	Run       RunConfig       `mapstructure:"run" validate:"required"`
	Quality   QualityConfig   `mapstructure:"quality"`
	Export    ExportConfig    `mapstructure:"export"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ProjectConfig holds project-layout settings.
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	ScenariosDir string `mapstructure:"scenariosDir" validate:"required"`
	SurveysDir   string `mapstructure:"surveysDir" validate:"required"`
	DataDir      string `mapstructure:"dataDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir"`
}

// DataConfig holds record-store configuration.
type DataConfig struct {
	// Backend selects the record store implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	File    string `mapstructure:"file" validate:"required"`
	Format  string `mapstructure:"format" validate:"required,oneof=json yaml"`
}

// LLMConfig holds configuration for the LLM providers.
type LLMConfig struct {
	Provider       string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai anthropic ollama"`
	ModelName      string `mapstructure:"modelName" validate:"omitempty,min=1"`
	EmbeddingModel string `mapstructure:"embeddingModel"`
	APIKey         string `mapstructure:"apiKey"`
	BaseURL        string `mapstructure:"baseUrl"`
	// RequestTimeoutSeconds controls the per-call timeout for LLM requests.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
}

// CohortConfig holds cohort-generation defaults.
type CohortConfig struct {
	AgentCount      int      `mapstructure:"agentCount" validate:"required,min=1,max=200"`
	ResearchContext string   `mapstructure:"researchContext" validate:"required"`
	Seed            int64    `mapstructure:"seed"`
	EnabledCultures []string `mapstructure:"enabledCultures"`
}

// RunConfig holds simulation-run settings.
type RunConfig struct {
	// Concurrency is the number of agents talking to the LLM at once.
	Concurrency int `mapstructure:"concurrency" validate:"required,min=1,max=50"`
	// RequestGapMillis is the minimum delay between request starts,
	// the rate-limit knob for provider quotas.
	RequestGapMillis int `mapstructure:"requestGapMillis" validate:"min=0"`
}

// QualityConfig holds the quality-gate thresholds.
type QualityConfig struct {
	Enabled                bool    `mapstructure:"enabled"`
	MinCoherence           float64 `mapstructure:"minCoherence" validate:"min=0,max=1"`
	MinFoundationAlignment float64 `mapstructure:"minFoundationAlignment" validate:"min=0,max=1"`
	// PolicyFile optionally overrides the embedded Rego policy.
	PolicyFile string `mapstructure:"policyFile"`
}

// ExportConfig holds dataset-export settings.
type ExportConfig struct {
	Formats             []string `mapstructure:"formats" validate:"omitempty,dive,oneof=json csv markdown"`
	IncludeRawResponses bool     `mapstructure:"includeRawResponses"`
	AutoAnalyze         bool     `mapstructure:"autoAnalyze"`
}

// TelemetryConfig holds opt-in telemetry settings.
type TelemetryConfig struct {
	Disabled bool   `mapstructure:"disabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint"`
}
