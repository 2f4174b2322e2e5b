// Package mcpserver exposes the simulation over the Model Context Protocol
// so AI research assistants can drive runs and inspect datasets.
package mcpserver

// RunScenarioParams are the arguments for the run_scenario tool. Either
// ScenarioFile or the inline fields must be provided.
type RunScenarioParams struct {
	// ScenarioFile is a path to a scenario YAML file.
	ScenarioFile string `json:"scenario_file,omitempty"`

	// Inline scenario definition, used when ScenarioFile is empty.
	Name          string `json:"name,omitempty"`
	Type          string `json:"type,omitempty"`
	Context       string `json:"context,omitempty"`
	LearningTask  string `json:"learning_task,omitempty"`
	TutorResponse string `json:"tutor_response,omitempty"`
}

// CohortSummaryParams are the arguments for the cohort_summary tool.
type CohortSummaryParams struct {
	// Detailed includes per-agent profile names.
	Detailed bool `json:"detailed,omitempty"`
}

// DatasetStatsParams are the arguments for the dataset_stats tool.
type DatasetStatsParams struct {
	// FullReport returns the complete research report instead of the
	// compact statistics summary.
	FullReport bool `json:"full_report,omitempty"`
}
