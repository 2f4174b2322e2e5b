package store

import "github.com/cothinklab/cothink/models"

// DatasetCounts summarizes what a store currently holds.
type DatasetCounts struct {
	Interactions int
	Surveys      int
	CohortSaved  bool
}

// RecordStore defines the persistence contract for cohorts and the
// simulation dataset.
type RecordStore interface {
	// Initialize configures the store with backend-specific parameters,
	// such as file path and data format. It must be called before any
	// other store operations.
	Initialize(config map[string]string) error

	// SaveCohort persists the generated cohort, replacing any previous one.
	SaveCohort(cohort models.Cohort) error

	// LoadCohort returns the stored cohort, or types.ErrNoCohort when none
	// has been saved yet.
	LoadCohort() (models.Cohort, error)

	// AppendInteraction adds one interaction record to the dataset.
	AppendInteraction(record models.InteractionRecord) error

	// AppendSurvey adds one survey record to the dataset.
	AppendSurvey(record models.SurveyRecord) error

	// ListInteractions returns all interaction records in insertion order.
	ListInteractions() ([]models.InteractionRecord, error)

	// ListSurveys returns all survey records in insertion order.
	ListSurveys() ([]models.SurveyRecord, error)

	// Counts reports dataset sizes without loading full records.
	Counts() (DatasetCounts, error)

	// Close releases any resources held by the store.
	Close() error
}
