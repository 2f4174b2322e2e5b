package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

func newTestCohort(t *testing.T) models.Cohort {
	t.Helper()
	cohort, err := models.GenerateCohort(4, "university_diverse", 7, nil)
	require.NoError(t, err)
	return cohort
}

func newTestRecord(agentID string) models.InteractionRecord {
	return models.InteractionRecord{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		AgentID:         agentID,
		InteractionType: models.InteractionScenario,
		ScenarioName:    "calc",
		ScenarioType:    "problem_solving",
		Response:        "I would verify the result first.",
		ResponseWords:   6,
		Profile:         models.ProfileSnapshot{Culture: models.CultureUSIndividualistic, Age: 20},
		Quality:         models.QualityMetrics{Coherence: 0.8, FoundationAlignment: 0.6},
	}
}

// storeFactories lets the same contract tests run against both backends.
func storeFactories(t *testing.T) map[string]func(t *testing.T) RecordStore {
	return map[string]func(t *testing.T) RecordStore{
		"file": func(t *testing.T) RecordStore {
			s := NewFileRecordStore()
			require.NoError(t, s.Initialize(map[string]string{
				dataFileKey: filepath.Join(t.TempDir(), "dataset.json"),
			}))
			return s
		},
		"sqlite": func(t *testing.T) RecordStore {
			s := NewSQLiteRecordStore()
			require.NoError(t, s.Initialize(map[string]string{dbPathKey: ":memory:"}))
			return s
		},
	}
}

func TestStoreCohortRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer func() { _ = s.Close() }()

			_, err := s.LoadCohort()
			assert.ErrorIs(t, err, types.ErrNoCohort)

			cohort := newTestCohort(t)
			require.NoError(t, s.SaveCohort(cohort))

			loaded, err := s.LoadCohort()
			require.NoError(t, err)
			assert.Equal(t, cohort.ID, loaded.ID)
			assert.Len(t, loaded.Profiles, 4)
		})
	}
}

func TestStoreAppendAndList(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer func() { _ = s.Close() }()

			require.NoError(t, s.AppendInteraction(newTestRecord("agent_000")))
			require.NoError(t, s.AppendInteraction(newTestRecord("agent_001")))
			require.NoError(t, s.AppendSurvey(models.SurveyRecord{
				ID:        uuid.New().String(),
				Timestamp: time.Now().UTC(),
				AgentID:   "agent_000",
				Ratings:   map[int]int{1: 6},
			}))

			interactions, err := s.ListInteractions()
			require.NoError(t, err)
			require.Len(t, interactions, 2)
			assert.Equal(t, "agent_000", interactions[0].AgentID)
			assert.Equal(t, "agent_001", interactions[1].AgentID)

			surveys, err := s.ListSurveys()
			require.NoError(t, err)
			require.Len(t, surveys, 1)
			assert.Equal(t, 6, surveys[0].Ratings[1])

			counts, err := s.Counts()
			require.NoError(t, err)
			assert.Equal(t, 2, counts.Interactions)
			assert.Equal(t, 1, counts.Surveys)
			assert.False(t, counts.CohortSaved)
		})
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")

	s := NewFileRecordStore()
	require.NoError(t, s.Initialize(map[string]string{dataFileKey: path}))
	require.NoError(t, s.SaveCohort(newTestCohort(t)))
	require.NoError(t, s.AppendInteraction(newTestRecord("agent_000")))
	require.NoError(t, s.Close())

	reopened := NewFileRecordStore()
	require.NoError(t, reopened.Initialize(map[string]string{dataFileKey: path}))
	counts, err := reopened.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Interactions)
	assert.True(t, counts.CohortSaved)
}

func TestFileStoreChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")

	s := NewFileRecordStore()
	require.NoError(t, s.Initialize(map[string]string{dataFileKey: path}))
	require.NoError(t, s.AppendInteraction(newTestRecord("agent_000")))
	require.NoError(t, s.Close())

	// Tamper with the data file behind the store's back.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(raw, '\n'), 0o644))

	tampered := NewFileRecordStore()
	err = tampered.Initialize(map[string]string{dataFileKey: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestFileStoreYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")

	s := NewFileRecordStore()
	require.NoError(t, s.Initialize(map[string]string{
		dataFileKey:       path,
		dataFileFormatKey: "yaml",
	}))
	require.NoError(t, s.AppendInteraction(newTestRecord("agent_000")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "agentId: agent_000")
}

func TestFileStoreRejectsUnknownFormat(t *testing.T) {
	s := NewFileRecordStore()
	err := s.Initialize(map[string]string{dataFileFormatKey: "toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataFileFormat")
}
