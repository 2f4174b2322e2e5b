package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

const dbPathKey = "dbPath"

// SQLiteRecordStore implements RecordStore on an embedded SQLite database.
// Records are stored as JSON payloads with the fields used for filtering
// promoted to columns.
type SQLiteRecordStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteRecordStore creates an uninitialized SQLite store; Initialize
// must be called before use.
func NewSQLiteRecordStore() *SQLiteRecordStore {
	return &SQLiteRecordStore{}
}

// Initialize opens the database and creates the schema. Supported config
// keys: dbPath (file path, or ":memory:" for an in-memory database).
func (s *SQLiteRecordStore) Initialize(config map[string]string) error {
	path := config[dbPathKey]
	if path == "" {
		path = "dataset.db"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	// modernc sqlite is single-writer; serialize access through one conn.
	db.SetMaxOpenConns(1)

	s.db = db
	s.path = path
	return s.initSchema()
}

func (s *SQLiteRecordStore) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS cohort (
	id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	agent_id TEXT NOT NULL,
	interaction_type TEXT NOT NULL,
	scenario_type TEXT,
	created_at TEXT NOT NULL,
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS surveys (
	id TEXT PRIMARY KEY,
	agent_id TEXT NOT NULL,
	survey_type TEXT,
	created_at TEXT NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_agent ON interactions(agent_id);
CREATE INDEX IF NOT EXISTS idx_surveys_agent ON surveys(agent_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveCohort replaces the stored cohort.
func (s *SQLiteRecordStore) SaveCohort(cohort models.Cohort) error {
	payload, err := json.Marshal(cohort)
	if err != nil {
		return fmt.Errorf("marshal cohort: %w", err)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cohort`); err != nil {
		return fmt.Errorf("clear cohort: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO cohort (id, payload) VALUES (?, ?)`, cohort.ID, string(payload)); err != nil {
		return fmt.Errorf("insert cohort: %w", err)
	}
	return tx.Commit()
}

// LoadCohort returns the stored cohort.
func (s *SQLiteRecordStore) LoadCohort() (models.Cohort, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM cohort LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Cohort{}, types.ErrNoCohort
	}
	if err != nil {
		return models.Cohort{}, fmt.Errorf("load cohort: %w", err)
	}
	var cohort models.Cohort
	if err := json.Unmarshal([]byte(payload), &cohort); err != nil {
		return models.Cohort{}, fmt.Errorf("parse stored cohort: %w", err)
	}
	return cohort, nil
}

// AppendInteraction inserts one interaction record.
func (s *SQLiteRecordStore) AppendInteraction(record models.InteractionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO interactions (id, agent_id, interaction_type, scenario_type, created_at, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.AgentID, string(record.InteractionType), record.ScenarioType,
		record.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert interaction %s: %w", record.ID, err)
	}
	return nil
}

// AppendSurvey inserts one survey record.
func (s *SQLiteRecordStore) AppendSurvey(record models.SurveyRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO surveys (id, agent_id, survey_type, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.AgentID, record.SurveyType,
		record.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert survey %s: %w", record.ID, err)
	}
	return nil
}

// ListInteractions returns all interaction records in insertion order.
func (s *SQLiteRecordStore) ListInteractions() ([]models.InteractionRecord, error) {
	rows, err := s.db.Query(`SELECT payload FROM interactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.InteractionRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var record models.InteractionRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("parse stored interaction: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListSurveys returns all survey records in insertion order.
func (s *SQLiteRecordStore) ListSurveys() ([]models.SurveyRecord, error) {
	rows, err := s.db.Query(`SELECT payload FROM surveys ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.SurveyRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var record models.SurveyRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("parse stored survey: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Counts reports the dataset sizes.
func (s *SQLiteRecordStore) Counts() (DatasetCounts, error) {
	var counts DatasetCounts
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&counts.Interactions); err != nil {
		return counts, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM surveys`).Scan(&counts.Surveys); err != nil {
		return counts, err
	}
	var cohorts int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cohort`).Scan(&cohorts); err != nil {
		return counts, err
	}
	counts.CohortSaved = cohorts > 0
	return counts, nil
}

// Close closes the underlying database.
func (s *SQLiteRecordStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
