package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v3"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

const (
	defaultDataFile   = "dataset.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	formatJSON        = "json"
	formatYAML        = "yaml"
	defaultDataFormat = formatJSON
	checksumSuffix    = ".checksum"
)

// dataset is the on-disk document: the cohort plus everything collected.
type dataset struct {
	Cohort       *models.Cohort             `json:"cohort,omitempty" yaml:"cohort,omitempty"`
	Interactions []models.InteractionRecord `json:"interactions" yaml:"interactions"`
	Surveys      []models.SurveyRecord      `json:"surveys" yaml:"surveys"`
}

// FileRecordStore implements RecordStore on a single JSON or YAML file with
// a checksum sidecar to detect out-of-band edits.
type FileRecordStore struct {
	mu       sync.RWMutex
	filePath string
	format   string
	data     dataset
}

// NewFileRecordStore creates an uninitialized file store; Initialize must be
// called before use.
func NewFileRecordStore() *FileRecordStore {
	return &FileRecordStore{}
}

// Initialize configures the store. Supported config keys: dataFile (path)
// and dataFileFormat (json or yaml). The data file is created on first use.
func (s *FileRecordStore) Initialize(config map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		format := strings.ToLower(val)
		switch format {
		case formatJSON, formatYAML:
			s.format = format
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s (supported: json, yaml)", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	if dir := filepath.Dir(s.filePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return s.loadLocked()
}

func checksumOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *FileRecordStore) loadLocked() error {
	s.data = dataset{}

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.saveLocked()
		}
		return fmt.Errorf("read data file %s: %w", s.filePath, err)
	}
	if len(raw) == 0 {
		return nil
	}

	checksumPath := s.filePath + checksumSuffix
	if stored, err := os.ReadFile(checksumPath); err == nil {
		if strings.TrimSpace(string(stored)) != checksumOf(raw) {
			return fmt.Errorf("checksum mismatch for %s: file was modified outside the store", s.filePath)
		}
	}

	switch s.format {
	case formatYAML:
		if err := yaml.Unmarshal(raw, &s.data); err != nil {
			return fmt.Errorf("parse data file %s: %w", s.filePath, err)
		}
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return fmt.Errorf("parse data file %s: %w", s.filePath, err)
		}
	}
	return nil
}

func (s *FileRecordStore) saveLocked() error {
	var raw []byte
	var err error
	switch s.format {
	case formatYAML:
		raw, err = yaml.Marshal(s.data)
	default:
		raw, err = json.MarshalIndent(s.data, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace data file %s: %w", s.filePath, err)
	}
	if err := os.WriteFile(s.filePath+checksumSuffix, []byte(checksumOf(raw)), 0o644); err != nil {
		return fmt.Errorf("write checksum file: %w", err)
	}
	return nil
}

// SaveCohort persists the cohort, replacing any previous one.
func (s *FileRecordStore) SaveCohort(cohort models.Cohort) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Cohort = &cohort
	return s.saveLocked()
}

// LoadCohort returns the stored cohort.
func (s *FileRecordStore) LoadCohort() (models.Cohort, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Cohort == nil {
		return models.Cohort{}, types.ErrNoCohort
	}
	return *s.data.Cohort, nil
}

// AppendInteraction adds one interaction record and flushes to disk.
func (s *FileRecordStore) AppendInteraction(record models.InteractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Interactions = append(s.data.Interactions, record)
	return s.saveLocked()
}

// AppendSurvey adds one survey record and flushes to disk.
func (s *FileRecordStore) AppendSurvey(record models.SurveyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Surveys = append(s.data.Surveys, record)
	return s.saveLocked()
}

// ListInteractions returns all interaction records in insertion order.
func (s *FileRecordStore) ListInteractions() ([]models.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InteractionRecord, len(s.data.Interactions))
	copy(out, s.data.Interactions)
	return out, nil
}

// ListSurveys returns all survey records in insertion order.
func (s *FileRecordStore) ListSurveys() ([]models.SurveyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SurveyRecord, len(s.data.Surveys))
	copy(out, s.data.Surveys)
	return out, nil
}

// Counts reports the dataset sizes.
func (s *FileRecordStore) Counts() (DatasetCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DatasetCounts{
		Interactions: len(s.data.Interactions),
		Surveys:      len(s.data.Surveys),
		CohortSaved:  s.data.Cohort != nil,
	}, nil
}

// Close flushes nothing; writes happen on every append.
func (s *FileRecordStore) Close() error {
	return nil
}
