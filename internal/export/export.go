// Package export writes the collected dataset out in the formats research
// tooling consumes: a complete JSON dump, flat CSVs, and a markdown report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/cothinklab/cothink/internal/analysis"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

// Format names accepted by the exporter.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Options control one export run.
type Options struct {
	// OutputDir receives the exported files.
	OutputDir string

	// Formats to produce; empty means all.
	Formats []string

	// Prefix names the exported files; defaults to "co_thinking_data".
	Prefix string

	// Strict excludes records the quality gate flagged.
	Strict bool

	// IncludeRawResponses keeps full response text in the CSVs.
	IncludeRawResponses bool
}

// Exporter writes datasets through an afero filesystem so exports are
// testable without touching disk.
type Exporter struct {
	fs afero.Fs
}

// New creates an exporter on the given filesystem.
func New(fs afero.Fs) *Exporter {
	return &Exporter{fs: fs}
}

// Export writes the dataset in the requested formats and returns a map of
// artifact kind to created file path.
func (e *Exporter) Export(records []models.InteractionRecord, surveys []models.SurveyRecord, opts Options) (map[string]string, error) {
	if len(records) == 0 && len(surveys) == 0 {
		return nil, types.ErrNoRecords
	}
	if opts.Strict {
		records = excludeFlagged(records)
	}
	if opts.Prefix == "" {
		opts.Prefix = "co_thinking_data"
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{FormatJSON, FormatCSV, FormatMarkdown}
	}

	if err := e.fs.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", opts.OutputDir, err)
	}

	now := time.Now()
	stamp := now.Format("20060102_150405")
	created := map[string]string{}

	for _, format := range formats {
		switch strings.ToLower(format) {
		case FormatJSON:
			path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_complete_%s.json", opts.Prefix, stamp))
			if err := e.writeCompleteJSON(path, records, surveys); err != nil {
				return nil, err
			}
			created["complete_json"] = path

		case FormatCSV:
			ipath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_interactions_%s.csv", opts.Prefix, stamp))
			if err := e.writeInteractionsCSV(ipath, records, opts.IncludeRawResponses); err != nil {
				return nil, err
			}
			created["interactions_csv"] = ipath

			spath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_surveys_%s.csv", opts.Prefix, stamp))
			if err := e.writeSurveysCSV(spath, surveys, opts.IncludeRawResponses); err != nil {
				return nil, err
			}
			created["surveys_csv"] = spath

		case FormatMarkdown:
			path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_report_%s.md", opts.Prefix, stamp))
			if err := e.writeReport(path, records, surveys, now); err != nil {
				return nil, err
			}
			created["research_report"] = path

		default:
			return nil, fmt.Errorf("unsupported export format: %s (supported: json, csv, markdown)", format)
		}
	}
	return created, nil
}

func excludeFlagged(records []models.InteractionRecord) []models.InteractionRecord {
	var out []models.InteractionRecord
	for _, r := range records {
		if !r.QualityFiltered {
			out = append(out, r)
		}
	}
	return out
}

func (e *Exporter) writeCompleteJSON(path string, records []models.InteractionRecord, surveys []models.SurveyRecord) error {
	doc := struct {
		ExportedAt   time.Time                  `json:"exportedAt"`
		Interactions []models.InteractionRecord `json:"interactions"`
		Surveys      []models.SurveyRecord      `json:"surveys"`
	}{time.Now().UTC(), records, surveys}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := afero.WriteFile(e.fs, path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) writeInteractionsCSV(path string, records []models.InteractionRecord, includeRaw bool) error {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"id", "timestamp", "agent_id", "interaction_type", "scenario_name", "scenario_type",
		"culture", "age", "gender", "native_language", "english_proficiency", "ses", "mood",
		"trust", "help_seeking", "authority_deference",
		"response_words", "coherence", "cultural_consistency", "foundation_alignment",
		"complexity", "constructs_evident", "quality_filtered", "error",
	}
	if includeRaw {
		header = append(header, "response")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.AgentID,
			string(r.InteractionType),
			r.ScenarioName,
			r.ScenarioType,
			r.Profile.Culture,
			strconv.Itoa(r.Profile.Age),
			r.Profile.Gender,
			r.Profile.NativeLanguage,
			r.Profile.EnglishProficiency,
			r.Profile.SES,
			r.Profile.Mood,
			formatFloat(r.Profile.Trust),
			formatFloat(r.Profile.HelpSeeking),
			formatFloat(r.Profile.AuthorityDeference),
			strconv.Itoa(r.ResponseWords),
			formatFloat(r.Quality.Coherence),
			formatFloat(r.Quality.CulturalConsistency),
			formatFloat(r.Quality.FoundationAlignment),
			formatFloat(r.Quality.Complexity),
			strings.Join(r.Tags.ConstructsEvident, ";"),
			strconv.FormatBool(r.QualityFiltered),
			r.Error,
		}
		if includeRaw {
			row = append(row, r.Response)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) writeSurveysCSV(path string, surveys []models.SurveyRecord, includeRaw bool) error {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"id", "timestamp", "agent_id", "survey_type", "profile_name", "culture",
		"ratings", "themes", "completeness", "coherence", "specificity", "cultural_relevance", "error",
	}
	if includeRaw {
		header = append(header, "raw_responses")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range surveys {
		row := []string{
			s.ID,
			s.Timestamp.UTC().Format(time.RFC3339),
			s.AgentID,
			s.SurveyType,
			s.ProfileName,
			s.Profile.Culture,
			formatRatings(s.Ratings),
			strings.Join(s.Themes, ";"),
			formatFloat(s.Quality.Completeness),
			formatFloat(s.Quality.Coherence),
			formatFloat(s.Quality.Specificity),
			formatFloat(s.Quality.CulturalRelevance),
			s.Error,
		}
		if includeRaw {
			row = append(row, s.RawResponses)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) writeReport(path string, records []models.InteractionRecord, surveys []models.SurveyRecord, now time.Time) error {
	result, err := analysis.AnalyzeDataset(records, surveys)
	if err != nil && err != types.ErrNoRecords {
		return err
	}
	report, err := analysis.RenderReport(result, now)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatRatings(ratings map[int]int) string {
	if len(ratings) == 0 {
		return ""
	}
	keys := make([]int, 0, len(ratings))
	for k := range ratings {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("q%d=%d", k, ratings[k])
	}
	return strings.Join(parts, ";")
}
