package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

func sampleRecords() []models.InteractionRecord {
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	return []models.InteractionRecord{
		{
			ID:              "11111111-1111-4111-8111-111111111111",
			Timestamp:       base,
			AgentID:         "agent_000",
			InteractionType: models.InteractionScenario,
			ScenarioName:    "Math Help Session",
			ScenarioType:    "problem_solving",
			Response:        "I would ask the tutor to walk me through the first step because I want to understand it.",
			ResponseWords:   18,
			Profile: models.ProfileSnapshot{
				Culture:            "us_individualistic",
				Age:                20,
				Gender:             "female",
				NativeLanguage:     "English",
				EnglishProficiency: "native",
				SES:                "middle",
				Mood:               "engaged_curious",
				Trust:              0.62,
				HelpSeeking:        0.48,
				AuthorityDeference: 0.3,
			},
			Quality: models.QualityMetrics{
				Coherence:           0.82,
				CulturalConsistency: 0.7,
				FoundationAlignment: 0.5,
				Complexity:          0.6,
			},
			Tags: models.AnalysisTags{ConstructsEvident: []string{"trust_calibration"}},
		},
		{
			ID:              "22222222-2222-4222-8222-222222222222",
			Timestamp:       base.Add(time.Minute),
			AgentID:         "agent_001",
			InteractionType: models.InteractionScenario,
			ScenarioName:    "Math Help Session",
			ScenarioType:    "problem_solving",
			Response:        "ok",
			ResponseWords:   1,
			Profile:         models.ProfileSnapshot{Culture: "east_asian"},
			QualityFiltered: true,
			FilterReasons:   []string{"response too short: 1 words"},
		},
	}
}

func sampleSurveys() []models.SurveyRecord {
	return []models.SurveyRecord{
		{
			ID:           "33333333-3333-4333-8333-333333333333",
			Timestamp:    time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC),
			AgentID:      "agent_000",
			SurveyType:   "post_interaction",
			ProfileName:  "us_individualistic_urban_high_ses_exam_stress_0",
			RawResponses: "Question 1: Rating 6\nBecause: the tutor adapted to my pace.",
			Ratings:      map[int]int{1: 6},
			Themes:       []string{"trust_building"},
			Quality:      models.SurveyQuality{Completeness: 0.4, Coherence: 0.6, Specificity: 0.2, CulturalRelevance: 0.3},
			Profile:      models.ProfileSnapshot{Culture: "us_individualistic"},
		},
	}
}

func TestExportAllFormats(t *testing.T) {
	fs := afero.NewMemMapFs()
	created, err := New(fs).Export(sampleRecords(), sampleSurveys(), Options{OutputDir: "/out"})
	require.NoError(t, err)
	require.Len(t, created, 4)

	for kind, path := range created {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, kind)
		assert.True(t, strings.HasPrefix(path, "/out/co_thinking_data_"), path)
	}

	raw, err := afero.ReadFile(fs, created["complete_json"])
	require.NoError(t, err)
	var doc struct {
		Interactions []models.InteractionRecord `json:"interactions"`
		Surveys      []models.SurveyRecord      `json:"surveys"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Interactions, 2)
	assert.Len(t, doc.Surveys, 1)
}

func TestExportInteractionsCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	created, err := New(fs).Export(sampleRecords(), nil, Options{
		OutputDir: "/out",
		Formats:   []string{FormatCSV},
	})
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, created["interactions_csv"])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "cultural_consistency")
	assert.NotContains(t, lines[0], "response,")
	assert.Contains(t, lines[1], "us_individualistic")
	assert.Contains(t, lines[1], "0.820")
	assert.Contains(t, lines[2], "true")
}

func TestExportIncludesRawResponses(t *testing.T) {
	fs := afero.NewMemMapFs()
	created, err := New(fs).Export(sampleRecords(), sampleSurveys(), Options{
		OutputDir:           "/out",
		Formats:             []string{FormatCSV},
		IncludeRawResponses: true,
	})
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, created["interactions_csv"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "walk me through the first step")

	raw, err = afero.ReadFile(fs, created["surveys_csv"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Rating 6")
}

func TestExportStrictExcludesFlagged(t *testing.T) {
	fs := afero.NewMemMapFs()
	created, err := New(fs).Export(sampleRecords(), nil, Options{
		OutputDir: "/out",
		Formats:   []string{FormatJSON},
		Strict:    true,
	})
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, created["complete_json"])
	require.NoError(t, err)
	var doc struct {
		Interactions []models.InteractionRecord `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Interactions, 1)
	assert.Equal(t, "agent_000", doc.Interactions[0].AgentID)
}

func TestExportMarkdownReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	created, err := New(fs).Export(sampleRecords(), sampleSurveys(), Options{
		OutputDir: "/out",
		Formats:   []string{FormatMarkdown},
		Prefix:    "pilot",
	})
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, created["research_report"])
	require.NoError(t, err)
	report := string(raw)
	assert.Contains(t, report, "# Co-Thinking Research Simulation Analysis Report")
	assert.Contains(t, created["research_report"], "pilot_report_")
}

func TestExportEmptyDataset(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Export(nil, nil, Options{OutputDir: "/out"})
	assert.ErrorIs(t, err, types.ErrNoRecords)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Export(sampleRecords(), nil, Options{
		OutputDir: "/out",
		Formats:   []string{"parquet"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
