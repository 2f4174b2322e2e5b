package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

func sampleRecords() []models.InteractionRecord {
	cultures := []string{
		models.CultureUSIndividualistic,
		models.CultureEastAsianCollectivistic,
		models.CultureEuropeanBalanced,
		models.CultureLatinAmerican,
	}
	var records []models.InteractionRecord
	for i := 0; i < 8; i++ {
		culture := cultures[i%len(cultures)]
		records = append(records, models.InteractionRecord{
			AgentID:         fmt.Sprintf("agent_%03d", i),
			InteractionType: models.InteractionScenario,
			ScenarioType:    "problem_solving",
			ResponseWords:   80 + i*10,
			Profile: models.ProfileSnapshot{
				Culture:            culture,
				Age:                18 + i,
				NativeLanguage:     "English",
				EnglishProficiency: "fluent",
				SES:                "middle",
				Mood:               "curious",
				Trust:              0.5 + float64(i)*0.05,
				HelpSeeking:        0.6,
				AuthorityDeference: 0.4,
			},
			Quality: models.QualityMetrics{
				Coherence:           0.75 + float64(i%3)*0.05,
				CulturalConsistency: 0.6,
				FoundationAlignment: 0.55 + float64(i%4)*0.05,
				Complexity:          0.5,
			},
			Tags: models.AnalysisTags{
				ConstructsEvident: []string{"trust_calibration"},
			},
		})
	}
	return records
}

func TestAnalyzeDatasetEmpty(t *testing.T) {
	_, err := AnalyzeDataset(nil, nil)
	assert.ErrorIs(t, err, types.ErrNoRecords)

	// Records that all errored count as no data.
	_, err = AnalyzeDataset([]models.InteractionRecord{{AgentID: "a", Error: "quota"}}, nil)
	assert.ErrorIs(t, err, types.ErrNoRecords)
}

func TestAnalyzeDatasetSummary(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	assert.Equal(t, 8, a.Summary.TotalInteractions)
	assert.Equal(t, 8, a.Summary.UniqueAgents)
	assert.Equal(t, 4, a.Summary.CulturalDiversity)
	assert.Equal(t, [2]int{18, 25}, a.Summary.AgeRange)
	assert.Equal(t, []string{"problem_solving"}, a.Summary.ScenarioTypes)
	assert.InDelta(t, 115.0, a.Summary.AvgResponseWords, 0.1)
}

func TestAnalyzeDatasetCultures(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	require.Len(t, a.Cultures, 4)
	us := a.Cultures[models.CultureUSIndividualistic]
	assert.Equal(t, 2, us.Participants)
	assert.Equal(t, []string{"trust_calibration"}, us.CommonConstructs)
}

func TestAnalyzeDatasetConstructs(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	stats, ok := a.Constructs["trust_calibration"]
	require.True(t, ok)
	assert.Equal(t, 8, stats.Frequency)
	assert.Equal(t, 100.0, stats.Percentage)
	assert.NotContains(t, a.Constructs, "cognitive_partnership")
}

func TestAnalyzeDatasetRecommendations(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	require.Len(t, a.Recommendations, 4)
	assert.Contains(t, a.Recommendations[0], "suitable for research use")
	assert.Contains(t, a.Recommendations[1], "Good cultural diversity")
	assert.Contains(t, a.Recommendations[3], "increasing sample size")
}

func TestAnalyzeDatasetBehavioral(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	assert.Len(t, a.Behavioral.TrustByCulture, 4)
	assert.Contains(t, a.Behavioral.TrustByAgeGroup, "18-25")
	assert.Equal(t, 0.4, a.Behavioral.AuthorityBySES["middle"])
}

func TestRenderReport(t *testing.T) {
	a, err := AnalyzeDataset(sampleRecords(), nil)
	require.NoError(t, err)

	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	report, err := RenderReport(a, now)
	require.NoError(t, err)

	assert.Contains(t, report, "# Co-Thinking Research Simulation Analysis Report")
	assert.Contains(t, report, "Generated: 2026-08-25 10:00:00")
	assert.Contains(t, report, "8 interactions from 8 diverse student agents")
	assert.Contains(t, report, "### Trust Calibration")
	assert.Contains(t, report, "## Research Recommendations")
	assert.Contains(t, report, "1. High response quality")
}

func TestRenderReportNoData(t *testing.T) {
	report, err := RenderReport(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, report, "**Error**: No interaction records to analyze")
	assert.Contains(t, report, "Check API key configuration")
}
