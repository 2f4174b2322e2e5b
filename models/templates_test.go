package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCohortDeterministic(t *testing.T) {
	a, err := GenerateCohort(12, "university_diverse", 42, nil)
	require.NoError(t, err)
	b, err := GenerateCohort(12, "university_diverse", 42, nil)
	require.NoError(t, err)

	require.Len(t, a.Profiles, 12)
	for i := range a.Profiles {
		// Cohort IDs differ per generation, profiles must not.
		assert.Equal(t, a.Profiles[i], b.Profiles[i], "profile %d", i)
	}
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateCohortSeedChangesProfiles(t *testing.T) {
	a, err := GenerateCohort(8, "university_diverse", 1, nil)
	require.NoError(t, err)
	b, err := GenerateCohort(8, "university_diverse", 2, nil)
	require.NoError(t, err)

	different := false
	for i := range a.Profiles {
		if a.Profiles[i].Demographic != b.Profiles[i].Demographic {
			different = true
			break
		}
	}
	assert.True(t, different, "different seeds should vary demographics")
}

func TestGenerateCohortCyclesCultures(t *testing.T) {
	cohort, err := GenerateCohort(8, "university_diverse", 7, nil)
	require.NoError(t, err)

	cultures := make(map[string]int)
	for _, p := range cohort.Profiles {
		cultures[p.Cultural.PrimaryCulture]++
	}
	// 8 agents over 4 templates: every template appears exactly twice.
	require.Len(t, cultures, 4)
	for culture, n := range cultures {
		assert.Equal(t, 2, n, culture)
	}
}

func TestGenerateCohortAgeRange(t *testing.T) {
	cohort, err := GenerateCohort(30, "high_school_multicultural", 99, nil)
	require.NoError(t, err)
	for _, p := range cohort.Profiles {
		assert.GreaterOrEqual(t, p.Demographic.Age, 14)
		assert.LessOrEqual(t, p.Demographic.Age, 18)
		assert.Equal(t, "k12", p.AgeGroup)
	}
}

func TestGenerateCohortEnabledCultures(t *testing.T) {
	cohort, err := GenerateCohort(6, "university_diverse", 3,
		[]string{CultureUSIndividualistic, CultureLatinAmerican})
	require.NoError(t, err)
	for _, p := range cohort.Profiles {
		assert.Contains(t,
			[]string{CultureUSIndividualistic, CultureLatinAmerican},
			p.Cultural.PrimaryCulture)
	}

	_, err = GenerateCohort(6, "university_diverse", 3, []string{"atlantis"})
	assert.Error(t, err)
}

func TestGenerateCohortUnknownContext(t *testing.T) {
	_, err := GenerateCohort(5, "space_station", 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown research context")
}

func TestBehavioralDerivation(t *testing.T) {
	g := NewGenerator(5)
	p, err := g.GenerateProfile("agent_000", CultureEastAsianCollectivistic,
		DemoUrbanHighSES, EmotionHighAchiever, 18, 24)
	require.NoError(t, err)

	// High power distance flows straight into authority deference.
	assert.InDelta(t, 0.8, p.Behavioral.AuthorityDeference, 1e-9)

	// trust = ua*0.3 + confidence*0.4 + (1-techAnxiety)*0.3
	wantTrust := 0.7*0.3 + p.Emotional.AcademicConfidence*0.4 + (1-p.Emotional.TechnologyAnxiety)*0.3
	assert.InDelta(t, wantTrust, p.Behavioral.BaselineTrust, 1e-9)

	// help seeking = pd*0.4 + support*0.6 with high SES support 0.8
	assert.InDelta(t, 0.8*0.4+0.8*0.6, p.Behavioral.HelpSeekingTendency, 1e-9)
}

func TestEmotionalModifiers(t *testing.T) {
	g := NewGenerator(11)
	p, err := g.GenerateProfile("agent_001", CultureUSIndividualistic,
		DemoRuralLowSES, EmotionStrugglingStudent, 18, 24)
	require.NoError(t, err)

	// Low SES adds stress, first generation lowers confidence.
	assert.InDelta(t, 0.8, p.Emotional.StressLevel, 1e-9)
	assert.InDelta(t, 0.2, p.Emotional.AcademicConfidence, 1e-9)
	assert.True(t, p.Demographic.FirstGenerationStudent)
}

func TestGenerateProfileUnknownTemplates(t *testing.T) {
	g := NewGenerator(1)
	_, err := g.GenerateProfile("a", "nowhere", DemoUrbanHighSES, EmotionExamStress, 18, 24)
	assert.Error(t, err)
	_, err = g.GenerateProfile("a", CultureUSIndividualistic, "nowhere", EmotionExamStress, 18, 24)
	assert.Error(t, err)
	_, err = g.GenerateProfile("a", CultureUSIndividualistic, DemoUrbanHighSES, "nowhere", 18, 24)
	assert.Error(t, err)
}

func TestGeneratedProfilesValidate(t *testing.T) {
	cohort, err := GenerateCohort(20, "adult_learners", 123, nil)
	require.NoError(t, err)
	require.NoError(t, ValidateStruct(cohort))
	for _, p := range cohort.Profiles {
		assert.NoError(t, ValidateStruct(p), p.AgentID)
	}
}
