package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSurveyResponseRatings(t *testing.T) {
	raw := `Question 1: Rating: 6
Because the AI tutor explained things patiently and I could trust the steps.

Question 2: Rating 4
Reason: in my family we usually ask the teacher first.

3. I liked the collaboration. Rating: 7`

	parsed := ParseSurveyResponse(raw)
	require.Len(t, parsed.Ratings, 3)
	assert.Equal(t, 6, parsed.Ratings[1])
	assert.Equal(t, 4, parsed.Ratings[2])
	assert.Equal(t, 7, parsed.Ratings[3])

	require.NotEmpty(t, parsed.Reasoning)
	assert.Contains(t, parsed.Reasoning[0], "explained things patiently")
}

func TestParseSurveyResponseUnstructured(t *testing.T) {
	parsed := ParseSurveyResponse("I just wrote freely without any numbered answers.")
	assert.Empty(t, parsed.Ratings)
	assert.NotNil(t, parsed.Ratings)
}

func TestExtractThemes(t *testing.T) {
	themes := ExtractThemes("I trust the system and want to learn more, though my family tradition matters.")
	assert.Contains(t, themes, "trust")
	assert.Contains(t, themes, "learning")
	assert.Contains(t, themes, "cultural")
	assert.NotContains(t, themes, "efficiency")

	assert.Empty(t, ExtractThemes("xyzzy"))
}

func TestSurveyQualityScores(t *testing.T) {
	short := SurveyQuality("Fine.")
	assert.Less(t, short.Completeness, 0.2)
	assert.Equal(t, 0.5, short.Coherence)

	long := SurveyQuality(`I rated it 6 because the explanation was specific. For example, when the
tutor showed how the rule applies, my understanding improved. However, in our community we also
value the teacher's authority, therefore I double-checked with my study group.`)
	assert.Greater(t, long.Completeness, 0.7)
	assert.Greater(t, long.Coherence, 0.3)
	assert.Greater(t, long.Specificity, 0.3)
	assert.Greater(t, long.CulturalRelevance, 0.5)
}
