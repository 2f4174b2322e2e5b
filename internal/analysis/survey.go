package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cothinklab/cothink/models"
)

var (
	likertRe    = regexp.MustCompile(`(?i)(?:Question\s*)?(\d+)[:.]\s*.*?(?:Scale|Rating)[:\s]*(\d+)`)
	reasoningRe = regexp.MustCompile(`(?i)(?:because|reason|explanation)[:\s]+(.*)`)

	surveyConnectivesRe = regexp.MustCompile(`(?i)\b(because|since|therefore|however|although)\b`)
	personalPronounRe   = regexp.MustCompile(`\b(I|my|me)\b`)
	numberRe            = regexp.MustCompile(`\b\d+\b`)
	specificQuestionRe  = regexp.MustCompile(`(?i)\b(when|where|how|why)\b`)
	exampleWordRe       = regexp.MustCompile(`(?i)\b(example|instance|specifically)\b`)
	culturalFamilyRe    = regexp.MustCompile(`(?i)\b(family|community|tradition|culture)\b`)
	culturalAuthorityRe = regexp.MustCompile(`(?i)\b(teacher|authority|respect|hierarchy)\b`)
	culturalGroupRe     = regexp.MustCompile(`(?i)\b(individual|group|collective|together)\b`)
)

var themeKeywords = map[string][]string{
	"trust":         {"trust", "reliable", "dependable", "confidence"},
	"collaboration": {"collaborate", "work together", "partnership", "teamwork"},
	"control":       {"control", "agency", "autonomy", "decision"},
	"learning":      {"learn", "understand", "knowledge", "education"},
	"uncertainty":   {"unsure", "uncertain", "doubt", "confused"},
	"efficiency":    {"faster", "efficient", "quick", "time-saving"},
	"creativity":    {"creative", "innovative", "original", "new ideas"},
	"cultural":      {"culture", "tradition", "family", "community"},
}

var themeOrder = []string{
	"trust", "collaboration", "control", "learning",
	"uncertainty", "efficiency", "creativity", "cultural",
}

// ParsedSurvey is the structured view extracted from a free-text survey
// answer.
type ParsedSurvey struct {
	Ratings   map[int]int
	Reasoning []string
	Themes    []string
	Quality   models.SurveyQuality
}

// ParseSurveyResponse extracts Likert ratings, reasoning lines, and themes
// from a raw survey answer and scores its quality. Parsing is permissive:
// answers that don't match the expected format simply yield fewer ratings.
func ParseSurveyResponse(raw string) ParsedSurvey {
	parsed := ParsedSurvey{Ratings: map[int]int{}}

	for _, m := range likertRe.FindAllStringSubmatch(raw, -1) {
		qNum, err1 := strconv.Atoi(m[1])
		rating, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			parsed.Ratings[qNum] = rating
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := reasoningRe.FindStringSubmatch(line); m != nil {
			if text := strings.TrimSpace(m[1]); text != "" {
				parsed.Reasoning = append(parsed.Reasoning, text)
			}
		}
	}

	parsed.Themes = ExtractThemes(raw)
	parsed.Quality = SurveyQuality(raw)
	return parsed
}

// ExtractThemes reports which research themes a text touches.
func ExtractThemes(text string) []string {
	lower := strings.ToLower(text)
	var themes []string
	for _, theme := range themeOrder {
		if containsAny(lower, themeKeywords[theme]) {
			themes = append(themes, theme)
		}
	}
	return themes
}

// SurveyQuality scores a raw survey answer on four sub-dimensions.
func SurveyQuality(response string) models.SurveyQuality {
	return models.SurveyQuality{
		Completeness:      minf(1, float64(len(strings.Fields(response)))/50),
		Coherence:         surveyCoherence(response),
		Specificity:       specificity(response),
		CulturalRelevance: culturalRelevance(response),
	}
}

func surveyCoherence(text string) float64 {
	sentences := strings.Split(text, ".")
	if len(sentences) < 2 {
		return 0.5
	}
	substantial := 0
	for _, s := range sentences {
		if len(strings.Fields(s)) > 3 {
			substantial++
		}
	}
	score := substantial + len(surveyConnectivesRe.FindAllString(text, -1))
	if personalPronounRe.MatchString(text) {
		score++
	}
	return minf(1, float64(score)/10)
}

func specificity(text string) float64 {
	score := len(numberRe.FindAllString(text, -1)) +
		len(specificQuestionRe.FindAllString(text, -1)) +
		len(exampleWordRe.FindAllString(text, -1))
	return minf(1, float64(score)/5)
}

func culturalRelevance(text string) float64 {
	score := len(culturalFamilyRe.FindAllString(text, -1)) +
		len(culturalAuthorityRe.FindAllString(text, -1)) +
		len(culturalGroupRe.FindAllString(text, -1))
	return minf(1, float64(score)/3)
}
