// Package analysis scores and tags simulated student responses and
// aggregates the resulting dataset into research findings.
package analysis

import (
	"regexp"
	"strings"

	"github.com/cothinklab/cothink/models"
)

// Keyword families reused across scoring functions.
var (
	foundationKeywords = map[string][]string{
		"mollick":       {"partner", "collaboration", "human agency", "trust", "amplify", "cognitive partner"},
		"swiss_ai":      {"transparency", "human dignity", "privacy", "ethical", "explainable", "human-centered"},
		"people_factor": {"user experience", "training", "support", "diversity", "human impact", "adaptive"},
	}

	constructIndicators = map[string][]string{
		"cognitive_partnership":     {"together", "collaborate", "partner", "work with", "team up", "combine"},
		"trust_calibration":         {"trust", "reliable", "depend", "confidence", "believe", "verify"},
		"agency_distribution":       {"control", "decide", "choice", "authority", "responsibility", "ownership"},
		"metacognitive_awareness":   {"understand", "know", "aware", "realize", "recognize", "learn about"},
		"cognitive_load_management": {"easier", "difficult", "overwhelming", "manage", "handle", "process"},
	}

	emotionPatterns = map[string][]string{
		"excitement":   {"excited", "amazing", "awesome", "love", "fantastic"},
		"anxiety":      {"worried", "nervous", "anxious", "scared", "afraid"},
		"confidence":   {"confident", "sure", "certain", "definitely", "absolutely"},
		"confusion":    {"confused", "lost", "unclear", "puzzled", "bewildered"},
		"frustration":  {"frustrated", "annoying", "difficult", "struggling", "hard"},
		"satisfaction": {"satisfied", "pleased", "happy", "glad", "content"},
	}
)

var (
	connectivesRe      = regexp.MustCompile(`(?i)\b(because|since|therefore|however|although|but|and|so|thus)\b`)
	personalRefsRe     = regexp.MustCompile(`(?i)\b(I think|I believe|In my opinion|I would|I feel)\b`)
	individualRe       = regexp.MustCompile(`\b(i|my|myself|personally|individual)\b`)
	collectiveRe       = regexp.MustCompile(`\b(we|our|together|group|community|family|collective)\b`)
	individualShortRe  = regexp.MustCompile(`\b(i|my|myself)\b`)
	collectiveShortRe  = regexp.MustCompile(`\b(we|our|together)\b`)
	factualQuestionRe  = regexp.MustCompile(`(?i)\b(what|how|why|when|where)\b.*\?`)
	helpRequestRe      = regexp.MustCompile(`(?i)\b(could you|can you|would you|please|help me)\b`)
	confirmationRe     = regexp.MustCompile(`(?i)\b(is this|am I|should I|correct|right)\b.*\?`)
	clarificationRe    = regexp.MustCompile(`(?i)\b(explain|clarify|elaborate|mean|understand)\b`)
	hypotheticalRe     = regexp.MustCompile(`(?i)\b(what if|suppose|imagine|would it)\b`)
	exampleSeekingRe   = regexp.MustCompile(`\b(example|instance|like|such as)\b`)
	proceduralRe       = regexp.MustCompile(`\b(step|first|then|next|finally)\b`)
	reflectiveRe       = regexp.MustCompile(`\b(think|believe|opinion|feel|perspective)\b`)
	complexStructureRe = regexp.MustCompile(`(?i)\b(although|however|nevertheless|furthermore|consequently)\b`)
)

// ResponseAnalysis is the full per-response assessment.
type ResponseAnalysis struct {
	Quality    models.QualityMetrics
	Tags       models.AnalysisTags
	Linguistic LinguisticFeatures
}

// LinguisticFeatures describe surface structure of a response.
type LinguisticFeatures struct {
	WordCount              int     `json:"wordCount"`
	SentenceCount          int     `json:"sentenceCount"`
	AvgSentenceLength      float64 `json:"avgSentenceLength"`
	ComplexWords           int     `json:"complexWords"`
	QuestionCount          int     `json:"questionCount"`
	ExclamationCount       int     `json:"exclamationCount"`
	ProficiencyConsistency float64 `json:"proficiencyConsistency"`
}

// Analyzer scores responses against quality, cultural, and principle
// alignment criteria. Zero value is ready to use.
type Analyzer struct{}

// NewAnalyzer returns a response analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the full assessment of one response in the context of the
// responding agent's profile.
func (a *Analyzer) Analyze(response string, profile models.ProfileSnapshot) ResponseAnalysis {
	if strings.TrimSpace(response) == "" {
		return ResponseAnalysis{
			Tags: models.AnalysisTags{ResponseCategories: []string{"empty"}},
		}
	}

	return ResponseAnalysis{
		Quality: models.QualityMetrics{
			Coherence:           Coherence(response),
			CulturalConsistency: CulturalConsistency(response, profile.Culture),
			FoundationAlignment: FoundationAlignment(response),
			Complexity:          Complexity(response),
		},
		Tags: models.AnalysisTags{
			QuestionTypes:       questionTypes(response),
			ResponseCategories:  responseCategories(response),
			ConstructsEvident:   constructsEvident(response),
			EmotionalIndicators: emotionalIndicators(response),
		},
		Linguistic: a.linguisticFeatures(response, profile),
	}
}

func sentencesOf(response string) []string {
	var out []string
	for _, s := range strings.Split(response, ".") {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// Coherence combines sentence quality, logical connectives, and personal
// engagement into one [0,1] score.
func Coherence(response string) float64 {
	sentences := sentencesOf(response)
	if len(sentences) == 0 {
		return 0
	}

	substantial := 0
	for _, s := range sentences {
		if len(strings.Fields(s)) > 4 {
			substantial++
		}
	}
	structure := float64(substantial) / float64(len(sentences))

	connectives := minf(1, float64(len(connectivesRe.FindAllString(response, -1)))/5)
	personal := minf(1, float64(len(personalRefsRe.FindAllString(response, -1)))/3)

	// Fourth factor is a fixed question-answer alignment prior.
	return (structure + connectives + personal + 0.8) / 4
}

// CulturalConsistency checks whether pronoun usage matches the agent's
// cultural orientation.
func CulturalConsistency(response, culture string) float64 {
	lower := strings.ToLower(response)
	cultureLower := strings.ToLower(culture)

	switch {
	case strings.Contains(cultureLower, "individualistic"):
		markers := len(individualRe.FindAllString(lower, -1))
		return minf(1, float64(markers)/8)
	case strings.Contains(cultureLower, "collectivistic"):
		markers := len(collectiveRe.FindAllString(lower, -1))
		return minf(1, float64(markers)/6)
	case strings.Contains(cultureLower, "balanced"):
		ind := len(individualShortRe.FindAllString(lower, -1))
		col := len(collectiveShortRe.FindAllString(lower, -1))
		total := ind + col
		if total == 0 {
			total = 1
		}
		return 1 - absf(float64(ind-col))/float64(total)
	default:
		return 0.7
	}
}

// FoundationAlignment is the mean keyword-family alignment across the three
// grounding frameworks.
func FoundationAlignment(response string) float64 {
	lower := strings.ToLower(response)
	var sum float64
	for _, terms := range foundationKeywords {
		matches := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				matches++
			}
		}
		sum += minf(1, float64(matches)/float64(len(terms)))
	}
	return sum / float64(len(foundationKeywords))
}

// Complexity averages lexical diversity, sentence length, and complex
// structure density.
func Complexity(response string) float64 {
	if strings.TrimSpace(response) == "" {
		return 0
	}
	words := strings.Fields(response)
	sentences := sentencesOf(response)
	nSentences := len(sentences)
	if nSentences == 0 {
		nSentences = 1
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}
	nWords := len(words)
	if nWords == 0 {
		nWords = 1
	}
	lexical := float64(len(unique)) / float64(nWords)

	syntactic := minf(1, float64(len(words))/float64(nSentences)/15)
	semantic := minf(1, float64(len(complexStructureRe.FindAllString(response, -1)))/3)

	return (lexical + syntactic + semantic) / 3
}

func questionTypes(response string) []string {
	var types []string
	if factualQuestionRe.MatchString(response) {
		types = append(types, "factual_question")
	}
	if helpRequestRe.MatchString(response) {
		types = append(types, "request_for_help")
	}
	if confirmationRe.MatchString(response) {
		types = append(types, "confirmation_seeking")
	}
	if clarificationRe.MatchString(response) {
		types = append(types, "clarification_request")
	}
	if hypotheticalRe.MatchString(response) {
		types = append(types, "hypothetical_question")
	}
	return types
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func responseCategories(response string) []string {
	lower := strings.ToLower(response)
	var categories []string

	if containsAny(lower, []string{"thank", "appreciate", "helpful", "great"}) {
		categories = append(categories, "appreciative")
	}
	if containsAny(lower, []string{"confused", "unsure", "unclear", "don't understand"}) {
		categories = append(categories, "uncertain")
	}
	if containsAny(lower, []string{"agree", "correct", "right", "yes", "exactly"}) {
		categories = append(categories, "agreeable")
	}
	if containsAny(lower, []string{"however", "but", "disagree", "different", "not sure"}) {
		categories = append(categories, "questioning")
	}
	if exampleSeekingRe.MatchString(lower) {
		categories = append(categories, "example_seeking")
	}
	if len(proceduralRe.FindAllString(lower, -1)) > 1 {
		categories = append(categories, "procedural")
	}
	if reflectiveRe.MatchString(lower) {
		categories = append(categories, "reflective")
	}

	if len(categories) == 0 {
		return []string{"neutral"}
	}
	return categories
}

func constructsEvident(response string) []string {
	lower := strings.ToLower(response)
	var constructs []string
	for _, construct := range []string{
		"cognitive_partnership", "trust_calibration", "agency_distribution",
		"metacognitive_awareness", "cognitive_load_management",
	} {
		if containsAny(lower, constructIndicators[construct]) {
			constructs = append(constructs, construct)
		}
	}
	return constructs
}

func emotionalIndicators(response string) []string {
	lower := strings.ToLower(response)
	var emotions []string
	for _, emotion := range []string{
		"excitement", "anxiety", "confidence", "confusion", "frustration", "satisfaction",
	} {
		if containsAny(lower, emotionPatterns[emotion]) {
			emotions = append(emotions, emotion)
		}
	}
	return emotions
}

func (a *Analyzer) linguisticFeatures(response string, profile models.ProfileSnapshot) LinguisticFeatures {
	words := strings.Fields(response)
	sentences := sentencesOf(response)
	nSentences := len(sentences)
	if nSentences == 0 {
		nSentences = 1
	}

	complexWords := 0
	for _, w := range words {
		if len(w) > 6 {
			complexWords++
		}
	}

	return LinguisticFeatures{
		WordCount:              len(words),
		SentenceCount:          len(sentences),
		AvgSentenceLength:      float64(len(words)) / float64(nSentences),
		ComplexWords:           complexWords,
		QuestionCount:          strings.Count(response, "?"),
		ExclamationCount:       strings.Count(response, "!"),
		ProficiencyConsistency: proficiencyConsistency(response, profile.EnglishProficiency),
	}
}

// proficiencyConsistency checks whether vocabulary complexity matches the
// agent's stated English proficiency.
func proficiencyConsistency(response, proficiency string) float64 {
	words := strings.Fields(response)
	nWords := len(words)
	if nWords == 0 {
		nWords = 1
	}
	complexWords := 0
	for _, w := range words {
		if len(w) > 6 {
			complexWords++
		}
	}
	ratio := float64(complexWords) / float64(nWords)

	expected := map[string]float64{
		"native":       0.3,
		"fluent":       0.25,
		"intermediate": 0.15,
		"basic":        0.05,
	}
	want, ok := expected[strings.ToLower(proficiency)]
	if !ok {
		want = 0.2
	}
	denom := want
	if denom < 0.1 {
		denom = 0.1
	}
	return clamp01(1 - absf(ratio-want)/denom)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
