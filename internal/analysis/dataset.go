package analysis

import (
	"math"
	"sort"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/types"
)

// Distribution summarizes a metric across the dataset.
type Distribution struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// SummaryStatistics are the headline numbers of a dataset.
type SummaryStatistics struct {
	TotalInteractions      int      `json:"totalInteractions"`
	UniqueAgents           int      `json:"uniqueAgents"`
	AvgResponseWords       float64  `json:"avgResponseWords"`
	ResponseWordsStd       float64  `json:"responseWordsStd"`
	CulturalDiversity      int      `json:"culturalDiversity"`
	AgeRange               [2]int   `json:"ageRange"`
	AvgCoherence           float64  `json:"avgCoherence"`
	AvgFoundationAlignment float64  `json:"avgFoundationAlignment"`
	ScenarioTypes          []string `json:"scenarioTypes"`
	Languages              []string `json:"languages"`
}

// CulturePatterns aggregates one cultural group.
type CulturePatterns struct {
	Participants           int      `json:"participants"`
	AvgResponseWords       float64  `json:"avgResponseWords"`
	AvgTrust               float64  `json:"avgTrust"`
	AvgAuthorityDeference  float64  `json:"avgAuthorityDeference"`
	CommonConstructs       []string `json:"commonConstructs"`
	AvgCoherence           float64  `json:"avgCoherence"`
	AvgCulturalConsistency float64  `json:"avgCulturalConsistency"`
	AvgFoundationAlignment float64  `json:"avgFoundationAlignment"`
}

// ConstructStats describes how often one psychological construct surfaced.
type ConstructStats struct {
	Frequency              int            `json:"frequency"`
	Percentage             float64        `json:"percentage"`
	CulturalDistribution   map[string]int `json:"culturalDistribution"`
	AvgCoherence           float64        `json:"avgCoherence"`
	AvgFoundationAlignment float64        `json:"avgFoundationAlignment"`
}

// QualityAnalysis summarizes response quality across the dataset.
type QualityAnalysis struct {
	Coherence            Distribution       `json:"coherence"`
	FoundationAlignment  Distribution       `json:"foundationAlignment"`
	HighQualityResponses int                `json:"highQualityResponses"`
	LowQualityResponses  int                `json:"lowQualityResponses"`
	FilteredResponses    int                `json:"filteredResponses"`
	CoherenceByCulture   map[string]float64 `json:"coherenceByCulture"`
}

// BehavioralPatterns groups behavioral dials by demographic slices.
type BehavioralPatterns struct {
	TrustByCulture       map[string]float64 `json:"trustByCulture"`
	TrustByAgeGroup      map[string]float64 `json:"trustByAgeGroup"`
	TrustRange           [2]float64         `json:"trustRange"`
	HelpSeekingByCulture map[string]float64 `json:"helpSeekingByCulture"`
	HelpSeekingByMood    map[string]float64 `json:"helpSeekingByMood"`
	AuthorityByCulture   map[string]float64 `json:"authorityByCulture"`
	AuthorityBySES       map[string]float64 `json:"authorityBySes"`
}

// AlignmentAnalysis summarizes foundation alignment patterns.
type AlignmentAnalysis struct {
	Overall              float64            `json:"overall"`
	ByCulture            map[string]float64 `json:"byCulture"`
	ByScenario           map[string]float64 `json:"byScenario"`
	LowCases             int                `json:"lowCases"`
	HighCases            int                `json:"highCases"`
	CorrelationTrust     float64            `json:"correlationTrust"`
	CorrelationCoherence float64            `json:"correlationCoherence"`
	BestAlignedCulture   string             `json:"bestAlignedCulture"`
}

// DatasetAnalysis is the complete research analysis of a run.
type DatasetAnalysis struct {
	Summary         SummaryStatistics          `json:"summary"`
	Cultures        map[string]CulturePatterns `json:"cultures"`
	Constructs      map[string]ConstructStats  `json:"constructs"`
	Quality         QualityAnalysis            `json:"quality"`
	Behavioral      BehavioralPatterns         `json:"behavioral"`
	Alignment       AlignmentAnalysis          `json:"alignment"`
	SurveyCount     int                        `json:"surveyCount"`
	Recommendations []string                   `json:"recommendations"`
}

// AnalyzeDataset aggregates the collected records into research findings.
// Records that carry an error are excluded from the statistics.
func AnalyzeDataset(records []models.InteractionRecord, surveys []models.SurveyRecord) (*DatasetAnalysis, error) {
	var valid []models.InteractionRecord
	for _, r := range records {
		if r.Error == "" {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, types.ErrNoRecords
	}

	a := &DatasetAnalysis{
		Cultures:    map[string]CulturePatterns{},
		Constructs:  map[string]ConstructStats{},
		SurveyCount: len(surveys),
	}
	a.Summary = summarize(valid)
	a.Cultures = culturePatterns(valid)
	a.Constructs = constructStats(valid)
	a.Quality = qualityAnalysis(valid)
	a.Behavioral = behavioralPatterns(valid)
	a.Alignment = alignmentAnalysis(valid)
	a.Recommendations = recommendations(valid)
	return a, nil
}

func summarize(records []models.InteractionRecord) SummaryStatistics {
	agents := map[string]struct{}{}
	cultures := map[string]struct{}{}
	languages := map[string]struct{}{}
	scenarios := map[string]struct{}{}

	var words, coherence, alignment []float64
	minAge, maxAge := math.MaxInt32, 0
	for _, r := range records {
		agents[r.AgentID] = struct{}{}
		cultures[r.Profile.Culture] = struct{}{}
		languages[r.Profile.NativeLanguage] = struct{}{}
		if r.ScenarioType != "" {
			scenarios[r.ScenarioType] = struct{}{}
		}
		words = append(words, float64(r.ResponseWords))
		coherence = append(coherence, r.Quality.Coherence)
		alignment = append(alignment, r.Quality.FoundationAlignment)
		if r.Profile.Age < minAge {
			minAge = r.Profile.Age
		}
		if r.Profile.Age > maxAge {
			maxAge = r.Profile.Age
		}
	}

	return SummaryStatistics{
		TotalInteractions:      len(records),
		UniqueAgents:           len(agents),
		AvgResponseWords:       round1(mean(words)),
		ResponseWordsStd:       round1(std(words)),
		CulturalDiversity:      len(cultures),
		AgeRange:               [2]int{minAge, maxAge},
		AvgCoherence:           round2(mean(coherence)),
		AvgFoundationAlignment: round2(mean(alignment)),
		ScenarioTypes:          sortedKeys(scenarios),
		Languages:              sortedKeys(languages),
	}
}

func culturePatterns(records []models.InteractionRecord) map[string]CulturePatterns {
	byCulture := groupBy(records, func(r models.InteractionRecord) string { return r.Profile.Culture })
	out := make(map[string]CulturePatterns, len(byCulture))
	for culture, rs := range byCulture {
		if culture == "" {
			continue
		}
		counts := map[string]int{}
		for _, r := range rs {
			for _, c := range r.Tags.ConstructsEvident {
				counts[c]++
			}
		}
		out[culture] = CulturePatterns{
			Participants:           len(rs),
			AvgResponseWords:       round1(meanOf(rs, func(r models.InteractionRecord) float64 { return float64(r.ResponseWords) })),
			AvgTrust:               round2(meanOf(rs, func(r models.InteractionRecord) float64 { return r.Profile.Trust })),
			AvgAuthorityDeference:  round2(meanOf(rs, func(r models.InteractionRecord) float64 { return r.Profile.AuthorityDeference })),
			CommonConstructs:       topN(counts, 3),
			AvgCoherence:           round2(meanOf(rs, func(r models.InteractionRecord) float64 { return r.Quality.Coherence })),
			AvgCulturalConsistency: round2(meanOf(rs, func(r models.InteractionRecord) float64 { return r.Quality.CulturalConsistency })),
			AvgFoundationAlignment: round2(meanOf(rs, func(r models.InteractionRecord) float64 { return r.Quality.FoundationAlignment })),
		}
	}
	return out
}

func constructStats(records []models.InteractionRecord) map[string]ConstructStats {
	out := map[string]ConstructStats{}
	for _, construct := range []string{
		"cognitive_partnership", "trust_calibration", "agency_distribution",
		"metacognitive_awareness", "cognitive_load_management",
	} {
		var matched []models.InteractionRecord
		for _, r := range records {
			for _, c := range r.Tags.ConstructsEvident {
				if c == construct {
					matched = append(matched, r)
					break
				}
			}
		}
		if len(matched) == 0 {
			continue
		}
		dist := map[string]int{}
		for _, r := range matched {
			dist[r.Profile.Culture]++
		}
		out[construct] = ConstructStats{
			Frequency:              len(matched),
			Percentage:             round1(float64(len(matched)) / float64(len(records)) * 100),
			CulturalDistribution:   dist,
			AvgCoherence:           round2(meanOf(matched, func(r models.InteractionRecord) float64 { return r.Quality.Coherence })),
			AvgFoundationAlignment: round2(meanOf(matched, func(r models.InteractionRecord) float64 { return r.Quality.FoundationAlignment })),
		}
	}
	return out
}

func qualityAnalysis(records []models.InteractionRecord) QualityAnalysis {
	var coherence, alignment []float64
	high, low, filtered := 0, 0, 0
	for _, r := range records {
		coherence = append(coherence, r.Quality.Coherence)
		alignment = append(alignment, r.Quality.FoundationAlignment)
		if r.Quality.Coherence > 0.8 {
			high++
		}
		if r.Quality.Coherence < 0.5 {
			low++
		}
		if r.QualityFiltered {
			filtered++
		}
	}
	return QualityAnalysis{
		Coherence:            distribution(coherence),
		FoundationAlignment:  distribution(alignment),
		HighQualityResponses: high,
		LowQualityResponses:  low,
		FilteredResponses:    filtered,
		CoherenceByCulture: groupMean(records,
			func(r models.InteractionRecord) string { return r.Profile.Culture },
			func(r models.InteractionRecord) float64 { return r.Quality.Coherence }),
	}
}

func behavioralPatterns(records []models.InteractionRecord) BehavioralPatterns {
	trust := func(r models.InteractionRecord) float64 { return r.Profile.Trust }
	minTrust, maxTrust := 1.0, 0.0
	for _, r := range records {
		if r.Profile.Trust < minTrust {
			minTrust = r.Profile.Trust
		}
		if r.Profile.Trust > maxTrust {
			maxTrust = r.Profile.Trust
		}
	}
	return BehavioralPatterns{
		TrustByCulture:  groupMean(records, func(r models.InteractionRecord) string { return r.Profile.Culture }, trust),
		TrustByAgeGroup: groupMean(records, func(r models.InteractionRecord) string { return ageBucket(r.Profile.Age) }, trust),
		TrustRange:      [2]float64{round2(minTrust), round2(maxTrust)},
		HelpSeekingByCulture: groupMean(records,
			func(r models.InteractionRecord) string { return r.Profile.Culture },
			func(r models.InteractionRecord) float64 { return r.Profile.HelpSeeking }),
		HelpSeekingByMood: groupMean(records,
			func(r models.InteractionRecord) string { return r.Profile.Mood },
			func(r models.InteractionRecord) float64 { return r.Profile.HelpSeeking }),
		AuthorityByCulture: groupMean(records,
			func(r models.InteractionRecord) string { return r.Profile.Culture },
			func(r models.InteractionRecord) float64 { return r.Profile.AuthorityDeference }),
		AuthorityBySES: groupMean(records,
			func(r models.InteractionRecord) string { return r.Profile.SES },
			func(r models.InteractionRecord) float64 { return r.Profile.AuthorityDeference }),
	}
}

func alignmentAnalysis(records []models.InteractionRecord) AlignmentAnalysis {
	var alignment, trust, coherence []float64
	low, high := 0, 0
	for _, r := range records {
		alignment = append(alignment, r.Quality.FoundationAlignment)
		trust = append(trust, r.Profile.Trust)
		coherence = append(coherence, r.Quality.Coherence)
		if r.Quality.FoundationAlignment < 0.5 {
			low++
		}
		if r.Quality.FoundationAlignment > 0.8 {
			high++
		}
	}
	byCulture := groupMean(records,
		func(r models.InteractionRecord) string { return r.Profile.Culture },
		func(r models.InteractionRecord) float64 { return r.Quality.FoundationAlignment })

	best := ""
	bestVal := -1.0
	for culture, v := range byCulture {
		if v > bestVal || (v == bestVal && culture < best) {
			best, bestVal = culture, v
		}
	}

	return AlignmentAnalysis{
		Overall:   round2(mean(alignment)),
		ByCulture: byCulture,
		ByScenario: groupMean(records,
			func(r models.InteractionRecord) string { return r.ScenarioType },
			func(r models.InteractionRecord) float64 { return r.Quality.FoundationAlignment }),
		LowCases:             low,
		HighCases:            high,
		CorrelationTrust:     round2(correlation(alignment, trust)),
		CorrelationCoherence: round2(correlation(alignment, coherence)),
		BestAlignedCulture:   best,
	}
}

func recommendations(records []models.InteractionRecord) []string {
	var coherence, alignment []float64
	cultures := map[string]struct{}{}
	for _, r := range records {
		coherence = append(coherence, r.Quality.Coherence)
		alignment = append(alignment, r.Quality.FoundationAlignment)
		cultures[r.Profile.Culture] = struct{}{}
	}

	var recs []string
	if mean(coherence) > 0.7 {
		recs = append(recs, "High response quality suggests simulation is suitable for research use")
	} else {
		recs = append(recs, "Consider improving agent prompts to increase response coherence")
	}
	if len(cultures) >= 4 {
		recs = append(recs, "Good cultural diversity achieved for cross-cultural research")
	} else {
		recs = append(recs, "Consider adding more cultural backgrounds for comprehensive diversity")
	}
	if mean(alignment) > 0.6 {
		recs = append(recs, "Strong foundation alignment validates theoretical consistency")
	} else {
		recs = append(recs, "Review foundation document integration to improve theoretical alignment")
	}
	if len(records) > 100 {
		recs = append(recs, "Sample size adequate for statistical analysis")
	} else {
		recs = append(recs, "Consider increasing sample size for more robust statistical analysis")
	}
	return recs
}

func ageBucket(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age <= 25:
		return "18-25"
	case age <= 35:
		return "26-35"
	case age <= 50:
		return "36-50"
	default:
		return "Over 50"
	}
}

func groupBy(records []models.InteractionRecord, key func(models.InteractionRecord) string) map[string][]models.InteractionRecord {
	out := map[string][]models.InteractionRecord{}
	for _, r := range records {
		out[key(r)] = append(out[key(r)], r)
	}
	return out
}

func groupMean(records []models.InteractionRecord, key func(models.InteractionRecord) string, value func(models.InteractionRecord) float64) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		sums[k] += value(r)
		counts[k]++
	}
	out := make(map[string]float64, len(sums))
	for k, sum := range sums {
		out[k] = round2(sum / float64(counts[k]))
	}
	return out
}

func meanOf(records []models.InteractionRecord, value func(models.InteractionRecord) float64) float64 {
	var vals []float64
	for _, r := range records {
		vals = append(vals, value(r))
	}
	return mean(vals)
}

func topN(counts map[string]int, n int) []string {
	type kv struct {
		key   string
		count int
	}
	pairs := make([]kv, 0, len(counts))
	for k, c := range counts {
		pairs = append(pairs, kv{k, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].key < pairs[j].key
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.key
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func distribution(vals []float64) Distribution {
	if len(vals) == 0 {
		return Distribution{}
	}
	minV, maxV := vals[0], vals[0]
	for _, v := range vals {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return Distribution{
		Mean: round2(mean(vals)),
		Std:  round2(std(vals)),
		Min:  round2(minV),
		Max:  round2(maxV),
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func std(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

func correlation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return 0
	}
	ma, mb := mean(a), mean(b)
	var cov, va, vb float64
	for i := range a {
		cov += (a[i] - ma) * (b[i] - mb)
		va += (a[i] - ma) * (a[i] - ma)
		vb += (b[i] - mb) * (b[i] - mb)
	}
	if va == 0 || vb == 0 {
		return 0
	}
	return cov / math.Sqrt(va*vb)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
