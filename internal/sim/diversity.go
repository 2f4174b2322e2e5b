package sim

import (
	"math"
	"sort"

	"github.com/cothinklab/cothink/models"
)

// Stat is a mean with its sample standard deviation.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// AgeSummary describes the cohort's age spread.
type AgeSummary struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
}

// DiversitySummary describes how varied a cohort is before any simulation
// runs, so researchers can sanity-check the sample they are about to use.
type DiversitySummary struct {
	AgentCount         int            `json:"agentCount"`
	Cultures           map[string]int `json:"cultures"`
	SocioeconomicTiers map[string]int `json:"socioeconomicTiers"`
	EnglishProficiency map[string]int `json:"englishProficiency"`
	Locations          map[string]int `json:"locations"`
	Moods              map[string]int `json:"moods"`
	Age                AgeSummary     `json:"age"`
	BaselineTrust      Stat           `json:"baselineTrust"`
	AcademicConfidence Stat           `json:"academicConfidence"`
}

// Summarize computes the diversity summary for a cohort.
func Summarize(cohort models.Cohort) DiversitySummary {
	s := DiversitySummary{
		AgentCount:         len(cohort.Profiles),
		Cultures:           map[string]int{},
		SocioeconomicTiers: map[string]int{},
		EnglishProficiency: map[string]int{},
		Locations:          map[string]int{},
		Moods:              map[string]int{},
	}
	if len(cohort.Profiles) == 0 {
		return s
	}

	ages := make([]float64, 0, len(cohort.Profiles))
	trust := make([]float64, 0, len(cohort.Profiles))
	confidence := make([]float64, 0, len(cohort.Profiles))
	s.Age.Min = cohort.Profiles[0].Demographic.Age
	s.Age.Max = cohort.Profiles[0].Demographic.Age

	for _, p := range cohort.Profiles {
		s.Cultures[p.Cultural.PrimaryCulture]++
		s.SocioeconomicTiers[p.Demographic.SocioeconomicStatus]++
		s.EnglishProficiency[p.Linguistic.EnglishProficiency]++
		s.Locations[p.Demographic.GeographicLocation]++
		s.Moods[p.Emotional.CurrentMood]++

		age := p.Demographic.Age
		if age < s.Age.Min {
			s.Age.Min = age
		}
		if age > s.Age.Max {
			s.Age.Max = age
		}
		ages = append(ages, float64(age))
		trust = append(trust, p.Behavioral.BaselineTrust)
		confidence = append(confidence, p.Emotional.AcademicConfidence)
	}

	s.Age.Mean = mean(ages)
	s.BaselineTrust = Stat{Mean: mean(trust), StdDev: stddev(trust)}
	s.AcademicConfidence = Stat{Mean: mean(confidence), StdDev: stddev(confidence)}
	return s
}

// SortedKeys returns a distribution's keys in alphabetical order, for
// deterministic rendering.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
