package mcpserver

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cothinklab/cothink/internal/analysis"
	"github.com/cothinklab/cothink/internal/sim"
	"github.com/cothinklab/cothink/models"
)

var titleCaser = cases.Title(language.English)

// FormatError wraps an error message for tool output.
func FormatError(msg string) string {
	return fmt.Sprintf("**Error:** %s", msg)
}

// FormatCohortSummary renders a cohort diversity summary as compact
// Markdown for LLM consumption.
func FormatCohortSummary(cohort models.Cohort, summary sim.DiversitySummary, detailed bool) string {
	var sb strings.Builder

	sb.WriteString("## Cohort Summary\n")
	sb.WriteString(fmt.Sprintf("- Research context: %s\n", cohort.ResearchContext))
	sb.WriteString(fmt.Sprintf("- Agents: %d\n", summary.AgentCount))
	sb.WriteString(fmt.Sprintf("- Age: mean %.1f, range %d-%d\n", summary.Age.Mean, summary.Age.Min, summary.Age.Max))
	sb.WriteString(fmt.Sprintf("- Baseline trust: %.2f (sd %.2f)\n", summary.BaselineTrust.Mean, summary.BaselineTrust.StdDev))
	sb.WriteString(fmt.Sprintf("- Academic confidence: %.2f (sd %.2f)\n\n", summary.AcademicConfidence.Mean, summary.AcademicConfidence.StdDev))

	sb.WriteString("### Cultures\n")
	writeDistribution(&sb, summary.Cultures)
	sb.WriteString("\n### Socioeconomic Tiers\n")
	writeDistribution(&sb, summary.SocioeconomicTiers)
	sb.WriteString("\n### English Proficiency\n")
	writeDistribution(&sb, summary.EnglishProficiency)

	if detailed {
		sb.WriteString("\n### Agents\n")
		for _, p := range cohort.Profiles {
			sb.WriteString(fmt.Sprintf("- `%s` %s (%s, age %d)\n",
				p.AgentID, p.ProfileName, p.Cultural.PrimaryCulture, p.Demographic.Age))
		}
	}
	return sb.String()
}

// FormatRunResult summarizes one scenario run.
func FormatRunResult(sc models.Scenario, records []models.InteractionRecord) string {
	var sb strings.Builder

	completed, errored, filtered := 0, 0, 0
	var coherence, alignment float64
	for _, r := range records {
		if r.Error != "" {
			errored++
			continue
		}
		completed++
		coherence += r.Quality.Coherence
		alignment += r.Quality.FoundationAlignment
		if r.QualityFiltered {
			filtered++
		}
	}

	sb.WriteString(fmt.Sprintf("## Scenario Run: %s\n", sc.Name))
	sb.WriteString(fmt.Sprintf("- Type: %s\n", sc.Type))
	sb.WriteString(fmt.Sprintf("- Completed: %d/%d\n", completed, len(records)))
	if errored > 0 {
		sb.WriteString(fmt.Sprintf("- Errors: %d\n", errored))
	}
	if filtered > 0 {
		sb.WriteString(fmt.Sprintf("- Quality filtered: %d\n", filtered))
	}
	if completed > 0 {
		sb.WriteString(fmt.Sprintf("- Avg coherence: %.3f\n", coherence/float64(completed)))
		sb.WriteString(fmt.Sprintf("- Avg foundation alignment: %.3f\n", alignment/float64(completed)))
	}
	return sb.String()
}

// FormatDatasetStats renders the compact dataset statistics view.
func FormatDatasetStats(a *analysis.DatasetAnalysis) string {
	if a == nil {
		return "Dataset is empty. Run a scenario first."
	}

	var sb strings.Builder
	sb.WriteString("## Dataset Statistics\n")
	sb.WriteString(fmt.Sprintf("- Interactions: %d across %d agents\n", a.Summary.TotalInteractions, a.Summary.UniqueAgents))
	sb.WriteString(fmt.Sprintf("- Surveys: %d\n", a.SurveyCount))
	sb.WriteString(fmt.Sprintf("- Cultures represented: %d\n", a.Summary.CulturalDiversity))
	sb.WriteString(fmt.Sprintf("- Avg response length: %.1f words\n", a.Summary.AvgResponseWords))
	sb.WriteString(fmt.Sprintf("- Avg coherence: %.3f\n", a.Summary.AvgCoherence))
	sb.WriteString(fmt.Sprintf("- Avg foundation alignment: %.3f\n\n", a.Summary.AvgFoundationAlignment))

	if len(a.Cultures) > 0 {
		sb.WriteString("### By Culture\n")
		cultures := make([]string, 0, len(a.Cultures))
		for c := range a.Cultures {
			cultures = append(cultures, c)
		}
		sort.Strings(cultures)
		for _, c := range cultures {
			p := a.Cultures[c]
			sb.WriteString(fmt.Sprintf("- **%s**: %d participants, trust %.2f, coherence %.3f\n",
				titleCaser.String(strings.ReplaceAll(c, "_", " ")), p.Participants, p.AvgTrust, p.AvgCoherence))
		}
		sb.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		sb.WriteString("### Recommendations\n")
		for _, rec := range a.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}
	return sb.String()
}

func writeDistribution(sb *strings.Builder, dist map[string]int) {
	for _, key := range sim.SortedKeys(dist) {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", key, dist[key]))
	}
}
