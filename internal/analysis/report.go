package analysis

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const reportTemplate = `# Co-Thinking Research Simulation Analysis Report

Generated: {{ .Generated }}

## Executive Summary

This report analyzes {{ .Summary.TotalInteractions }} interactions from {{ .Summary.UniqueAgents }} diverse student agents across {{ .Summary.CulturalDiversity }} cultural backgrounds.

### Key Findings

- **Response Quality**: Average coherence score of {{ printf "%.2f" .Summary.AvgCoherence }}
- **Foundation Alignment**: Average alignment score of {{ printf "%.2f" .Summary.AvgFoundationAlignment }}
- **Cultural Diversity**: {{ .Summary.CulturalDiversity }} cultures represented
- **Age Range**: {{ index .Summary.AgeRange 0 }}-{{ index .Summary.AgeRange 1 }} years
- **Languages**: {{ len .Summary.Languages }} different native languages

## Cultural Analysis
{{ range .Cultures }}
### {{ .Name }}
- **Participants**: {{ .Participants }}
- **Average Response Length**: {{ printf "%.1f" .AvgResponseWords }} words
- **Trust Level**: {{ printf "%.2f" .AvgTrust }}
- **Authority Deference**: {{ printf "%.2f" .AvgAuthorityDeference }}
- **Common Constructs**: {{ .CommonConstructsLine }}
- **Response Quality**:
  - Coherence: {{ printf "%.2f" .AvgCoherence }}
  - Cultural Consistency: {{ printf "%.2f" .AvgCulturalConsistency }}
  - Foundation Alignment: {{ printf "%.2f" .AvgFoundationAlignment }}
{{ end }}
## Psychological Constructs Analysis
{{ range .Constructs }}
### {{ .Title }}
- **Frequency**: {{ .Frequency }} interactions ({{ printf "%.1f" .Percentage }}%)
- **Quality Metrics**:
  - Coherence: {{ printf "%.2f" .AvgCoherence }}
  - Foundation Alignment: {{ printf "%.2f" .AvgFoundationAlignment }}
{{ end }}
## Foundation Document Alignment

- **Overall Alignment**: {{ printf "%.2f" .Alignment.Overall }}
- **High Alignment Cases**: {{ .Alignment.HighCases }} interactions (>0.8)
- **Low Alignment Cases**: {{ .Alignment.LowCases }} interactions (<0.5)

## Research Recommendations

{{ range $i, $rec := .Recommendations }}{{ add $i 1 }}. {{ $rec }}
{{ end }}

---

*This report was generated automatically from simulation data. For questions about methodology or findings, refer to the research framework documentation.*
`

const emptyReportTemplate = `# Co-Thinking Research Simulation Analysis Report

Generated: {{ .Generated }}

## Analysis Status

**Error**: {{ .Error }}

This report could not be generated because no interaction data was available for analysis.

### Possible Causes:
1. No scenarios were successfully executed
2. API connection issues prevented agent responses
3. Data collection system failed to record interactions

### Recommended Actions:
1. Check API key configuration and connectivity
2. Review scenario execution logs for errors
3. Verify agent creation and initialization
4. Ensure data collection system is properly configured

---

*This report was generated automatically. Please resolve the underlying issues and re-run the simulation.*
`

type reportCulture struct {
	Name                 string
	CommonConstructsLine string
	CulturePatterns
}

type reportConstruct struct {
	Title string
	ConstructStats
}

var titleCaser = cases.Title(language.English)

// RenderReport produces the markdown research report for an analysis. Pass
// nil to get the no-data variant.
func RenderReport(a *DatasetAnalysis, now time.Time) (string, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	if a == nil {
		tmpl := template.Must(template.New("empty").Funcs(funcs).Parse(emptyReportTemplate))
		var b strings.Builder
		err := tmpl.Execute(&b, map[string]string{
			"Generated": now.Format("2006-01-02 15:04:05"),
			"Error":     "No interaction records to analyze",
		})
		return b.String(), err
	}

	cultures := make([]reportCulture, 0, len(a.Cultures))
	for name, c := range a.Cultures {
		line := "None identified"
		if len(c.CommonConstructs) > 0 {
			line = strings.Join(c.CommonConstructs, ", ")
		}
		cultures = append(cultures, reportCulture{Name: name, CommonConstructsLine: line, CulturePatterns: c})
	}
	sort.Slice(cultures, func(i, j int) bool { return cultures[i].Name < cultures[j].Name })

	constructs := make([]reportConstruct, 0, len(a.Constructs))
	for name, c := range a.Constructs {
		title := titleCaser.String(strings.ReplaceAll(name, "_", " "))
		constructs = append(constructs, reportConstruct{Title: title, ConstructStats: c})
	}
	sort.Slice(constructs, func(i, j int) bool { return constructs[i].Title < constructs[j].Title })

	data := struct {
		Generated       string
		Summary         SummaryStatistics
		Cultures        []reportCulture
		Constructs      []reportConstruct
		Alignment       AlignmentAnalysis
		Recommendations []string
	}{
		Generated:       now.Format("2006-01-02 15:04:05"),
		Summary:         a.Summary,
		Cultures:        cultures,
		Constructs:      constructs,
		Alignment:       a.Alignment,
		Recommendations: a.Recommendations,
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}
