// Package policy implements the quality gate that flags low-quality
// simulation records, backed by OPA Rego so research teams can tune the
// rules without rebuilding.
package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/open-policy-agent/opa/v1/rego"
	"github.com/spf13/afero"

	"github.com/cothinklab/cothink/models"
)

// DefaultPolicyPackage is the Rego package the gate queries.
const DefaultPolicyPackage = "cothink.quality"

// defaultPolicy is the built-in quality policy. A project can replace it by
// pointing quality.policyFile at its own .rego file.
const defaultPolicy = `package cothink.quality

deny contains msg if {
	input.quality.coherence < input.thresholds.min_coherence
	msg := sprintf("coherence %.2f below threshold %.2f", [input.quality.coherence, input.thresholds.min_coherence])
}

deny contains msg if {
	input.quality.foundation_alignment < input.thresholds.min_foundation_alignment
	msg := sprintf("foundation alignment %.2f below threshold %.2f", [input.quality.foundation_alignment, input.thresholds.min_foundation_alignment])
}

deny contains msg if {
	input.response_words < 10
	msg := sprintf("response too short: %d words", [input.response_words])
}

warn contains msg if {
	input.quality.cultural_consistency < 0.3
	msg := sprintf("cultural consistency %.2f is low", [input.quality.cultural_consistency])
}
`

// Thresholds are the tunable limits fed to the policy as input.
type Thresholds struct {
	MinCoherence           float64 `json:"min_coherence"`
	MinFoundationAlignment float64 `json:"min_foundation_alignment"`
}

// GateInput is the document evaluated by the policy.
type GateInput struct {
	AgentID       string     `json:"agent_id"`
	ScenarioType  string     `json:"scenario_type"`
	ResponseWords int        `json:"response_words"`
	Quality       qualityDoc `json:"quality"`
	Profile       profileDoc `json:"profile"`
	Thresholds    Thresholds `json:"thresholds"`
}

type qualityDoc struct {
	Coherence           float64 `json:"coherence"`
	CulturalConsistency float64 `json:"cultural_consistency"`
	FoundationAlignment float64 `json:"foundation_alignment"`
	Complexity          float64 `json:"complexity"`
}

type profileDoc struct {
	Culture            string `json:"culture"`
	EnglishProficiency string `json:"english_proficiency"`
}

// Decision is the outcome of evaluating one record.
type Decision struct {
	DecisionID  string    `json:"decisionId"`
	Flagged     bool      `json:"flagged"`
	Reasons     []string  `json:"reasons,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

// Gate evaluates interaction records against the quality policy. All
// evaluation happens locally without network calls.
type Gate struct {
	thresholds Thresholds
	module     func(*rego.Rego)
}

// NewGate builds a gate from the built-in policy, or from policyFile when
// non-empty.
func NewGate(fs afero.Fs, policyFile string, thresholds Thresholds) (*Gate, error) {
	content := defaultPolicy
	path := "builtin/quality.rego"
	if policyFile != "" {
		raw, err := afero.ReadFile(fs, policyFile)
		if err != nil {
			return nil, fmt.Errorf("load policy file %s: %w", policyFile, err)
		}
		content = string(raw)
		path = policyFile
	}
	return &Gate{
		thresholds: thresholds,
		module:     rego.Module(path, content),
	}, nil
}

// Evaluate checks one record against the policy. Deny messages flag the
// record; warn messages are informational.
func (g *Gate) Evaluate(ctx context.Context, record models.InteractionRecord) (*Decision, error) {
	input := GateInput{
		AgentID:       record.AgentID,
		ScenarioType:  record.ScenarioType,
		ResponseWords: record.ResponseWords,
		Quality: qualityDoc{
			Coherence:           record.Quality.Coherence,
			CulturalConsistency: record.Quality.CulturalConsistency,
			FoundationAlignment: record.Quality.FoundationAlignment,
			Complexity:          record.Quality.Complexity,
		},
		Profile: profileDoc{
			Culture:            record.Profile.Culture,
			EnglishProficiency: record.Profile.EnglishProficiency,
		},
		Thresholds: g.thresholds,
	}

	reasons, err := g.querySet(ctx, input, "deny")
	if err != nil {
		return nil, fmt.Errorf("query deny rules: %w", err)
	}
	warnings, err := g.querySet(ctx, input, "warn")
	if err != nil {
		// Warn rules are optional.
		warnings = nil
	}

	return &Decision{
		DecisionID:  uuid.New().String(),
		Flagged:     len(reasons) > 0,
		Reasons:     reasons,
		Warnings:    warnings,
		EvaluatedAt: time.Now().UTC(),
	}, nil
}

// querySet queries a set-generating rule and returns all string values.
func (g *Gate) querySet(ctx context.Context, input any, ruleName string) ([]string, error) {
	query := fmt.Sprintf("data.%s.%s", DefaultPolicyPackage, ruleName)

	r := rego.New(
		rego.Query(query),
		rego.Input(input),
		g.module,
	)
	rs, err := r.Eval(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "undefined") {
			return nil, nil
		}
		return nil, err
	}

	var results []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			if set, ok := expr.Value.([]any); ok {
				for _, item := range set {
					if s, ok := item.(string); ok {
						results = append(results, s)
					}
				}
			}
		}
	}
	return results, nil
}
