// Package sim orchestrates simulation runs: it fans a scenario or survey out
// across the cohort, analyzes every response, applies the quality gate, and
// persists the records.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/cothinklab/cothink/internal/agent"
	"github.com/cothinklab/cothink/internal/analysis"
	"github.com/cothinklab/cothink/internal/foundation"
	"github.com/cothinklab/cothink/internal/policy"
	"github.com/cothinklab/cothink/internal/telemetry"
	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/store"
)

// DefaultConcurrency is how many agents talk to the provider at once when
// the config does not say otherwise.
const DefaultConcurrency = 10

// MaxConcurrency caps the fan-out regardless of configuration.
const MaxConcurrency = 50

// Options configure an Orchestrator.
type Options struct {
	// FoundationContext and Guidelines feed each agent's personality prompt;
	// empty strings select the built-in defaults.
	FoundationContext string
	Guidelines        string

	// ScenarioInstructions and SurveyInstructions are appended to the
	// respective prompts.
	ScenarioInstructions string
	SurveyInstructions   string

	// Concurrency bounds parallel LLM calls; 0 means DefaultConcurrency.
	Concurrency int

	// RequestGapMillis spaces out request starts for provider rate limits.
	RequestGapMillis int

	// Store receives every record as it is produced. Optional.
	Store store.RecordStore

	// Gate flags low-quality records. Optional.
	Gate *policy.Gate

	// Aligner computes embedding-based foundation alignment. Optional.
	Aligner *foundation.EmbeddingAligner

	// Telemetry receives anonymous run events. Nil means no-op.
	Telemetry telemetry.Client
}

// Orchestrator drives a cohort of student agents through scenarios and
// surveys. Records come back in cohort order regardless of completion order.
type Orchestrator struct {
	cohort   models.Cohort
	agents   []*agent.StudentAgent
	analyzer analysis.Analyzer
	opts     Options
	pacer    pacer
}

// New builds an orchestrator and one agent per cohort profile.
func New(cohort models.Cohort, chatModel model.BaseChatModel, opts Options) *Orchestrator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Concurrency > MaxConcurrency {
		opts.Concurrency = MaxConcurrency
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewNoopClient()
	}

	agents := make([]*agent.StudentAgent, len(cohort.Profiles))
	for i, profile := range cohort.Profiles {
		agents[i] = agent.New(profile, chatModel, opts.FoundationContext, opts.Guidelines)
	}
	return &Orchestrator{
		cohort: cohort,
		agents: agents,
		opts:   opts,
		pacer:  pacer{gap: time.Duration(opts.RequestGapMillis) * time.Millisecond},
	}
}

// Cohort returns the cohort this orchestrator runs.
func (o *Orchestrator) Cohort() models.Cohort {
	return o.cohort
}

// RunScenario presents one scenario to every agent. Per-agent failures do
// not abort the run; they come back as records with Error set.
func (o *Orchestrator) RunScenario(ctx context.Context, sc models.Scenario) ([]models.InteractionRecord, error) {
	records := make([]models.InteractionRecord, len(o.agents))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(o.opts.Concurrency)
	for i, a := range o.agents {
		p.Go(func(ctx context.Context) error {
			o.pacer.wait(ctx)
			response, err := a.RespondToTutor(ctx, sc, o.opts.ScenarioInstructions)
			records[i] = o.buildInteractionRecord(ctx, a, sc, response, err)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", sc.Name, err)
	}

	if o.opts.Store != nil {
		for _, rec := range records {
			if err := o.opts.Store.AppendInteraction(rec); err != nil {
				return records, fmt.Errorf("persist record for %s: %w", rec.AgentID, err)
			}
		}
	}

	o.opts.Telemetry.Track(telemetry.EventSimulationCompleted, telemetry.Properties{
		"scenario_type": sc.Type,
		"agent_count":   len(records),
		"error_count":   countErrored(records),
	})
	return records, nil
}

// RunSurvey administers one survey to every agent.
func (o *Orchestrator) RunSurvey(ctx context.Context, sv models.Survey) ([]models.SurveyRecord, error) {
	records := make([]models.SurveyRecord, len(o.agents))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(o.opts.Concurrency)
	for i, a := range o.agents {
		p.Go(func(ctx context.Context) error {
			o.pacer.wait(ctx)
			response, err := a.RespondToSurvey(ctx, sv, o.opts.SurveyInstructions)
			records[i] = o.buildSurveyRecord(a, sv, response, err)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("run survey %s: %w", sv.Name, err)
	}

	if o.opts.Store != nil {
		for _, rec := range records {
			if err := o.opts.Store.AppendSurvey(rec); err != nil {
				return records, fmt.Errorf("persist survey for %s: %w", rec.AgentID, err)
			}
		}
	}

	o.opts.Telemetry.Track(telemetry.EventSurveyCompleted, telemetry.Properties{
		"survey_type": sv.Type,
		"agent_count": len(records),
	})
	return records, nil
}

// ResetMemories clears every agent's session history, for back-to-back
// scenario runs that should not carry context over.
func (o *Orchestrator) ResetMemories() {
	for _, a := range o.agents {
		a.ResetMemory()
	}
}

func (o *Orchestrator) buildInteractionRecord(ctx context.Context, a *agent.StudentAgent, sc models.Scenario, response string, callErr error) models.InteractionRecord {
	rec := models.InteractionRecord{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		AgentID:         a.Profile.AgentID,
		InteractionType: models.InteractionScenario,
		ScenarioName:    sc.Name,
		ScenarioType:    sc.Type,
		Context:         sc.Context,
		Task:            sc.LearningTask,
		TutorResponse:   sc.TutorResponse,
		Profile:         a.Profile.Snapshot(),
	}
	if callErr != nil {
		rec.Error = callErr.Error()
		return rec
	}

	rec.Response = response
	rec.ResponseWords = models.WordCount(response)
	rec.ResponseChars = len(response)

	result := o.analyzer.Analyze(response, rec.Profile)
	rec.Quality = result.Quality
	rec.Tags = result.Tags

	if o.opts.Aligner != nil {
		if score, err := o.opts.Aligner.Score(ctx, response); err == nil {
			rec.Quality.EmbeddingAlignment = &score
		}
	}

	if o.opts.Gate != nil {
		if decision, err := o.opts.Gate.Evaluate(ctx, rec); err == nil && decision.Flagged {
			rec.QualityFiltered = true
			rec.FilterReasons = decision.Reasons
		}
	}
	return rec
}

func (o *Orchestrator) buildSurveyRecord(a *agent.StudentAgent, sv models.Survey, response string, callErr error) models.SurveyRecord {
	rec := models.SurveyRecord{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		AgentID:     a.Profile.AgentID,
		SurveyType:  sv.Type,
		ProfileName: a.Profile.ProfileName,
		Profile:     a.Profile.Snapshot(),
	}
	if callErr != nil {
		rec.Error = callErr.Error()
		return rec
	}

	parsed := analysis.ParseSurveyResponse(response)
	rec.RawResponses = response
	rec.Ratings = parsed.Ratings
	rec.Reasoning = parsed.Reasoning
	rec.Themes = parsed.Themes
	rec.Quality = parsed.Quality
	return rec
}

func countErrored(records []models.InteractionRecord) int {
	n := 0
	for _, r := range records {
		if r.Error != "" {
			n++
		}
	}
	return n
}

// pacer serializes request starts so they are at least gap apart. A zero
// gap disables pacing.
type pacer struct {
	gap  time.Duration
	mu   sync.Mutex
	next time.Time
}

func (p *pacer) wait(ctx context.Context) {
	if p.gap <= 0 {
		return
	}
	p.mu.Lock()
	now := time.Now()
	start := p.next
	if start.Before(now) {
		start = now
	}
	p.next = start.Add(p.gap)
	p.mu.Unlock()

	if d := time.Until(start); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}
}
