// Package telemetry provides anonymous, opt-in usage analytics for the
// simulation CLI. No prompt text, agent responses, or API keys ever leave
// the machine; only event names and aggregate counts are reported.
package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client is the interface for telemetry clients. The abstraction keeps the
// rest of the code testable and lets disabled runs use a no-op.
type Client interface {
	// Track sends an event asynchronously and never blocks.
	Track(event string, properties map[string]any)

	// Close flushes pending events.
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// Event names emitted by the CLI.
const (
	EventCohortGenerated     = "cohort_generated"
	EventSimulationCompleted = "simulation_completed"
	EventSurveyCompleted     = "survey_completed"
	EventDatasetExported     = "dataset_exported"
	EventCommandExecuted     = "command_executed"
)

// enqueuer is the subset of the PostHog client we use, extracted so tests
// can substitute a recorder.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient wraps the PostHog SDK for async event delivery.
type PostHogClient struct {
	client      enqueuer
	config      *Config
	version     string
	mu          sync.RWMutex
	initialized bool
}

// ClientConfig holds what is needed to initialize the telemetry client.
type ClientConfig struct {
	// APIKey is the PostHog project API key.
	APIKey string

	// Version is the CLI version string.
	Version string

	// Config carries the enabled state and anonymous ID.
	Config *Config

	// Endpoint overrides the PostHog cloud endpoint for self-hosted setups.
	Endpoint string
}

// NewPostHogClient creates a telemetry client. With an empty APIKey or nil
// Config it returns an uninitialized client whose Track is a no-op.
func NewPostHogClient(cfg ClientConfig) (*PostHogClient, error) {
	if cfg.APIKey == "" || cfg.Config == nil {
		return &PostHogClient{
			config:      cfg.Config,
			version:     cfg.Version,
			initialized: false,
		}, nil
	}

	phConfig := posthog.Config{
		// Simulation runs emit few events, keep batches small.
		BatchSize: 10,
		Interval:  1 * time.Second,
		// Transport warnings must never reach CLI output.
		Logger: quietLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}

	return &PostHogClient{
		client:      client,
		config:      cfg.Config,
		version:     cfg.Version,
		initialized: true,
	}, nil
}

// newClientWithEnqueuer builds a client around a custom enqueuer (tests).
func newClientWithEnqueuer(enq enqueuer, cfg *Config, version string) *PostHogClient {
	return &PostHogClient{
		client:      enq,
		config:      cfg,
		version:     version,
		initialized: true,
	}
}

// Track sends an event. No-op when telemetry is disabled or the client was
// never initialized.
func (c *PostHogClient) Track(event string, properties map[string]any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized || c.config == nil || !c.config.IsEnabled() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("cli_version", c.version)
	// No person profiles; events stay anonymous.
	props.Set("$process_person_profile", false)

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.config.AnonymousID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes the event queue.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// NoopClient does nothing. Used when telemetry is disabled or unconfigured.
type NoopClient struct{}

func (NoopClient) Track(string, map[string]any) {}
func (NoopClient) Close() error                 { return nil }

// NewNoopClient returns a client that discards everything.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// quietLogger suppresses PostHog SDK logs.
type quietLogger struct{}

func (quietLogger) Debugf(string, ...interface{}) {}
func (quietLogger) Logf(string, ...interface{})   {}
func (quietLogger) Warnf(string, ...interface{})  {}
func (quietLogger) Errorf(string, ...interface{}) {}
