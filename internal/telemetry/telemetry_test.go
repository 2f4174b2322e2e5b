package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]posthog.Capture, len(m.events))
	copy(out, m.events)
	return out
}

func newTestClient(cfg *Config, version string) (*PostHogClient, *mockEnqueuer) {
	mock := &mockEnqueuer{}
	return newClientWithEnqueuer(mock, cfg, version), mock
}

func TestTrackWhenEnabled(t *testing.T) {
	cfg := &Config{Enabled: true, ConsentAsked: true, AnonymousID: "anon-123"}
	client, mock := newTestClient(cfg, "0.3.0")

	client.Track(EventSimulationCompleted, Properties{
		"scenario_type": "problem_solving",
		"agent_count":   20,
	})

	events := mock.getEvents()
	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, EventSimulationCompleted, event.Event)
	assert.Equal(t, "anon-123", event.DistinctId)
	assert.Equal(t, "problem_solving", event.Properties["scenario_type"])
	assert.Equal(t, 20, event.Properties["agent_count"])
	assert.Equal(t, runtime.GOOS, event.Properties["os"])
	assert.Equal(t, "0.3.0", event.Properties["cli_version"])
	assert.Equal(t, false, event.Properties["$process_person_profile"])
}

func TestTrackWhenDisabled(t *testing.T) {
	cfg := &Config{Enabled: false, ConsentAsked: true, AnonymousID: "anon-123"}
	client, mock := newTestClient(cfg, "0.3.0")

	client.Track(EventCommandExecuted, Properties{"command": "run"})
	assert.Empty(t, mock.getEvents())
}

func TestTrackUninitialized(t *testing.T) {
	client, err := NewPostHogClient(ClientConfig{Version: "0.3.0", Config: &Config{Enabled: true}})
	require.NoError(t, err)
	// Must not panic.
	client.Track(EventCohortGenerated, nil)
	assert.NoError(t, client.Close())
}

func TestClose(t *testing.T) {
	cfg := &Config{Enabled: true, AnonymousID: "anon"}
	client, mock := newTestClient(cfg, "0.3.0")
	require.NoError(t, client.Close())
	assert.True(t, mock.closed)
}

func TestNoopClient(t *testing.T) {
	client := NewNoopClient()
	client.Track(EventDatasetExported, Properties{"formats": 3})
	assert.NoError(t, client.Close())
}

func TestConfigRoundTrip(t *testing.T) {
	SetConfigDir(t.TempDir())
	defer SetConfigDir("")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.ConsentAsked)
	assert.NotEmpty(t, cfg.AnonymousID)

	cfg.Enable()
	require.NoError(t, cfg.Save())

	again, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, again.IsEnabled())
	assert.True(t, again.ConsentAsked)
	assert.Equal(t, cfg.AnonymousID, again.AnonymousID)
}
