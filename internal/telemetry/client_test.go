package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedID string

func (f fixedID) GetOrCreateTrackingID() string { return string(f) }

func TestNew_DisabledByEnvVar(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = "phc_test"
	defer func() { PostHogAPIKey = originalKey }()

	t.Setenv(EnvTrackingEnabled, "false")

	client := New(fixedID("abc"))
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient when disabled")
	assert.Empty(t, client.GetTrackingID())
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = ""
	defer func() { PostHogAPIKey = originalKey }()

	assert.False(t, IsEnabled())
	_, ok := New(nil).(*noopClient)
	assert.True(t, ok, "Should return noopClient without API key")
}

func TestNoopClient_DoesNotPanic(t *testing.T) {
	client := Noop()

	client.Track("test_event", map[string]any{"key": "value"})
	client.TrackAppStarted("cli", 3)
	client.TrackAppExited("cli", 5000)
	client.TrackCLICommandExecuted("profile", true, 100)
	client.TrackCLIError("import", "not_found")
	client.TrackCLIHelpViewed("root", []string{"--help"})
	client.TrackGroupsProfiled(4, 1, 250)
	client.TrackRulesWritten(3)
	client.TrackDomainsImported(10, 2)
	client.TrackMCPToolCalled("subprofiler_entropy", 2, true)

	client.Close()
}

func TestBaseProperties(t *testing.T) {
	props := baseProperties()

	assert.Contains(t, props, "os")
	assert.Contains(t, props, "arch")
	assert.Contains(t, props, "version")
	assert.Contains(t, props, "channel")
}
