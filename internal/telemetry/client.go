// Package telemetry provides anonymous usage tracking via PostHog.
package telemetry

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
)

// PostHogAPIKey is set at compile time via ldflags.
var PostHogAPIKey string

// EnvTrackingEnabled opts out of telemetry when set to "false".
const EnvTrackingEnabled = "SUBPROFILER_TELEMETRY_TRACKING_ENABLED"

// TrackingIDProvider supplies the persistent anonymous ID.
type TrackingIDProvider interface {
	GetOrCreateTrackingID() string
}

// Client interface for telemetry operations.
type Client interface {
	Track(event string, properties map[string]any)
	Close()
	GetTrackingID() string

	TrackAppStarted(mode string, groupCount int)
	TrackAppExited(mode string, sessionDurationMs int64)

	TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64)
	TrackCLIError(commandName, errorType string)
	TrackCLIHelpViewed(commandName string, cliArgs []string)

	TrackGroupsProfiled(groupCount, failedCount int, durationMs int64)
	TrackRulesWritten(ruleCount int)
	TrackDomainsImported(added, invalid int)

	TrackMCPToolCalled(toolName string, durationMs int64, success bool)
}

type posthogClient struct {
	client    posthog.Client
	sessionID string
	mu        sync.Mutex
}

type noopClient struct{}

// IsEnabled returns true if telemetry is enabled.
// Telemetry is opt-out and needs an API key baked in at build time.
func IsEnabled() bool {
	return os.Getenv(EnvTrackingEnabled) != "false" && PostHogAPIKey != ""
}

// New creates a telemetry client. If provider is nil, a new UUID is used
// for this session only.
func New(provider TrackingIDProvider) Client {
	if !IsEnabled() {
		return &noopClient{}
	}

	client, err := posthog.NewWithConfig(PostHogAPIKey, posthog.Config{
		Endpoint:  "https://us.i.posthog.com",
		BatchSize: 100,
		Interval:  5 * time.Second,
	})
	if err != nil {
		return &noopClient{}
	}

	var sessionID string
	if provider != nil {
		sessionID = provider.GetOrCreateTrackingID()
	} else {
		sessionID = uuid.New().String()
	}

	return &posthogClient{
		client:    client,
		sessionID: sessionID,
	}
}

// Noop returns a client that drops every event.
func Noop() Client {
	return &noopClient{}
}

// Track sends an event to PostHog.
func (c *posthogClient) Track(event string, properties map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	props := posthog.NewProperties()
	props.Set("$process_person_profile", false)
	props.Set("$geoip_disable", true)

	for k, v := range properties {
		props.Set(k, v)
	}

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.sessionID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes remaining events and closes the client.
func (c *posthogClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.client.Close()
}

func (c *posthogClient) GetTrackingID() string {
	return c.sessionID
}

func (c *noopClient) Track(event string, properties map[string]any) {}
func (c *noopClient) Close()                                        {}
func (c *noopClient) GetTrackingID() string                         { return "" }
