package mcp

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/subprofiler/internal/config"
	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/telemetry"
)

// mockTelemetryClient records MCP tool calls.
type mockTelemetryClient struct {
	mu    sync.Mutex
	calls []toolCall
}

type toolCall struct {
	name    string
	success bool
}

func (m *mockTelemetryClient) Track(event string, properties map[string]any)              {}
func (m *mockTelemetryClient) Close()                                                     {}
func (m *mockTelemetryClient) GetTrackingID() string                                      { return "test-tracking-id" }
func (m *mockTelemetryClient) TrackAppStarted(mode string, groupCount int)                {}
func (m *mockTelemetryClient) TrackAppExited(mode string, sessionDurationMs int64)        {}
func (m *mockTelemetryClient) TrackCLICommandExecuted(string, bool, int64)                {}
func (m *mockTelemetryClient) TrackCLIError(commandName, errorType string)                {}
func (m *mockTelemetryClient) TrackCLIHelpViewed(commandName string, cliArgs []string)    {}
func (m *mockTelemetryClient) TrackGroupsProfiled(groupCount, failedCount int, ms int64)  {}
func (m *mockTelemetryClient) TrackRulesWritten(ruleCount int)                            {}
func (m *mockTelemetryClient) TrackDomainsImported(added, invalid int)                    {}
func (m *mockTelemetryClient) TrackMCPToolCalled(toolName string, ms int64, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, toolCall{name: toolName, success: success})
}

func (m *mockTelemetryClient) lastCall() toolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return toolCall{}
	}
	return m.calls[len(m.calls)-1]
}

var _ telemetry.Client = (*mockTelemetryClient)(nil)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func seedGroups(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ImportDomains("1", []string{"ab12.example.com", "xy99.example.com", "mail.example.com"})
	require.NoError(t, err)
	_, err = database.ImportDomains("2", []string{"www.example.org", "mail.example.org"})
	require.NoError(t, err)
	require.NoError(t, database.WriteRules(map[string]string{"1": `^[1-29a-bx-y]{4,4}\.`}))
}

func TestNewServer(t *testing.T) {
	database := setupTestDB(t)
	s := NewServer(database, config.DefaultConfig(), nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.server)
	assert.Equal(t, 2.5, s.entropyLimit())
}

func TestNewServer_WithNilConfig(t *testing.T) {
	s := NewServer(setupTestDB(t), nil, nil)
	assert.Equal(t, 2.5, s.entropyLimit())
}

func TestServer_ConfiguredEntropyLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Profile.EntropyLimit = 1.0

	s := NewServer(setupTestDB(t), cfg, nil)
	assert.Equal(t, 1.0, s.entropyLimit())
}
