package telemetry

import (
	"runtime"
	"strings"

	"github.com/asteroid-belt/subprofiler/pkg/version"
)

// Event names
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
	EventGroupsProfiled     = "groups_profiled"
	EventRulesWritten       = "rules_written"
	EventDomainsImported    = "domains_imported"
	EventMCPToolCalled      = "mcp_tool_called"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]any {
	return map[string]any{
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"version": version.Short(),
		"channel": version.Channel(),
	}
}

func (c *posthogClient) TrackAppStarted(mode string, groupCount int) {
	props := baseProperties()
	props["mode"] = mode
	props["group_count"] = groupCount
	c.Track(EventAppStarted, props)
}

func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64) {
	props := baseProperties()
	props["mode"] = mode
	props["session_duration_ms"] = sessionDurationMs
	c.Track(EventAppExited, props)
}

func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["cli_args"] = strings.Join(cliArgs, " ")
	c.Track(EventCLIHelpViewed, props)
}

// TrackGroupsProfiled records one profiling run. Group IDs and domains are
// never sent.
func (c *posthogClient) TrackGroupsProfiled(groupCount, failedCount int, durationMs int64) {
	props := baseProperties()
	props["group_count"] = groupCount
	props["failed_count"] = failedCount
	props["duration_ms"] = durationMs
	c.Track(EventGroupsProfiled, props)
}

func (c *posthogClient) TrackRulesWritten(ruleCount int) {
	props := baseProperties()
	props["rule_count"] = ruleCount
	c.Track(EventRulesWritten, props)
}

func (c *posthogClient) TrackDomainsImported(added, invalid int) {
	props := baseProperties()
	props["added"] = added
	props["invalid"] = invalid
	c.Track(EventDomainsImported, props)
}

func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	props := baseProperties()
	props["tool_name"] = toolName
	props["duration_ms"] = durationMs
	props["success"] = success
	c.Track(EventMCPToolCalled, props)
}

func (c *noopClient) TrackAppStarted(mode string, groupCount int)                                 {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64)                         {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string)                     {}
func (c *noopClient) TrackGroupsProfiled(groupCount, failedCount int, durationMs int64)           {}
func (c *noopClient) TrackRulesWritten(ruleCount int)                                             {}
func (c *noopClient) TrackDomainsImported(added, invalid int)                                     {}
func (c *noopClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool)          {}
