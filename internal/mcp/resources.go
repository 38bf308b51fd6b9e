package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/subprofiler/internal/profiler"
	"github.com/asteroid-belt/subprofiler/internal/report"
)

// resourcePrefix is the URI scheme for subprofiler resources.
const resourcePrefix = "subprofiler://"

// parseGroupURI extracts the group ID from subprofiler://<kind>/{group_id}.
func parseGroupURI(uri, kind string) (string, error) {
	prefix := resourcePrefix + kind + "/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("invalid URI: %s", uri)
	}
	id := strings.TrimPrefix(uri, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid group ID in URI: %s", uri)
	}
	return id, nil
}

// handleRuleResource handles subprofiler://rule/{group_id}.
func (s *Server) handleRuleResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	groupID, err := parseGroupURI(req.Params.URI, "rule")
	if err != nil {
		return nil, err
	}

	rule, err := s.db.LatestRule(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     rule.Regexp,
		},
	}, nil
}

// handleReportResource handles subprofiler://report/{group_id}.
func (s *Server) handleReportResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	groupID, err := parseGroupURI(req.Params.URI, "report")
	if err != nil {
		return nil, err
	}

	domains, err := s.db.DomainsFor(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to read group: %w", err)
	}

	p, err := profiler.ProfileGroup(profiler.NewDomainGroup(groupID, domains, profiler.WithEntropyLimit(s.entropyLimit())))
	if err != nil && !profiler.IsNoRule(err) {
		return nil, fmt.Errorf("failed to profile group: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     report.Markdown(p, domains),
		},
	}, nil
}
