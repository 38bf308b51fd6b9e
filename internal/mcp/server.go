// Package mcp exposes domain profiling and the rule store over the Model
// Context Protocol.
//
// Tools profile ad-hoc domain lists, score labels, filter domains and read
// stored rules. Resources serve stored rules and group reports.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asteroid-belt/subprofiler/internal/config"
	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
	"github.com/asteroid-belt/subprofiler/internal/telemetry"
	"github.com/asteroid-belt/subprofiler/pkg/version"
)

// Server wraps the MCP server with subprofiler-specific functionality.
type Server struct {
	db        *db.DB
	cfg       *config.Config
	server    *server.MCPServer
	telemetry telemetry.Client
}

// NewServer creates a new MCP server instance. cfg and tc may be nil.
func NewServer(database *db.DB, cfg *config.Config, tc telemetry.Client) *Server {
	s := &Server{
		db:        database,
		cfg:       cfg,
		telemetry: tc,
	}

	s.server = server.NewMCPServer(
		"subprofiler",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	if s.telemetry != nil {
		groups, err := s.db.ListGroups()
		if err == nil {
			s.telemetry.TrackAppStarted("mcp", len(groups))
		}
	}
	return server.ServeStdio(s.server)
}

// entropyLimit returns the configured default threshold.
func (s *Server) entropyLimit() float64 {
	if s.cfg != nil && s.cfg.Profile.EntropyLimit > 0 {
		return s.cfg.Profile.EntropyLimit
	}
	return profiler.DefaultEntropyLimit
}

func (s *Server) registerTools() {
	s.server.AddTool(profileDomainsTool(), s.handleProfileDomains)
	s.server.AddTool(profileGroupTool(), s.handleProfileGroup)
	s.server.AddTool(entropyTool(), s.handleEntropy)
	s.server.AddTool(listRulesTool(), s.handleListRules)
	s.server.AddTool(getRuleTool(), s.handleGetRule)
	s.server.AddTool(filterDomainsTool(), s.handleFilterDomains)
}

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"rule/{group_id}",
			"Group rule",
			mcp.WithTemplateDescription("Latest regular expression stored for a domain group"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		s.handleRuleResource,
	)

	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"report/{group_id}",
			"Group report",
			mcp.WithTemplateDescription("Markdown profile report for a stored domain group"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReportResource,
	)
}
