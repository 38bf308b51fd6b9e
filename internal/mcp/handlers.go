package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/subprofiler/internal/entropy"
	"github.com/asteroid-belt/subprofiler/internal/models"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

const defaultGroupID = "adhoc"

// trackToolCall is a helper to track MCP tool invocations.
func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	if s.telemetry != nil {
		s.telemetry.TrackMCPToolCalled(toolName, time.Since(start).Milliseconds(), success)
	}
}

// ProfileResponse is a group profile in MCP tool responses.
type ProfileResponse struct {
	GroupID      string      `json:"group_id"`
	EntropyLimit float64     `json:"entropy_limit"`
	HighEntropy  []string    `json:"high_entropy"`
	LowEntropy   []string    `json:"low_entropy"`
	Skipped      int         `json:"skipped"`
	Lengths      map[int]int `json:"lengths,omitempty"`
	Chars        string      `json:"chars,omitempty"`
	HasDash      bool        `json:"has_dash"`
	Special      string      `json:"special_chars,omitempty"`
	Regex        string      `json:"regex,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// EntropyResponse is the score of one string.
type EntropyResponse struct {
	Text        string  `json:"text"`
	Bits        float64 `json:"bits"`
	MaxBits     float64 `json:"max_bits"`
	HighEntropy bool    `json:"high_entropy"`
}

// RuleResponse is a stored rule.
type RuleResponse struct {
	GroupID     string    `json:"group_id"`
	Regexp      string    `json:"regexp"`
	Fingerprint string    `json:"fingerprint"`
	Revision    int64     `json:"revision"`
	CreatedAt   time.Time `json:"created_at"`
	WrittenAt   time.Time `json:"written_at"`
}

// FilterResponse lists the domains a pattern matched.
type FilterResponse struct {
	Pattern string   `json:"pattern"`
	Matched []string `json:"matched"`
	Total   int      `json:"total"`
}

func toProfileResponse(p *profiler.Profile, err error) ProfileResponse {
	part := p.Partition()
	resp := ProfileResponse{
		GroupID:      p.GroupID,
		EntropyLimit: p.EntropyLimit,
		HighEntropy:  nonNil(p.HighEntropy),
		LowEntropy:   nonNil(p.LowEntropy),
		Skipped:      p.Skipped,
		Lengths:      p.Lengths,
		Chars:        string(part.Alnum),
		HasDash:      part.HasDash,
		Special:      string(part.Special),
		Regex:        p.Regex,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func toRuleResponse(r models.Rule) RuleResponse {
	return RuleResponse{
		GroupID:     r.ProjectID,
		Regexp:      r.Regexp,
		Fingerprint: r.Fingerprint,
		Revision:    r.Revision,
		CreatedAt:   r.CreatedAt,
		WrittenAt:   r.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// stringList reads an array-of-strings argument. A single string is split
// on whitespace and commas.
func stringList(arguments map[string]any, key string) ([]string, bool) {
	switch v := arguments[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	case []string:
		return v, true
	case string:
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t'
		}), true
	default:
		return nil, false
	}
}

// parseEntropyLimit returns the entropy_limit argument or fallback.
func parseEntropyLimit(arguments map[string]any, fallback float64) float64 {
	if l, ok := arguments["entropy_limit"].(float64); ok && l >= 0 {
		return l
	}
	return fallback
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// profileOutcome distinguishes "no rule for this input" from real failures.
func profileOutcome(err error) bool {
	return err == nil || profiler.IsNoRule(err)
}

// handleProfileDomains handles the subprofiler_profile_domains tool.
func (s *Server) handleProfileDomains(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_profile_domains"
	start := time.Now()

	domains, ok := stringList(req.Params.Arguments, "domains")
	if !ok {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("domains parameter is required and must be a list of strings"), nil
	}

	groupID, _ := req.Params.Arguments["group_id"].(string)
	if groupID == "" {
		groupID = defaultGroupID
	}
	limit := parseEntropyLimit(req.Params.Arguments, s.entropyLimit())

	p, err := profiler.ProfileGroup(profiler.NewDomainGroup(groupID, domains, profiler.WithEntropyLimit(limit)))
	if !profileOutcome(err) {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to profile domains: %v", err)), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(toProfileResponse(p, err))
}

// handleProfileGroup handles the subprofiler_profile_group tool.
func (s *Server) handleProfileGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_profile_group"
	start := time.Now()

	groupID, ok := req.Params.Arguments["group_id"].(string)
	if !ok || groupID == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("group_id parameter is required"), nil
	}

	domains, err := s.db.DomainsFor(groupID)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to read group: %v", err)), nil
	}

	limit := parseEntropyLimit(req.Params.Arguments, s.entropyLimit())
	p, err := profiler.ProfileGroup(profiler.NewDomainGroup(groupID, domains, profiler.WithEntropyLimit(limit)))
	if !profileOutcome(err) {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to profile group: %v", err)), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(toProfileResponse(p, err))
}

// handleEntropy handles the subprofiler_entropy tool.
func (s *Server) handleEntropy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_entropy"
	start := time.Now()

	text, ok := req.Params.Arguments["text"].(string)
	if !ok {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(EntropyResponse{
		Text:        text,
		Bits:        entropy.Shannon(text),
		MaxBits:     entropy.Max(text),
		HighEntropy: profiler.Classify(text, s.entropyLimit()),
	})
}

// handleListRules handles the subprofiler_list_rules tool.
func (s *Server) handleListRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_list_rules"
	start := time.Now()

	var (
		rules []models.Rule
		err   error
	)
	if groupID, _ := req.Params.Arguments["group_id"].(string); groupID != "" {
		rules, err = s.db.RulesFor(groupID)
	} else {
		rules, err = s.db.ListRules()
	}
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list rules: %v", err)), nil
	}

	resp := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, toRuleResponse(r))
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(resp)
}

// handleGetRule handles the subprofiler_get_rule tool.
func (s *Server) handleGetRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_get_rule"
	start := time.Now()

	groupID, ok := req.Params.Arguments["group_id"].(string)
	if !ok || groupID == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("group_id parameter is required"), nil
	}

	rule, err := s.db.LatestRule(groupID)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to get rule: %v", err)), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(toRuleResponse(*rule))
}

// handleFilterDomains handles the subprofiler_filter_domains tool.
func (s *Server) handleFilterDomains(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "subprofiler_filter_domains"
	start := time.Now()

	pattern, ok := req.Params.Arguments["pattern"].(string)
	if !ok || pattern == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("pattern parameter is required"), nil
	}
	domains, ok := stringList(req.Params.Arguments, "domains")
	if !ok {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("domains parameter is required and must be a list of strings"), nil
	}

	matched, err := profiler.Filter(pattern, domains)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(FilterResponse{
		Pattern: pattern,
		Matched: nonNil(matched),
		Total:   len(profiler.SortedUnique(domains)),
	})
}
