package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func profileDomainsTool() mcp.Tool {
	return mcp.NewTool("subprofiler_profile_domains",
		mcp.WithDescription("Cluster the leading labels of the given domains by Shannon entropy, profile the high-entropy cluster and synthesize an anchored regex for it. Nothing is stored."),
		mcp.WithArray("domains",
			mcp.Required(),
			mcp.Description("Fully qualified domain names, e.g. [\"ab12.example.com\", \"mail.example.com\"]"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("entropy_limit",
			mcp.Description("Labels above this many bits are high entropy (default: 2.5)"),
		),
		mcp.WithString("group_id",
			mcp.Description("Label for the result (default: adhoc)"),
		),
	)
}

func profileGroupTool() mcp.Tool {
	return mcp.NewTool("subprofiler_profile_group",
		mcp.WithDescription("Profile a stored domain group without writing a rule."),
		mcp.WithString("group_id",
			mcp.Required(),
			mcp.Description("Stored group ID"),
		),
		mcp.WithNumber("entropy_limit",
			mcp.Description("Labels above this many bits are high entropy (default: 2.5)"),
		),
	)
}

func entropyTool() mcp.Tool {
	return mcp.NewTool("subprofiler_entropy",
		mcp.WithDescription("Shannon entropy of a string in bits per character, with the maximum possible for its distinct characters."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to score, usually a single DNS label"),
		),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool("subprofiler_list_rules",
		mcp.WithDescription("List stored rules, newest first within each group."),
		mcp.WithString("group_id",
			mcp.Description("Only list rules for this group (optional)"),
		),
	)
}

func getRuleTool() mcp.Tool {
	return mcp.NewTool("subprofiler_get_rule",
		mcp.WithDescription("Get the most recent rule stored for a group."),
		mcp.WithString("group_id",
			mcp.Required(),
			mcp.Description("Stored group ID"),
		),
	)
}

func filterDomainsTool() mcp.Tool {
	return mcp.NewTool("subprofiler_filter_domains",
		mcp.WithDescription("Return the domains matched by a rule pattern, sorted and deduplicated."),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Rule pattern such as ^[0-9a-f]{8,12}\\."),
		),
		mcp.WithArray("domains",
			mcp.Required(),
			mcp.Description("Domains to test"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}
