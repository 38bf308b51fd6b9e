// Package main provides the subprofiler-mcp server.
//
// subprofiler-mcp exposes domain profiling and the stored rules via the
// Model Context Protocol.
//
// Usage:
//
//	subprofiler-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/subprofiler/internal/config"
	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/log"
	"github.com/asteroid-belt/subprofiler/internal/mcp"
	"github.com/asteroid-belt/subprofiler/internal/telemetry"
	"github.com/asteroid-belt/subprofiler/pkg/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("subprofiler-mcp %s\n", version.Version)
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)

	// stdout carries the protocol.
	if err := log.InitWithConsole(paths.Logs, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Database.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		log.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	tc := telemetry.New(database)
	defer tc.Close()

	server := mcp.NewServer(database, cfg, tc)
	if err := server.Serve(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `subprofiler-mcp - MCP server for subprofiler

USAGE:
    subprofiler-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    subprofiler-mcp is a Model Context Protocol (MCP) server that exposes
    subdomain entropy profiling and the stored rules to MCP clients.

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

CONFIGURATION:
    {
      "mcpServers": {
        "subprofiler": {
          "type": "stdio",
          "command": "subprofiler-mcp"
        }
      }
    }

TOOLS PROVIDED:
    subprofiler_profile_domains  Profile a list of domains and synthesize a rule
    subprofiler_profile_group    Profile a stored group without writing a rule
    subprofiler_entropy          Shannon entropy of a string
    subprofiler_list_rules       List stored rules
    subprofiler_get_rule         Latest rule of a group
    subprofiler_filter_domains   Domains matched by a rule pattern

RESOURCES PROVIDED:
    subprofiler://rule/{group_id}    Latest rule text
    subprofiler://report/{group_id}  Markdown profile report
`
	fmt.Print(help)
}
