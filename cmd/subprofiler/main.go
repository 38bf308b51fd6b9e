// subprofiler - DNS subdomain entropy profiler
//
// Clusters the subdomains of each stored domain group by Shannon entropy
// and writes a regular expression matching the machine-generated ones.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/subprofiler/internal/cli"
	"github.com/asteroid-belt/subprofiler/internal/config"
	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// A persistent tracking ID needs the store; without it telemetry falls
	// back to a per-session ID.
	var provider telemetry.TrackingIDProvider
	if cfg, err := config.Load(); err == nil {
		if database, err := db.New(db.DefaultConfig(config.GetPaths(cfg).Database)); err == nil {
			defer func() { _ = database.Close() }()
			provider = database
		}
	}

	telemetryClient := telemetry.New(provider)
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		telemetryClient.Close()
		os.Exit(1)
	}
}
