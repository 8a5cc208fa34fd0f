// Package main is the entry point for the hkctl binary.
//
// hkctl is a command line client for a HomeKit automation service listening
// on a local port. Each invocation opens one connection, runs one command
// and exits.
//
// Usage:
//
//	hkctl homes                          # list homes
//	hkctl rooms --name Kitchen           # list rooms matching a pattern
//	hkctl triggers -e true -a 2026-10-01 # enabled triggers fired since a date
//	hkctl room add Garage                # add a room
//	hkctl room remove Garage Sensor1     # take an accessory out of a room
//
// The command grammar, registry and dispatcher live in internal/cli. This
// file wires process signals and the exit status.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/treykane/hkctl/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// An interrupt aborts the in-flight call; there is no other timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.Version = Version
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
