// Package main is the entry point for the etlprov CLI.
//
// etlprov provisions the secrets file of the ETL GeoData runtime: the
// Oracle source and PostgreSQL destination credentials plus the runtime
// options, checked before anything is written.
//
// Commands: provision, verify, check, show.
//
// For detailed usage information, run:
//
//	etlprov --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/geodata/etlprov/cmd/etlprov/commands"
	"github.com/geodata/etlprov/cmd/etlprov/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := handlers.RerunHint(err, os.Args[1:]); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(handlers.ExitCode(err))
	}
}
