// Cheddar is a REST adapter that tracks requests in progress and admits new
// requests according to the service's lifecycle status.
//
// It serves an application (a reverse proxy to an upstream, or a built-in
// ping endpoint) behind an admission gate, counts in-flight requests, and
// drains them through a staged shutdown:
//
//	RUNNING -> HALTING_LOW_PRIORITY_EVENTS -> HALTING_HIGH_PRIORITY_EVENTS -> HALTED
//
// Usage:
//
//	# Start the adapter with defaults
//	cheddar run
//
//	# Start with a configuration file
//	cheddar run --config /etc/cheddar/config.yaml
//
//	# Query a running adapter
//	cheddar status --address http://127.0.0.1:8080
//
//	# Validate a configuration file
//	cheddar validate --config config.yaml
package main

import (
	"errors"
	"fmt"
	"os"

	"cheddar-hq/adapter/pkg/cli"
)

func main() {
	if err := Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
