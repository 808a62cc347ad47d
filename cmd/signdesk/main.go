// Package main provides the entry point for the SignDesk CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/signdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
