// Package main is the entry point for blogdeskctl, the operator CLI.
package main

import (
	"os"

	"blogdesk/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
