// cmd/clawd-onboard/main.go
//
// Entry point for the clawd-onboard CLI. All commands live in internal/cli;
// this file only hands over the process environment and the exit code.

package main

import (
	"os"

	"github.com/kingrea/clawd-onboard/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(cli.DefaultEnv(version), os.Args[1:]))
}
