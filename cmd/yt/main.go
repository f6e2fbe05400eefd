// Package main is the entry point for the yt CLI.
package main

import (
	"fmt"
	"os"

	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	container := app.New()
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
