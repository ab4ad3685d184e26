// Package main is the entry point for the agentry CLI.
//
// Running agentry with no subcommand starts the MCP server on stdio,
// which is what MCP client configurations invoke. The remaining
// subcommands are for humans: list prints the catalog, show renders a
// single resource, version prints build information.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentry",
		Short: "MCP server for a markdown resource library",
		Long: `Agentry exposes a directory of markdown resources - agents, guidelines,
and frameworks - to AI assistants over the Model Context Protocol.

With no subcommand it behaves like "agentry serve" so MCP client
configurations can invoke the binary directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
