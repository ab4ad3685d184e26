package main

import (
	"fmt"

	"agentry/internal/config"
	"agentry/internal/logging"
	"agentry/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Scan the configured resource directory and serve the catalog to an MCP
client over stdin/stdout. The resource directory comes from the
AGENTRY_RESOURCES_DIR environment variable or the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	logger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	server := mcp.NewServer(cfg, logger, Version)
	return server.Start()
}
