package main

import (
	"fmt"

	"agentry/internal/catalog"
	"agentry/internal/config"
	"agentry/internal/logging"
	"agentry/internal/mcp"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <kind> <key>",
	Short: "Render a single resource",
	Long: `Load one resource and render it as markdown in the terminal.

Kind is one of agent, guideline, or framework. The key is the resource
name as printed by "agentry list", e.g. "dev/api-style" for a nested
guideline.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseKind(args[0])
		if err != nil {
			return err
		}

		logger := logging.NewAppLogger()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server := mcp.NewServer(cfg, logger, Version)
		if err := server.InitializeComponents(); err != nil {
			return err
		}

		content, err := server.Catalog().Load(kind, args[1])
		if err != nil {
			return err
		}

		if showRaw {
			fmt.Print(content)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			// Fall back to plain output when the terminal probe fails.
			fmt.Print(content)
			return nil
		}

		rendered, err := renderer.Render(content)
		if err != nil {
			fmt.Print(content)
			return nil
		}

		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the file content without markdown rendering")
}
