package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"agentry/internal/config"
	"agentry/internal/logging"
	"agentry/internal/mcp"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

const listDescriptionWidth = 60

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered resources",
	Long:  "Scan the resource directory and print every agent, guideline, and framework with its description.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewAppLogger()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server := mcp.NewServer(cfg, logger, Version)
		if err := server.InitializeComponents(); err != nil {
			return err
		}

		entries := server.Catalog().Describe()
		if len(entries) == 0 {
			fmt.Printf("No resources found under %s\n", cfg.ResourcesDir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tNAME\tCATEGORY\tDESCRIPTION")
		for _, e := range entries {
			// Multi-line descriptions would break the table rows.
			desc := strings.ReplaceAll(e.Description, "\n", " ")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Kind,
				e.Name,
				e.Category,
				truncate.StringWithTail(desc, listDescriptionWidth, "..."),
			)
		}
		return w.Flush()
	},
}
