package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"agentry/internal/catalog"
	"agentry/internal/metadata"
	"agentry/pkg/fileops"

	"github.com/adrg/frontmatter"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// MCP clients reject overly long tool names; keep the generated
	// names well under common limits.
	maxToolNameLen = 64

	// Tool descriptions carry a prefix of the extracted metadata.
	maxToolDescriptionLen = 100
)

// resourceFrontmatter is the YAML shape recognized when a resource carries
// structured metadata. Only description is required; name is advisory.
type resourceFrontmatter struct {
	Description string `yaml:"description"`
	Name        string `yaml:"name,omitempty"`
}

// registerTools adds one tool per catalog entry plus the list_resources
// overview tool, returning the number registered. Keys are visited in
// sorted order so collision suffixes are deterministic across restarts.
func (s *Server) registerTools() int {
	taken := make(map[string]bool)
	count := 0

	for _, kind := range []catalog.Kind{catalog.KindAgent, catalog.KindGuideline, catalog.KindFramework} {
		resources := s.catalog.Resources(kind)

		keys := make([]string, 0, len(resources))
		for key := range resources {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			name, err := toolName(kind, key, taken)
			if err != nil {
				s.logger.Warn("Skipping resource with unusable tool name",
					"kind", kind.String(),
					"key", key,
					"error", err,
				)
				continue
			}
			taken[name] = true

			tool := mcp.NewTool(name,
				mcp.WithDescription(toolDescription(kind, resources[key])),
			)
			s.mcpServer.AddTool(tool, s.loadToolHandler(kind, key))
			count++
		}
	}

	listTool := mcp.NewTool("list_resources",
		mcp.WithDescription("List every available agent, guideline, and framework "+
			"resource with its description and metadata source, as JSON."),
	)
	s.mcpServer.AddTool(listTool, s.handleListResources)

	return count + 1
}

// toolName builds a kind-prefixed sanitized tool name for a resource key.
// Slashes in nested keys become underscores before sanitization; name
// collisions after sanitization get a numeric suffix.
func toolName(kind catalog.Kind, key string, taken map[string]bool) (string, error) {
	flat := strings.ReplaceAll(key, "/", "_")

	sanitized, err := fileops.SanitizeIdentifier(flat, maxToolNameLen)
	if err != nil {
		return "", fmt.Errorf("cannot derive tool name from %q: %w", key, err)
	}

	name := kind.String() + "_" + sanitized
	if !taken[name] {
		return name, nil
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !taken[candidate] {
			return candidate, nil
		}
	}
}

// toolDescription derives the human-readable tool description. Structured
// metadata is parsed as YAML frontmatter to pull out the description
// field; anything else uses the extracted text directly, truncated.
func toolDescription(kind catalog.Kind, res catalog.Resource) string {
	desc := res.Description

	if res.Source == metadata.SourceStructured {
		doc := "---\n" + res.Description + "\n---\n"

		var matter resourceFrontmatter
		if _, err := frontmatter.Parse(strings.NewReader(doc), &matter); err == nil && matter.Description != "" {
			desc = matter.Description
		}
	}

	// Cut on a rune boundary so multibyte text stays valid UTF-8.
	if runes := []rune(desc); len(runes) > maxToolDescriptionLen {
		desc = string(runes[:maxToolDescriptionLen]) + "..."
	}

	return fmt.Sprintf("Load the %q %s resource. %s", res.Name, kind, desc)
}

// loadToolHandler returns the handler for one resource's tool. Content is
// re-read from disk on every call so edits after startup are served.
func (s *Server) loadToolHandler(kind catalog.Kind, key string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := s.catalog.Load(kind, key)
		if err != nil {
			s.logger.Error("Resource load failed",
				"kind", kind.String(),
				"key", key,
				"error", err,
			)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	}
}

func (s *Server) handleListResources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := s.catalog.Describe()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode resource listing: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
