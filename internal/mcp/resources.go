package mcp

import (
	"context"
	"fmt"

	"agentry/internal/catalog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const resourceURIScheme = "agentry"

// registerResources adds one MCP resource per catalog entry and returns
// the number registered. URIs follow agentry://<kind>/<key>; nested
// guideline keys keep their slashes in the URI path.
func (s *Server) registerResources() int {
	count := 0

	for _, kind := range []catalog.Kind{catalog.KindAgent, catalog.KindGuideline, catalog.KindFramework} {
		for key, res := range s.catalog.Resources(kind) {
			resource := mcp.NewResource(
				resourceURI(kind, key),
				res.Name,
				mcp.WithResourceDescription(res.Description),
				mcp.WithMIMEType("text/markdown"),
			)
			s.mcpServer.AddResource(resource, s.readResourceHandler(kind, key))
			count++
		}
	}

	return count
}

func resourceURI(kind catalog.Kind, key string) string {
	return fmt.Sprintf("%s://%s/%s", resourceURIScheme, kind, key)
}

func (s *Server) readResourceHandler(kind catalog.Kind, key string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := s.catalog.Load(kind, key)
		if err != nil {
			s.logger.Error("Resource read failed",
				"kind", kind.String(),
				"key", key,
				"error", err,
			)
			return nil, err
		}

		return []mcp.ResourceContents{
			&mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		}, nil
	}
}
