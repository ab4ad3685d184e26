// Package mcp implements a Model Context Protocol (MCP) server for agentry
// using the mcp-go library.
//
// The server exposes the resource catalog in two ways: one generated tool
// per discovered resource plus a list_resources overview tool, and one MCP
// resource per catalog entry under the agentry:// scheme. Communication
// runs over stdin/stdout using JSON-RPC 2.0 as specified by the MCP
// standard.
package mcp

import (
	"fmt"

	"agentry/internal/boundary"
	"agentry/internal/catalog"
	"agentry/internal/config"
	"agentry/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

const serverName = "agentry"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	version   string
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger, version string) *Server {
	return &Server{
		config:  cfg,
		logger:  logger,
		version: version,
	}
}

// Start initializes the catalog, registers tools and resources, and serves
// over stdio. An unusable resource root is fatal here: a server with no
// boundary has nothing safe to expose.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	if err := s.InitializeComponents(); err != nil {
		return err
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		s.version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	toolCount := s.registerTools()
	resourceCount := s.registerResources()

	s.logger.Info("MCP server starting stdio communication",
		"tools", toolCount,
		"resources", resourceCount,
	)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the MCP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server handles cleanup when stdio closes
	return nil
}

// InitializeComponents builds the boundary and scans the catalog without
// starting stdio communication. Split out so tests can exercise the full
// startup path short of serving.
func (s *Server) InitializeComponents() error {
	b, err := boundary.New(s.config.ResourcesDir)
	if err != nil {
		return fmt.Errorf("resource root unusable: %w", err)
	}

	s.catalog = catalog.New(b, s.logger)
	s.catalog.ScanAll()
	return nil
}

// Catalog exposes the scanned catalog for testing and the CLI list/show
// paths that reuse server initialization.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

const serverInstructions = "Agentry serves a curated library of markdown resources: " +
	"agents (role definitions), guidelines (coding and process rules, " +
	"grouped by category), and frameworks (library usage notes). " +
	"Call list_resources first to see what is available, then call the " +
	"per-resource tool or read the agentry:// resource to load the full text."
