// Package mcp exposes the twin over the Model Context Protocol so agent
// tooling can query it directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/twinchat/twinchat/internal/identity"
	"github.com/twinchat/twinchat/internal/pipeline"
	"github.com/twinchat/twinchat/internal/retriever"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing the twin's pipeline and corpus.
type Server struct {
	pipe      *pipeline.Pipeline
	retriever *retriever.Retriever
	detector  *identity.Detector
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(pipe *pipeline.Pipeline, r *retriever.Retriever, detector *identity.Detector) *Server {
	s := &Server{
		pipe:      pipe,
		retriever: r,
		detector:  detector,
	}

	s.mcp = server.NewMCPServer(
		"twinchat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askTwinTool, s.handleAskTwin)
	s.mcp.AddTool(searchKnowledgeTool, s.handleSearchKnowledge)
	s.mcp.AddTool(listKnownPeopleTool, s.handleListKnownPeople)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
