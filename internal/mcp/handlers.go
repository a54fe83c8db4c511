package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/twinchat/twinchat/internal/retriever"
)

// handleAskTwin runs one message through the full generation pipeline.
func (s *Server) handleAskTwin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}

	result := s.pipe.Generate(ctx, message, nil)

	var sb strings.Builder
	sb.WriteString(result.Text)
	if result.Blocked {
		fmt.Fprintf(&sb, "\n\n[deflected: %s]", result.DeflectionReason)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchKnowledge searches the corpus without persona phrasing.
func (s *Server) handleSearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	results := s.retriever.Retrieve(query, limit)
	if len(results) == 0 {
		return mcp.NewToolResultText("No relevant chunks found in the corpus."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleListKnownPeople returns the roster grouped by relationship.
func (s *Server) handleListKnownPeople(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	people := s.detector.People()
	if len(people) == 0 {
		return mcp.NewToolResultText("The roster is empty."), nil
	}

	names := make([]string, 0, len(people))
	for name := range people {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Known people (%d):\n", len(names))
	for _, name := range names {
		person := people[name]
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", name, person.Qualifier, person.Relationship)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts retrieval results into a text format
// optimized for AI agent consumption.
func formatSearchResults(results []retriever.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Source: %s\n", r.Chunk.Source)
		fmt.Fprintf(&sb, "Similarity: %.1f%%\n\n", r.Score*100)
		sb.WriteString(r.Chunk.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}
