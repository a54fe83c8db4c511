package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askTwinTool defines the ask_twin MCP tool.
var askTwinTool = mcp.NewTool("ask_twin",
	mcp.WithDescription("Ask the digital twin a question and get a persona response. The reply passes through the same moderation filters as the chat API."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The question or message for the twin"),
	),
)

// searchKnowledgeTool defines the search_knowledge MCP tool.
var searchKnowledgeTool = mcp.NewTool("search_knowledge",
	mcp.WithDescription("Search the twin's knowledge corpus directly. Returns the raw chunks with similarity scores, without persona phrasing."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of chunks to return (default 3)"),
	),
)

// listKnownPeopleTool defines the list_known_people MCP tool.
var listKnownPeopleTool = mcp.NewTool("list_known_people",
	mcp.WithDescription("List the people on the twin's roster and how they relate to the represented person."),
)
