package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listNichesTool defines the list_niches MCP tool.
var listNichesTool = mcp.NewTool("list_niches",
	mcp.WithDescription("List the portfolio niches with their slugs and descriptions."),
)

// listArticlesTool defines the list_articles MCP tool.
var listArticlesTool = mcp.NewTool("list_articles",
	mcp.WithDescription("List blog articles newest first, with category, date and excerpt."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of articles to return (default all)"),
	),
)

// getArticleTool defines the get_article MCP tool.
var getArticleTool = mcp.NewTool("get_article",
	mcp.WithDescription("Get the full content of one blog article."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Article id as returned by list_articles"),
	),
)

// listScriptsTool defines the list_scripts MCP tool.
var listScriptsTool = mcp.NewTool("list_scripts",
	mcp.WithDescription("List portfolio scripts, optionally for one niche, with their PDF links."),
	mcp.WithString("niche",
		mcp.Description("Niche slug from list_niches; omit or use \"all\" for every script"),
	),
)

// getPromptTool defines the get_prompt MCP tool.
var getPromptTool = mcp.NewTool("get_prompt",
	mcp.WithDescription("List active prompt templates, or get one template with its ordered sections."),
	mcp.WithNumber("id",
		mcp.Description("Prompt id; omit to list the active templates"),
	),
)
