package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listRoutesTool defines the list_routes MCP tool.
var listRoutesTool = mcp.NewTool("list_routes",
	mcp.WithDescription("List every page of the site in navigation order with its title and breadcrumb."),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get the content of one page by route, as Markdown source or rendered HTML."),
	mcp.WithString("route",
		mcp.Required(),
		mcp.Description("Route identifier, as returned by list_routes"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default markdown)"),
		mcp.Enum("markdown", "html"),
	),
)

// searchContentTool defines the search_content MCP tool.
var searchContentTool = mcp.NewTool("search_content",
	mcp.WithDescription("Case-sensitive substring search over page titles and bodies. Returns the first matching route, or every match when all is set."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for"),
	),
	mcp.WithBoolean("all",
		mcp.Description("Return every matching page instead of the first"),
	),
)
