package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/pageshell/internal/router"
)

// handleListRoutes lists the route table.
func (s *Server) handleListRoutes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := s.table.Records()
	if len(records) == 0 {
		return mcp.NewToolResultText("The site has no pages."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d page(s):\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(&sb, "- %s: %s", rec.Route, rec.Title)
		if len(rec.Breadcrumb) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(rec.Breadcrumb, " > "))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetPage returns one page in the requested format.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := request.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: route"), nil
	}

	rec, ok := s.table.Get(route)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%v: %q. Use list_routes to see available pages.", router.ErrRouteNotFound, route)), nil
	}

	switch format := request.GetString("format", "markdown"); format {
	case "markdown":
		return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", rec.Title, rec.Body)), nil
	case "html":
		view, err := s.renderer.Render(rec)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
		}
		return mcp.NewToolResultText(view.Body), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: must be markdown or html", format)), nil
	}
}

// handleSearchContent runs the router's substring search.
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	query = strings.TrimSpace(query)

	results := router.Search(s.table, query)
	if len(results) == 0 {
		notice := router.NoResultsNotice(s.table, query)
		text := notice.Message
		if len(notice.Suggestions) > 0 {
			text += " Similar titles: " + strings.Join(notice.Suggestions, ", ")
		}
		return mcp.NewToolResultText(text), nil
	}

	if !request.GetBool("all", false) {
		results = results[:1]
	}
	return mcp.NewToolResultText(formatResults(results)), nil
}

// formatResults renders search hits one per line.
func formatResults(results []router.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s: %s\n", r.Route, r.Title)
	}
	return sb.String()
}
