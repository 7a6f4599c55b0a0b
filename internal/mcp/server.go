package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/router"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the site's pages as tools.
type Server struct {
	table    *content.Table
	renderer *router.Renderer
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over the given route table.
func NewServer(table *content.Table, renderer *router.Renderer) *Server {
	if renderer == nil {
		renderer = router.NewRenderer(router.RenderConfig{})
	}
	s := &Server{
		table:    table,
		renderer: renderer,
	}

	s.mcp = server.NewMCPServer(
		"pageshell",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listRoutesTool, s.handleListRoutes)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(searchContentTool, s.handleSearchContent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
