package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/pageshell/internal/mcp"
	"github.com/ziadkadry99/pageshell/internal/router"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the site's routes, pages and search to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, table, rc, err := loadSite()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "pageshell MCP server started on stdio (pages=%d)\n", table.Len())

		srv := mcpserver.NewServer(table, router.NewRenderer(rc))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
