package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pageshell/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pageshell",
	Short: "Single-page website shell over a static route table",
	Long: `Pageshell serves a static dictionary of Markdown pages as a single-page
site. Pages are rendered through a small Markdown converter, navigated by
route with a loading phase, searched by first substring match and exported
as a static site or exposed to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
