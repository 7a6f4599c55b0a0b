package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pageshell/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pageshell configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure pageshell for your site and writes the config file (.pageshell.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
