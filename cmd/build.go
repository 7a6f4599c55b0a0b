package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pageshell/internal/progress"
	"github.com/ziadkadry99/pageshell/internal/router"
	"github.com/ziadkadry99/pageshell/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static HTML",
	Long:  `Renders every route into a self-contained static site with navigation tree, table of contents and client-side search.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	buildCmd.Flags().Bool("preview", false, "start a local HTTP server after building")
	buildCmd.Flags().Int("port", 8080, "port for the preview server")
	buildCmd.Flags().Bool("open", false, "open browser automatically when previewing")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, table, rc, err := loadSite()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	generator := &site.Generator{
		Table:     table,
		Renderer:  router.NewRenderer(rc),
		OutputDir: outputDir,
		SiteName:  cfg.SiteName,
		Home:      cfg.HomeRoute,
		Reporter:  progress.NewReporter("Exporting pages"),
		Logger:    logger,
	}
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	preview, _ := cmd.Flags().GetBool("preview")
	if !preview {
		return nil
	}

	port, _ := cmd.Flags().GetInt("port")
	openBrowser, _ := cmd.Flags().GetBool("open")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving at http://localhost:%d, press Ctrl+C to stop\n", port)
	if err := site.Preview(ctx, outputDir, port, openBrowser, logger); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
