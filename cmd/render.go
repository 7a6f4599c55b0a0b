package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pageshell/internal/toc"
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Convert Markdown to HTML",
	Long:  `Converts a Markdown file (or stdin when the argument is "-" or omitted) with the configured renderer and prints the HTML to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Bool("toc", false, "append the table of contents after the body")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rc, err := renderConfig(cfg)
	if err != nil {
		return err
	}

	var src []byte
	if len(args) == 0 || args[0] == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading markdown: %w", err)
	}

	body, err := rc.Converter.Convert(string(src))
	if err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	out := cmd.OutOrStdout()
	withTOC, _ := cmd.Flags().GetBool("toc")
	if !withTOC {
		fmt.Fprintln(out, body)
		return nil
	}

	body, entries, err := toc.Build(body)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, body)
	fmt.Fprintln(out, toc.Render(entries, ""))
	return nil
}
