package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pageshell/internal/router"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find the first page whose title or body contains the query",
	Long: `Runs the case-sensitive substring search used by the site's search box and
prints the first matching route. With --all every matching page is listed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("all", false, "list every matching page")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := buildTable(cfg)
	if err != nil {
		return err
	}

	results := router.Search(table, query)
	if len(results) == 0 {
		notice := router.NoResultsNotice(table, query)
		if len(notice.Suggestions) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Did you mean: %s\n", strings.Join(notice.Suggestions, ", "))
		}
		return fmt.Errorf("%w: %q", router.ErrNoSearchResults, query)
	}

	all, _ := cmd.Flags().GetBool("all")
	if !all {
		results = results[:1]
	}
	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s\t%s\n", r.Route, r.Title)
	}
	return nil
}
