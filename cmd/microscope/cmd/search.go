package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"microscope/internal/adapters/sqlite"
	"microscope/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search card text",
	Long: `Search the labels, questions, settings and answers of every card.

Results are ranked by relevance using fuzzy matching.

Examples:
  microscope search --seed machines
  microscope search --seed "age of"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := sqlite.Open()
		if err != nil {
			return err
		}
		defer index.Close()

		if err := index.Rebuild(newTimeline()); err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(index, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "[%s] %s %s\n", strings.ToLower(r.Kind.String()), r.Path, r.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
