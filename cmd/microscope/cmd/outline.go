package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"microscope/internal/application/commands"
)

var outlineScenes bool

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the timeline as an indented outline",
	Long: `Print every Period and Event, and optionally every Scene, with the
path used to address it.

Examples:
  microscope outline --seed
  microscope outline --scenes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := commands.NewOutlineQuery(newTimeline(), outlineScenes).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), commands.FormatOutline(entries))
		return nil
	},
}

func init() {
	outlineCmd.Flags().BoolVarP(&outlineScenes, "scenes", "s", false, "include scenes")
	rootCmd.AddCommand(outlineCmd)
}
