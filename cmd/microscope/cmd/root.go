package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"microscope/internal/config"
	"microscope/internal/domain"
)

var (
	configPath string
	seed       bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "microscope",
	Short: "Timeline editor for the Microscope role-playing game",
	Long: `microscope edits the timeline of a game of Microscope: Periods from
left to right, the Events of each Period below it and the Scenes of the open
Event at the bottom.

Run without a subcommand to start the terminal editor. The timeline lives
in memory for the length of the session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			c.Seed = seed
		}
		cfg = c
		return nil
	},
	RunE: runTUI,
}

// Execute runs the root command
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&seed, "seed", false, "start from the demo timeline")
}

// newTimeline returns the timeline a session starts from
func newTimeline() *domain.Timeline {
	if cfg.Seed {
		return domain.NewDemoTimeline()
	}
	return domain.NewTimeline()
}
