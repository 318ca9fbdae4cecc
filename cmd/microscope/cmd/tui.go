package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"microscope/internal/adapters/editor"
	"microscope/internal/adapters/sqlite"
	"microscope/internal/adapters/tui"
	"microscope/internal/adapters/tui/styles"
	"microscope/internal/application/controller"
	"microscope/internal/logging"
)

// runTUI starts the terminal editor. Logs go to a file since the screen
// belongs to bubbletea.
func runTUI(cmd *cobra.Command, args []string) error {
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Init(logFile, cfg.Log.Level)
	log := logging.New("tui")

	styles.Apply(cfg.Theme)

	index, err := sqlite.Open()
	if err != nil {
		return err
	}
	defer index.Close()

	app, err := tui.NewApp(newTimeline(), cfg.Layout.Engine(), index, editor.NewOpener(), log,
		controller.WithLogger(logging.New("controller")),
		controller.WithWheelStep(cfg.WheelStep),
	)
	if err != nil {
		return err
	}

	log.Info("starting", "seed", cfg.Seed, "version", rootCmd.Version)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
