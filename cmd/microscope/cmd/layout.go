package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mcpadapter "microscope/internal/adapters/mcp"
	"microscope/internal/application/commands"
	"microscope/internal/application/controller"
	"microscope/internal/logging"
	"microscope/internal/ports"
)

var openPath string

var layoutCmd = &cobra.Command{
	Use:   "layout [periods|events|scenes]",
	Short: "Print where every card is placed",
	Long: `Lay the timeline out off screen and print each element of a canvas
with its position and size in terminal cells.

Examples:
  microscope layout --seed
  microscope layout events --seed
  microscope layout scenes --open 1.1`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"periods", "events", "scenes"},
	RunE: func(cmd *cobra.Command, args []string) error {
		canvases := []ports.CanvasID{ports.CanvasPeriods, ports.CanvasEvents, ports.CanvasScenes}
		if len(args) == 1 {
			id, ok := canvasByName[args[0]]
			if !ok {
				return fmt.Errorf("unknown canvas: %q (expected periods, events or scenes)", args[0])
			}
			canvases = []ports.CanvasID{id}
		}

		sess, err := mcpadapter.NewSession(newTimeline(), cfg.Layout.Engine(), nil, logging.New("layout"))
		if err != nil {
			return err
		}

		return sess.Do(func(ctrl *controller.Controller) error {
			if openPath != "" {
				if _, err := commands.NewSelectCommand(ctrl, openPath).Execute(context.Background()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, id := range canvases {
				r := sess.Surface().Region(id)
				fmt.Fprintf(out, "%s (%dx%d)\n", id, r.Width, r.Height)
				for _, el := range sess.Surface().Elements(id) {
					b := el.Band
					title := ""
					if el.Card != nil {
						title = el.Card.Title()
					}
					fmt.Fprintf(out, "  %4d,%-4d %3dx%-3d %s\n", b.X, b.Y, b.Width, b.Height, title)
				}
			}
			return nil
		})
	},
}

var canvasByName = map[string]ports.CanvasID{
	"periods": ports.CanvasPeriods,
	"events":  ports.CanvasEvents,
	"scenes":  ports.CanvasScenes,
}

func init() {
	layoutCmd.Flags().StringVar(&openPath, "open", "", "select the card at this path first (an Event path opens its Scenes)")
	rootCmd.AddCommand(layoutCmd)
}
