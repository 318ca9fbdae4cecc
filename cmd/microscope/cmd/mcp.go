package cmd

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "microscope/internal/adapters/mcp"
	"microscope/internal/adapters/sqlite"
	"microscope/internal/logging"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a timeline over the Model Context Protocol",
	Long: `Serve an in-memory timeline as MCP tools on stdin/stdout.

Logs go to stderr since stdout carries the protocol. The timeline is
discarded when the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(os.Stderr, cfg.Log.Level)
		log := logging.New("mcp")

		index, err := sqlite.Open()
		if err != nil {
			return err
		}
		defer index.Close()

		sess, err := mcpadapter.NewSession(newTimeline(), cfg.Layout.Engine(), index, log)
		if err != nil {
			return err
		}

		log.Info("serving on stdio", "seed", cfg.Seed)
		return server.ServeStdio(mcpadapter.NewServer(sess, rootCmd.Version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
