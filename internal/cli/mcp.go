package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/monogen-dev/monogen/internal/mcpserver"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generators as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin and stdout. Logs go to
stderr so they never corrupt the protocol stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		s := mcpserver.New(mcpserver.Options{
			Version:   buildVersion,
			Settings:  session.settings,
			Logger:    session.logger,
			StartPath: wd,
		})
		session.logger.Info("mcp server starting")
		return mcpserver.Serve(s)
	},
}
