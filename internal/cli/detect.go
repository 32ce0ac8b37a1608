package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/monogen-dev/monogen/internal/output"
	"github.com/monogen-dev/monogen/internal/workspace"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Show the workspace a create command would target",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := detectFrom(args)
		if err != nil {
			return err
		}
		if jsonOutput {
			text, err := output.JSON(ws)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), output.Workspace(ws, useColor(cmd.OutOrStdout())))
		return nil
	},
}

// detectFrom runs detection from args[0], or the working directory.
func detectFrom(args []string) (*workspace.Context, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", start, err)
	}
	return newDetector().Detect(afero.NewOsFs(), abs, workspace.InterfaceCLI)
}
