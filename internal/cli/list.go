package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/monogen-dev/monogen/internal/output"
	"github.com/monogen-dev/monogen/internal/workspace"
)

var listKind string

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List generated libraries",
	Long:  `List the libraries under the workspace's libraries root, grouped by kind.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind (contract, data-access, feature, provider, infra)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := detectFrom(args)
	if err != nil {
		return err
	}
	libs, err := workspace.ListLibraries(afero.NewOsFs(), ws)
	if err != nil {
		return fmt.Errorf("listing libraries: %w", err)
	}

	var entries []workspace.ExistingLibrary
	for _, l := range libs {
		if listKind == "" || l.Kind == listKind {
			entries = append(entries, l)
		}
	}

	if jsonOutput {
		if entries == nil {
			entries = []workspace.ExistingLibrary{}
		}
		text, err := output.JSON(entries)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No libraries under %s\n", ws.LibrariesRoot)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tPACKAGE\tPATH")
	for _, e := range entries {
		pkg := e.PackageName
		if pkg == "" {
			pkg = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, e.Name, pkg, e.Path)
	}
	return w.Flush()
}
