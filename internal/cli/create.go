package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/output"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Shared flag for all create subcommands.
var createFrom string

func init() {
	createCmd.PersistentFlags().StringVar(&createFrom, "from", "", "YAML file with request fields; flags override it")
	for _, k := range library.Kinds {
		createCmd.AddCommand(newCreateKindCmd(k))
	}
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a library",
	Long: `Generate a contract, data-access, feature, provider or infra library in the
current workspace. The workspace is detected by walking up from the current
directory (or --workspace-root) to the nearest nx.json or package.json with
workspaces.`,
}

var createExamples = map[library.Kind]string{
	library.KindContract:   "  monogen create contract product-review --include-cqrs --include-rpc",
	library.KindDataAccess: "  monogen create data-access product-review\n  monogen create data-access reviews-pg --contract-library product-review",
	library.KindFeature:    "  monogen create feature checkout --include-rpc --include-client-server --platform universal",
	library.KindProvider:   "  monogen create provider payments --external-service Stripe",
	library.KindInfra:      "  monogen create infra cache --infra-type cache\n  monogen create infra storage --infra-type storage --dry-run",
}

// ─── create <kind> ─────────────────────────────────────────────────

func newCreateKindCmd(k library.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(k) + " <name>",
		Short:   "Generate a " + k.Label() + " library",
		Example: createExamples[k],
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, k, args[0])
		},
	}
	for _, f := range library.Fields(k) {
		if f.Name == "name" {
			continue
		}
		desc := f.Description
		if len(f.Enum) > 0 {
			desc += " (" + strings.Join(f.Enum, ", ") + ")"
		}
		if f.Required {
			desc += " [required]"
		}
		switch f.Type {
		case library.FieldBool:
			cmd.Flags().Bool(f.Flag, false, desc)
		default:
			cmd.Flags().String(f.Flag, "", desc)
		}
	}
	return cmd
}

func runCreate(cmd *cobra.Command, k library.Kind, name string) error {
	input, err := readRequestFile(createFrom)
	if err != nil {
		return err
	}
	input["name"] = name
	for _, f := range library.Fields(k) {
		if f.Name == "name" || !cmd.Flags().Changed(f.Flag) {
			continue
		}
		if f.Type == library.FieldBool {
			input[f.Name], _ = cmd.Flags().GetBool(f.Flag)
		} else {
			input[f.Name], _ = cmd.Flags().GetString(f.Flag)
		}
	}

	exec := generator.New(generator.Options{
		Interface: workspace.InterfaceCLI,
		Detector:  newDetector(),
		Logger:    session.logger,
	})
	out, err := exec.Run(cmd.Context(), k, input)
	if err != nil {
		return report(cmd, output.FromError(err))
	}
	return report(cmd, output.FromOutcome(out))
}

// readRequestFile loads request fields from a YAML file. A tag list is
// joined into the comma-separated form the request expects.
func readRequestFile(path string) (map[string]any, error) {
	input := map[string]any{}
	if path == "" {
		return input, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parsing request file %s: %w", path, err)
	}
	if input == nil {
		input = map[string]any{}
	}
	if list, ok := input["tags"].([]any); ok {
		tags := make([]string, 0, len(list))
		for _, t := range list {
			tags = append(tags, fmt.Sprint(t))
		}
		input["tags"] = strings.Join(tags, ",")
	}
	return input, nil
}

// report prints resp and turns a failure into errReported.
func report(cmd *cobra.Command, resp output.Response) error {
	if jsonOutput {
		text, err := output.JSON(resp)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	} else if resp.Success {
		fmt.Fprint(cmd.OutOrStdout(), output.Text(resp, useColor(cmd.OutOrStdout())))
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), output.Text(resp, useColor(cmd.ErrOrStderr())))
	}
	if !resp.Success {
		return errReported
	}
	return nil
}

func newDetector() *workspace.Detector {
	return workspace.NewDetector(session.settings.Scope, session.settings.LibrariesRoot)
}
